package roles

import "strings"

// Canonical role slugs seeded by the platform.
const (
	Administrador = "ADMINISTRADOR"
	Responsable   = "RESPONSABLE"
	Evaluador     = "EVALUADOR"
)

// synonyms groups role identifiers that historically drifted across the
// frontend and the role seeders but must authorize as the same role.
// Expansion is bidirectional: requiring any member of a group matches a
// principal holding any other member.
var synonyms = [][]string{
	{Administrador, "ADMIN"},
	{Responsable, "RESPONSABLE_ACADEMICO", "RESPONSABLE-ACADEMICO"},
	{Evaluador},
}

// Normalize canonicalizes a role identifier for comparison
func Normalize(slug string) string {
	return strings.ToUpper(strings.TrimSpace(slug))
}

// expand returns the normalized slug plus every synonym in its group
func expand(slug string) []string {
	norm := Normalize(slug)
	for _, group := range synonyms {
		for _, s := range group {
			if s == norm {
				return group
			}
		}
	}
	return []string{norm}
}

// Authorized reports whether any held role matches any required role after
// normalization and synonym expansion. Empty required means nothing matches.
func Authorized(held []string, required []string) bool {
	want := make(map[string]bool)
	for _, r := range required {
		for _, s := range expand(r) {
			if s != "" {
				want[s] = true
			}
		}
	}

	for _, h := range held {
		for _, s := range expand(h) {
			if want[s] {
				return true
			}
		}
	}
	return false
}

// HasRole reports whether the held set contains the given role or a synonym
func HasRole(held []string, slug string) bool {
	return Authorized(held, []string{slug})
}
