package roles

import "testing"

func TestNormalize(t *testing.T) {
	if Normalize("  responsable ") != "RESPONSABLE" {
		t.Fatalf("expected uppercase trimmed slug")
	}
}

func TestAuthorized(t *testing.T) {
	cases := []struct {
		name     string
		held     []string
		required []string
		want     bool
	}{
		{"exact match", []string{"ADMINISTRADOR"}, []string{"ADMINISTRADOR"}, true},
		{"case insensitive", []string{"administrador"}, []string{"ADMINISTRADOR"}, true},
		{"admin synonym held", []string{"ADMIN"}, []string{"ADMINISTRADOR"}, true},
		{"admin synonym required", []string{"ADMINISTRADOR"}, []string{"ADMIN"}, true},
		{"responsable academico variants", []string{"RESPONSABLE_ACADEMICO"}, []string{"RESPONSABLE"}, true},
		{"responsable dash variant", []string{"responsable-academico"}, []string{"RESPONSABLE"}, true},
		{"evaluador no synonym leak", []string{"EVALUADOR"}, []string{"RESPONSABLE"}, false},
		{"no roles held", nil, []string{"ADMINISTRADOR"}, false},
		{"nothing required", []string{"ADMINISTRADOR"}, nil, false},
		{"unknown role passthrough", []string{"SUPERVISOR"}, []string{"supervisor"}, true},
		{"whitespace tolerated", []string{" admin "}, []string{"ADMINISTRADOR"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorized(tc.held, tc.required); got != tc.want {
				t.Fatalf("Authorized(%v, %v) = %v, want %v", tc.held, tc.required, got, tc.want)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	held := []string{"ADMIN", "EVALUADOR"}
	if !HasRole(held, "ADMINISTRADOR") {
		t.Fatalf("ADMIN should satisfy ADMINISTRADOR")
	}
	if HasRole(held, "RESPONSABLE") {
		t.Fatalf("held set must not satisfy RESPONSABLE")
	}
}
