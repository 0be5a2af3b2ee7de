package resolver

import "testing"

func TestResolve(t *testing.T) {
	r := New([]string{
		"people/freya",
		"people/thor",
		"projects/bifrost",
		"projects/Asgard Wall",
		"Project Plan",
		"daily/2024-01-01",
	})

	tests := []struct {
		name   string
		target string
		wantID string
		wantOK bool
	}{
		{"exact full path", "people/freya", "people/freya", true},
		{"exact root-level", "Project Plan", "Project Plan", true},
		{"short name", "freya", "people/freya", true},
		{"short name with extension", "thor.md", "people/thor", true},
		{"slugified short name", "Freya", "people/freya", true},
		{"slugified spaced name", "project plan", "Project Plan", true},
		{"slugified full path", "projects/asgard-wall", "projects/Asgard Wall", true},
		{"date note", "daily/2024-01-01", "daily/2024-01-01", true},
		{"unknown", "loki", "", false},
		{"empty", "", "", false},
		{"whitespace trimmed", "  freya  ", "people/freya", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Resolve(tt.target)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	r := New([]string{
		"people/freya",
		"gods/freya",
	})

	if _, ok := r.Resolve("freya"); ok {
		t.Error("ambiguous short name should not resolve")
	}

	// Full paths still disambiguate.
	if id, ok := r.Resolve("gods/freya"); !ok || id != "gods/freya" {
		t.Errorf("Resolve(gods/freya) = %q, %v", id, ok)
	}
}

func TestExists(t *testing.T) {
	r := New([]string{"people/freya"})
	if !r.Exists("people/freya") {
		t.Error("Exists(people/freya) = false")
	}
	if r.Exists("people/loki") {
		t.Error("Exists(people/loki) = true")
	}
}
