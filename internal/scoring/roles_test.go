package scoring

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		expected string
	}{
		{name: "exact_label", role: "backend", expected: "backend"},
		{name: "label_inside_title", role: "Senior Backend Engineer", expected: "backend"},
		{name: "title_inside_label", role: "full", expected: "full stack"},
		{name: "first_word_fuzzy", role: "Data Science Intern", expected: "data"},
		{name: "casing_and_whitespace", role: "  DevOps Engineer ", expected: "devops"},
		{name: "frontend_developer", role: "Frontend Developer", expected: "frontend"},
		{name: "unknown_passes_through", role: "Space Pirate", expected: "space pirate"},
		{name: "empty", role: "", expected: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRole(tc.role); got != tc.expected {
				t.Fatalf("NormalizeRole(%q) = %q, want %q", tc.role, got, tc.expected)
			}
		})
	}
}

func TestRoleKeywordTableShape(t *testing.T) {
	if len(roleLabels) != 5 {
		t.Fatalf("expected 5 role categories, got %d", len(roleLabels))
	}
	for _, label := range roleLabels {
		required := roleKeywords[label]
		if len(required) < 10 || len(required) > 18 {
			t.Fatalf("category %q has %d keywords, want 10-18", label, len(required))
		}
	}
}

func TestRequiredKeywordsUnknownCategory(t *testing.T) {
	if got := RequiredKeywords("space pirate"); got != nil {
		t.Fatalf("expected nil keyword set for unknown category, got %v", got)
	}
}
