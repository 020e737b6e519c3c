package naming

import "testing"

func TestPluralize(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		// Regular plurals (add s)
		{"cat", "cats"},
		{"user", "users"},
		{"table", "tables"},

		// Words ending in s, x, z, ch, sh (add es)
		{"class", "classes"},
		{"box", "boxes"},
		{"church", "churches"},
		{"dish", "dishes"},

		// Consonant + y
		{"city", "cities"},
		{"story", "stories"},

		// Vowel + y
		{"boy", "boys"},
		{"key", "keys"},

		// Consonant + o, with exceptions
		{"hero", "heroes"},
		{"photo", "photos"},
		{"piano", "pianos"},

		// f / fe
		{"leaf", "leaves"},
		{"knife", "knives"},

		// Irregulars, case preserved
		{"person", "people"},
		{"Person", "People"},
		{"CHILD", "CHILDREN"},
		{"woman", "women"},

		// Only the last word changes
		{"user profile", "user profiles"},
		{"UserProfile", "UserProfiles"},
		{"sales person", "sales people"},
		{"SalesPerson", "SalesPeople"},
		{"human", "humans"},

		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			if got := Pluralize(tt.singular); got != tt.plural {
				t.Errorf("Pluralize(%q) = %q, want %q", tt.singular, got, tt.plural)
			}
		})
	}
}
