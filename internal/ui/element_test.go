package ui

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Top K", "top_k"},
		{"Search", "search"},
		{"Body (JSON)", "body_json"},
		{"  spaces  ", "spaces"},
		{"UPPER-case_mix 9", "upper_case_mix_9"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestElementID(t *testing.T) {
	tests := []struct {
		name string
		spec ElementSpec
		pos  int
		want string
	}{
		{"explicit id wins", ElementSpec{ID: "my_id", Label: "Other"}, 0, "my_id"},
		{"label slug", ElementSpec{Label: "Top K"}, 1, "top_k"},
		{"positional fallback", ElementSpec{}, 4, "el_4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elementID(tt.spec, tt.pos); got != tt.want {
				t.Errorf("elementID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyTheme_UnknownFallsBackToDefault(t *testing.T) {
	ApplyTheme(ThemeName("bogus"))
	if CurrentTheme() != BuiltinThemes[DefaultTheme] {
		t.Error("Unknown theme should fall back to the default")
	}

	ApplyTheme(ThemeNord)
	if CurrentTheme() != BuiltinThemes[ThemeNord] {
		t.Error("Known theme should apply")
	}

	// Restore for other tests relying on default colors.
	ApplyTheme(DefaultTheme)
}
