package graph

import "testing"

func TestCategorize_DefaultRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		note string
		want string
	}{
		{"LYT marker", "LYT Kit", "LYT/Courses"},
		{"alembic marker", "⚗️ Idea Emergence", "LYT/Courses"},
		{"MOC", "Writing MOC", "MOCs"},
		{"map", "Map of Content", "Maps"},
		{"tool", "Obsidian Tips", "Tools"},
		{"media movie", "Movie Log", "Media"},
		{"media book", "Book Notes", "Media"},
		{"workspace", "Workshop Bench", "Workspaces"},
		// "Project" contains the workspace keyword "Pro", and the
		// workspace rule runs first. Substring matching, preserved as-is.
		{"pro substring wins", "Project Tracker", "Workspaces"},
		{"productivity", "Template Library", "Productivity"},
		{"fallback", "Evergreen notes", "Other"},
		{"empty name", "", "Other"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Categorize(tc.note, DefaultRules()); got != tc.want {
				t.Errorf("Categorize(%q) = %q, want %q", tc.note, got, tc.want)
			}
		})
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// Names matching several rules classify by the earliest rule.
	tests := []struct {
		name string
		note string
		want string
	}{
		{"MOC beats media", "Movie MOC", "MOCs"},
		{"LYT beats MOC", "LYT MOC", "LYT/Courses"},
		{"map beats workspace", "Map of the Home", "Maps"},
		{"media beats productivity", "Book Project", "Media"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Categorize(tc.note, DefaultRules()); got != tc.want {
				t.Errorf("Categorize(%q) = %q, want %q", tc.note, got, tc.want)
			}
		})
	}
}

func TestCategorize_OrderIsSignificant(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		KeywordRule("First", "X"),
		KeywordRule("Second", "X"),
	}
	if got := Categorize("X marks", rules); got != "First" {
		t.Errorf("Categorize = %q, want %q", got, "First")
	}

	reversed := []Rule{rules[1], rules[0]}
	if got := Categorize("X marks", reversed); got != "Second" {
		t.Errorf("after reorder Categorize = %q, want %q", got, "Second")
	}
}

func TestCategorize_NoRules(t *testing.T) {
	t.Parallel()
	if got := Categorize("anything", nil); got != "Other" {
		t.Errorf("Categorize with no rules = %q, want Other", got)
	}
}
