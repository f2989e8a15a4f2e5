package graph

import "strings"

// Rule pairs a match predicate with a category label. Rules are evaluated
// in slice order and the first match wins, so a name matching several
// rules is classified by the earliest one. Reordering the slice changes
// classifications; the ordering is part of the contract.
type Rule struct {
	Label string
	Match func(name string) bool
}

// Categorize returns the label of the first rule matching name, or
// "Other" when none match.
func Categorize(name string, rules []Rule) string {
	for _, r := range rules {
		if r.Match(name) {
			return r.Label
		}
	}
	return "Other"
}

// DefaultRules returns the built-in category rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "LYT/Courses", Match: containsAny("⚗️", "LYT")},
		{Label: "MOCs", Match: containsAny("MOC")},
		{Label: "Maps", Match: containsAny("Map")},
		{Label: "Tools", Match: containsAny("Obsidian")},
		{Label: "Media", Match: containsAny("Movie", "Book", "Series", "Drama", "Action", "Comedy")},
		{Label: "Workspaces", Match: containsAny("Workshop", "Home", "Pro", "Hub")},
		{Label: "Productivity", Match: containsAny("Project", "Template", "Record")},
	}
}

// KeywordRule builds a Rule matching names that contain any of the given
// keywords. Rules loaded from configuration are built this way.
func KeywordRule(label string, keywords ...string) Rule {
	return Rule{Label: label, Match: containsAny(keywords...)}
}

func containsAny(keywords ...string) func(string) bool {
	return func(name string) bool {
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return true
			}
		}
		return false
	}
}
