// Package rules loads note category rules from a TOML file, falling back
// to the built-in defaults when no file exists. Rules keep their file
// order: classification is first-match-wins, so the ordering in the file
// is part of its meaning.
package rules

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nickmilo/gravity-index/internal/graph"
)

// DefaultPath is the conventional location for a category rules file
// inside a vault.
const DefaultPath = ".gravity/categories.toml"

// file is the TOML schema: an ordered list of [[categories]] tables.
type file struct {
	Categories []entry `toml:"categories"`
}

type entry struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
}

// Load reads category rules from the given path. A missing file is not
// an error: the built-in defaults apply. A present but malformed file is
// an error, since silently ignoring a user's rules would misclassify
// every note.
func Load(path string) ([]graph.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return graph.DefaultRules(), nil
		}
		return nil, fmt.Errorf("reading category rules %s: %w", path, err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing category rules %s: %w", path, err)
	}

	result := make([]graph.Rule, 0, len(f.Categories))
	for i, c := range f.Categories {
		if c.Label == "" {
			return nil, fmt.Errorf("category rules %s: entry %d has no label", path, i+1)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("category rules %s: %q has no keywords", path, c.Label)
		}
		result = append(result, graph.KeywordRule(c.Label, c.Keywords...))
	}
	return result, nil
}
