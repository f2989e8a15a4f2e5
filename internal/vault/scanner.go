// Package vault ingests an Obsidian-style vault: it discovers markdown
// notes on disk and extracts their wiki links into (source, target) edges
// ready to feed the link graph.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/nickmilo/gravity-index/internal/graph"
)

// linkPattern matches [[wiki links]], including aliased [[target|alias]] forms.
var linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// skipDirs lists directory names excluded from scanning. These hold
// tool state or vendored content, never notes.
var skipDirs = map[string]bool{
	".obsidian":    true,
	".git":         true,
	".gravity":     true,
	".trash":       true,
	"node_modules": true,
	"__pycache__":  true,
}

// Edge is a single directed link from one note to another.
type Edge struct {
	Source string
	Target string
}

// ReadError records a note file that could not be read. Scanning
// continues past read failures; the caller decides how to surface them.
type ReadError struct {
	Path string
	Err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e ReadError) Unwrap() error { return e.Err }

// ScanResult holds everything a scan produced: the extracted edges, the
// set of notes backed by actual files, and any per-file read failures.
type ScanResult struct {
	Edges        []Edge
	Materialized []string // note names with backing files, sorted
	FileCount    int
	Errors       []ReadError
}

// Scanner walks a vault directory and extracts its link graph.
type Scanner struct {
	// VaultPath is the vault root. Empty means the current directory.
	VaultPath string
}

// Scan walks the vault for markdown files, records each file's stem as a
// materialized note, and extracts every wiki link as an edge. Per-file
// read failures are collected in the result rather than aborting the
// scan; only a failure to walk the vault itself is returned as an error.
func (s *Scanner) Scan() (*ScanResult, error) {
	root := s.VaultPath
	if root == "" {
		root = "."
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning vault %s: %w", root, err)
	}
	sort.Strings(files)

	result := &ScanResult{FileCount: len(files)}
	for _, path := range files {
		note := noteName(path)
		result.Materialized = append(result.Materialized, note)

		data, err := os.ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, ReadError{Path: path, Err: err})
			continue
		}
		for _, target := range ParseLinks(string(data)) {
			result.Edges = append(result.Edges, Edge{Source: note, Target: target})
		}
	}
	sort.Strings(result.Materialized)
	return result, nil
}

// ParseLinks extracts wiki link targets from note content. Aliased links
// ([[target|alias]]) resolve to the target, trimmed of whitespace.
// Duplicate targets are returned as-is; the graph dedupes on insert.
func ParseLinks(content string) []string {
	matches := linkPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		targets = append(targets, strings.TrimSpace(target))
	}
	return targets
}

// BuildGraph loads a scan result into a fresh LinkGraph: every scanned
// file is marked materialized and every edge is inserted.
func BuildGraph(res *ScanResult) *graph.LinkGraph {
	g := graph.New()
	for _, note := range res.Materialized {
		g.MarkMaterialized(note)
	}
	for _, e := range res.Edges {
		g.AddEdge(e.Source, e.Target)
	}
	return g
}

// noteName derives the note identifier from a file path: the base name
// without the .md extension.
func noteName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
