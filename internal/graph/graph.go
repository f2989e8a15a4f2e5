// Package graph implements the link-graph analytics engine behind the
// gravity index. It stores forward and backward adjacency for a set of
// notes, computes a PageRank-style authority distribution over the graph,
// and combines six percentile-anchored metrics into a composite gravity
// score per note.
package graph

import "sort"

// LinkGraph holds the directed link graph extracted from a note corpus.
// Unlike a dependency DAG, cycles and self-loops are permitted: two notes
// linking to each other is the interesting case, not an error.
//
// The graph is built once per analysis run and treated as immutable
// afterward. It is not safe for concurrent mutation.
type LinkGraph struct {
	// forward maps note → set of notes it links to.
	forward map[string]map[string]bool
	// backward maps note → set of notes linking to it.
	backward map[string]map[string]bool
	// notes is the union of every identifier seen as source, target,
	// or materialized document.
	notes map[string]bool
	// materialized marks notes backed by an actual document, as opposed
	// to dangling link targets. Reporting-only; scoring ignores it.
	materialized map[string]bool
}

// New creates an empty LinkGraph.
func New() *LinkGraph {
	return &LinkGraph{
		forward:      make(map[string]map[string]bool),
		backward:     make(map[string]map[string]bool),
		notes:        make(map[string]bool),
		materialized: make(map[string]bool),
	}
}

// AddEdge records a link from source to target. Both notes are created
// implicitly if unseen. Adding the same edge twice has no additional
// effect, and self-loops are stored like any other edge.
func (g *LinkGraph) AddEdge(source, target string) {
	g.notes[source] = true
	g.notes[target] = true
	if g.forward[source] == nil {
		g.forward[source] = make(map[string]bool)
	}
	if g.backward[target] == nil {
		g.backward[target] = make(map[string]bool)
	}
	g.forward[source][target] = true
	g.backward[target][source] = true
}

// MarkMaterialized records that note corresponds to a real document.
// The note joins the graph's note set even if nothing links to it yet.
func (g *LinkGraph) MarkMaterialized(note string) {
	g.notes[note] = true
	g.materialized[note] = true
}

// IsMaterialized reports whether the note has a backing document.
func (g *LinkGraph) IsMaterialized(note string) bool {
	return g.materialized[note]
}

// Len returns the number of notes in the graph.
func (g *LinkGraph) Len() int {
	return len(g.notes)
}

// Notes returns all note identifiers, sorted alphabetically.
func (g *LinkGraph) Notes() []string {
	ids := make([]string, 0, len(g.notes))
	for id := range g.notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Forward returns the notes that note links to, sorted alphabetically.
func (g *LinkGraph) Forward(note string) []string {
	return sortedKeys(g.forward[note])
}

// Backward returns the notes linking to note, sorted alphabetically.
func (g *LinkGraph) Backward(note string) []string {
	return sortedKeys(g.backward[note])
}

// OutDegree returns the number of distinct outgoing links from note.
func (g *LinkGraph) OutDegree(note string) int {
	return len(g.forward[note])
}

// InDegree returns the number of distinct incoming links to note.
func (g *LinkGraph) InDegree(note string) int {
	return len(g.backward[note])
}

// Bidirectional returns the number of notes that note both links to and
// is linked from (the forward/backward intersection).
func (g *LinkGraph) Bidirectional(note string) int {
	fwd := g.forward[note]
	bwd := g.backward[note]
	if len(fwd) == 0 || len(bwd) == 0 {
		return 0
	}
	// Iterate the smaller set.
	if len(bwd) < len(fwd) {
		fwd, bwd = bwd, fwd
	}
	count := 0
	for id := range fwd {
		if bwd[id] {
			count++
		}
	}
	return count
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
