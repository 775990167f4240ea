package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/matzehuels/licscan/pkg/deps"
)

type graph struct {
	Root  string `json:"root"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Root    bool   `json:"root,omitempty"`
	InScope bool   `json:"in_scope"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// nodes returns one node per package version in the graph, sorted by ID.
func nodes(d *deps.Dependencies) []node {
	g := d.Graph
	seen := make(map[string]deps.Identity, len(g.Versions))
	for name, version := range g.Versions {
		id := deps.Identity{Name: name, Version: version}
		seen[id.String()] = id
	}
	// Edge endpoints whose name maps to another version still get a node.
	for from, to := range g.Tree {
		for _, key := range append([]string{from}, to...) {
			if _, ok := seen[key]; !ok {
				if id, ok := deps.ParseIdentity(key); ok {
					seen[key] = id
				}
			}
		}
	}

	out := make([]node, 0, len(seen))
	for key, id := range seen {
		out = append(out, node{
			ID:      key,
			Name:    id.Name,
			Version: id.Version,
			Root:    id == g.Root,
			InScope: id == g.Root || d.Scope.Contains(id.Name),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// edges returns the graph's edges, sorted by source then declaration order.
func edges(d *deps.Dependencies) []edge {
	var out []edge
	for _, from := range d.Graph.Tree.Keys() {
		for _, to := range d.Graph.Tree[from] {
			out = append(out, edge{From: from, To: to})
		}
	}
	return out
}

// WriteJSON encodes the relation graph as JSON and writes it to w.
func WriteJSON(d *deps.Dependencies, w io.Writer) error {
	out := graph{Nodes: nodes(d), Edges: edges(d)}
	if out.Edges == nil {
		out.Edges = []edge{}
	}
	if !d.Graph.Root.IsZero() {
		out.Root = d.Graph.Root.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
