package pub

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matzehuels/licscan/pkg/deps"
	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
)

const kindRoot = "root"

// treeFile is the document printed by "flutter pub deps --json".
type treeFile struct {
	Packages []treeEntry `json:"packages"`
}

type treeEntry struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Kind         string   `json:"kind"`
	Dependencies []string `json:"dependencies"`
}

// versionIndex is the first phase of tree parsing: every package name mapped
// to its resolved version, the root, and the unresolved edge lists.
type versionIndex struct {
	versions map[string]string
	root     deps.Identity
	pending  map[string][]string // key "name(version)" -> bare dependency names
	order    []string            // keys of pending in first-seen order
}

// ParseTree parses the output of "flutter pub deps --json" into a Graph.
//
// Malformed documents, malformed entries and a root count other than one
// are ParseFailure errors with no graph. A dependency name that never
// appears as a package drops the edge list of the package referencing it;
// the remaining graph is returned together with a LookupInconsistency error
// describing every dropped list.
func ParseTree(data []byte) (deps.Graph, error) {
	if err := validate(treeSchema, data); err != nil {
		return deps.Graph{}, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "dependency tree")
	}
	var f treeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return deps.Graph{}, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "dependency tree")
	}

	idx, err := indexVersions(f.Packages)
	if err != nil {
		return deps.Graph{}, err
	}
	tree, lookupErr := resolveTree(idx)
	return deps.Graph{Root: idx.root, Tree: tree, Versions: idx.versions}, lookupErr
}

func indexVersions(entries []treeEntry) (*versionIndex, error) {
	idx := &versionIndex{
		versions: make(map[string]string, len(entries)),
		pending:  make(map[string][]string),
	}
	roots := 0
	for _, e := range entries {
		id := deps.Identity{Name: e.Name, Version: e.Version}
		if e.Kind == kindRoot {
			idx.root = id
			roots++
		}
		idx.versions[e.Name] = e.Version
		if len(e.Dependencies) == 0 {
			continue
		}
		key := id.String()
		if _, seen := idx.pending[key]; !seen {
			idx.order = append(idx.order, key)
		}
		idx.pending[key] = append(idx.pending[key], e.Dependencies...)
	}
	if roots != 1 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeParseFailure, "dependency tree has %d root packages, want 1", roots)
	}
	return idx, nil
}

func resolveTree(idx *versionIndex) (deps.RelationTree, error) {
	tree := make(deps.RelationTree, len(idx.pending))
	var errs []error
	for _, key := range idx.order {
		resolved, err := resolveEdges(idx.versions, idx.pending[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		tree[key] = resolved
	}
	if len(errs) > 0 {
		return tree, pkgerrors.Wrap(pkgerrors.ErrCodeLookupInconsistency, errors.Join(errs...),
			"%d packages reference undeclared dependencies", len(errs))
	}
	return tree, nil
}

func resolveEdges(versions map[string]string, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		v, ok := versions[name]
		if !ok {
			return nil, fmt.Errorf("dependency %q has no resolved version", name)
		}
		out = append(out, deps.Identity{Name: name, Version: v}.String())
	}
	return out, nil
}
