package deps

import (
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licscan/pkg/license"
	"github.com/matzehuels/licscan/pkg/purl"
	"github.com/matzehuels/licscan/pkg/shell"
)

// DefaultFlutter is the flutter executable looked up on PATH.
const DefaultFlutter = "flutter"

// Identity names one resolved package version.
type Identity struct {
	Name    string
	Version string
}

// String returns the canonical key form "name(version)".
func (id Identity) String() string {
	return id.Name + "(" + id.Version + ")"
}

// IsZero reports whether id is unset.
func (id Identity) IsZero() bool { return id.Name == "" && id.Version == "" }

// ParseIdentity parses the "name(version)" form produced by Identity.String.
func ParseIdentity(s string) (Identity, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") || open == len(s)-2 {
		return Identity{}, false
	}
	return Identity{Name: s[:open], Version: s[open+1 : len(s)-1]}, true
}

// RelationTree maps a package key ("name(version)") to the keys of the
// packages it depends on, in declaration order. Leaf packages are absent.
type RelationTree map[string][]string

// Deps returns a copy of the edge list of key, or an empty non-nil slice
// when key has no recorded dependencies.
func (t RelationTree) Deps(key string) []string {
	d, ok := t[key]
	if !ok || len(d) == 0 {
		return []string{}
	}
	return slices.Clone(d)
}

// Keys returns the sorted package keys that have dependencies.
func (t RelationTree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Graph is a resolved dependency tree and its root.
type Graph struct {
	Root Identity
	Tree RelationTree
	// Versions maps every package name seen in the tree to its version.
	Versions map[string]string
}

// ScopeSet holds the bare names of non-development dependencies.
// A nil ScopeSet means scope was never computed and admits every name.
type ScopeSet map[string]struct{}

// NewScopeSet builds a ScopeSet, collapsing duplicates.
func NewScopeSet(names ...string) ScopeSet {
	s := make(ScopeSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in scope.
func (s ScopeSet) Contains(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

// Names returns the sorted names in the set.
func (s ScopeSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dependencies is the output of dependency-tree acquisition: the relation
// graph plus the in-scope names. It is not modified after construction.
//
// The graph is empty when the tree description could not be parsed; the
// scope still applies in that case.
type Dependencies struct {
	Graph Graph
	Scope ScopeSet
}

// HasGraph reports whether d carries a parsed relation graph with a root.
func (d *Dependencies) HasGraph() bool {
	return d != nil && !d.Graph.Root.IsZero()
}

// Comment classifies a report row.
type Comment string

const (
	CommentNone       Comment = ""
	CommentRoot       Comment = "root package"
	CommentDirect     Comment = "direct"
	CommentTransitive Comment = "transitive"
)

// Row is one report line. Rows are never modified after construction
// except for the package URL substitution of Dependencies.
type Row struct {
	PURL             string   `json:"purl" yaml:"purl"`
	Name             string   `json:"name" yaml:"name"`
	Version          string   `json:"version" yaml:"version"`
	License          string   `json:"license" yaml:"license"`
	DownloadLocation string   `json:"download_location" yaml:"download_location"`
	Homepage         string   `json:"homepage" yaml:"homepage"`
	CopyrightText    string   `json:"copyright_text" yaml:"copyright_text"`
	Exclude          string   `json:"exclude" yaml:"exclude"`
	Comment          Comment  `json:"comment" yaml:"comment"`
	Dependencies     []string `json:"depends_on" yaml:"depends_on"`
}

// Fields returns the row as the ten-field tuple
// {purl, name, version, license, download location, homepage, "", "", comment, deps}.
// The two reserved fields keep downstream report columns aligned.
func (r Row) Fields() []string {
	return []string{
		r.PURL,
		r.Name,
		r.Version,
		r.License,
		r.DownloadLocation,
		r.Homepage,
		r.CopyrightText,
		r.Exclude,
		string(r.Comment),
		strings.Join(r.Dependencies, ","),
	}
}

// Options configures a package manager plugin.
type Options struct {
	DirectMode bool                  // Classify rows and attach dependency edges
	Flutter    string                // Flutter executable (default: "flutter")
	Runner     shell.Runner          // Process runner (default: shell.Exec)
	Classifier license.Classifier    // License text classifier (default: license.Nop)
	Resolver   purl.Resolver         // Package URL resolver (default: purl.Registry)
	Logger     *log.Logger           // Structured logger (default: discard)
	Progress   func(done, total int) // Called after each catalog record (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Flutter == "" {
		opts.Flutter = DefaultFlutter
	}
	if opts.Runner == nil {
		opts.Runner = shell.NewExec(opts.Logger)
	}
	if opts.Classifier == nil {
		opts.Classifier = license.Nop{}
	}
	if opts.Resolver == nil {
		opts.Resolver = purl.NewRegistry()
	}
	if opts.Progress == nil {
		opts.Progress = func(int, int) {}
	}
	return opts
}
