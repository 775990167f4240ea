package deps

import (
	"context"
	"os"
	"path/filepath"
)

// Manager is a package-manager plugin bound to one input directory.
//
// A scan calls Run, then ParseDirectDependencies (when classification is
// requested), then ParseOSSInformation, and finally Close on every path.
type Manager interface {
	// Name returns the package manager identifier (e.g., "pub").
	Name() string
	// Run prepares the metadata catalog, invoking external tools if needed.
	Run(ctx context.Context) error
	// ParseDirectDependencies builds the relation graph and scope set.
	// On a ParseFailure of the tree it may still return the scope, with
	// an empty graph.
	ParseDirectDependencies(ctx context.Context) (*Dependencies, error)
	// ParseOSSInformation turns the metadata catalog into report rows.
	// d may be nil, or carry a scope without a graph.
	ParseOSSInformation(ctx context.Context, d *Dependencies) ([]Row, error)
	// Close releases any temporary workspace. It is safe to call twice.
	Close() error
}

// Language describes a package manager a scan can target.
type Language struct {
	Name          string
	ManifestFiles []string // Files whose presence identifies the project type
	New           func(dir string, opts Options) (Manager, error)
}

// Supports reports whether dir contains one of the language's manifests.
func (l *Language) Supports(dir string) bool {
	_, ok := l.Manifest(dir)
	return ok
}

// Manifest returns the path of the first manifest found in dir.
func (l *Language) Manifest(dir string) (string, bool) {
	for _, name := range l.ManifestFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
