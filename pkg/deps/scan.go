package deps

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
)

// Result is the outcome of one complete scan.
type Result struct {
	Manager      string
	Dependencies *Dependencies // nil when no scope or tree was available
	Rows         []Row
}

// Root returns the root package identity, if the tree was parsed.
func (r *Result) Root() Identity {
	if !r.Dependencies.HasGraph() {
		return Identity{}
	}
	return r.Dependencies.Graph.Root
}

// Scan drives m through a full scan and closes it on every path.
//
// Setup failures abort the scan. A dependency tree that cannot be parsed
// degrades to an unclassified report, still filtered by whatever scope the
// manager recovered. A catalog that cannot be parsed degrades to a report
// with no rows; a missing catalog aborts.
func Scan(ctx context.Context, m Manager, logger *log.Logger) (res *Result, err error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			logger.Warn("cleanup failed", "manager", m.Name(), "err", cerr)
		}
	}()

	if err := m.Run(ctx); err != nil {
		return nil, err
	}

	d, err := m.ParseDirectDependencies(ctx)
	if err != nil {
		if ctx.Err() != nil || !pkgerrors.Degrades(err) {
			return nil, err
		}
		logger.Warn("dependency tree unavailable, reporting without classification", "manager", m.Name(), "err", err)
	}

	rows, err := m.ParseOSSInformation(ctx, d)
	if err != nil {
		if ctx.Err() != nil || !pkgerrors.Degrades(err) {
			return nil, err
		}
		logger.Warn("metadata catalog unusable, reporting no packages", "manager", m.Name(), "err", err)
		rows = []Row{}
	}
	return &Result{Manager: m.Name(), Dependencies: d, Rows: rows}, nil
}
