package pub

import (
	"context"
	"time"

	"github.com/matzehuels/licscan/pkg/deps"
	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
	"github.com/matzehuels/licscan/pkg/observability"
	"github.com/matzehuels/licscan/pkg/purl"
)

// DownloadBase prefixes every pub.dev download location.
const DownloadBase = "https://pub.dev/packages/"

// DownloadLocation returns the pub.dev page of one package version.
func DownloadLocation(name, version string) string {
	return DownloadBase + name + "/versions/" + version
}

// OSSName returns the report display name of a pub package.
func OSSName(name string) string { return ManagerName + ":" + name }

// rowBuilder turns catalog records into report rows for one scan.
type rowBuilder struct {
	opts  deps.Options
	graph deps.Graph
	scope deps.ScopeSet
	purls map[string]string // "name(version)" -> package URL
}

// BuildRows emits one row per catalog record whose name is in scope, in
// catalog order. d may be nil, in which case every record is in scope. Rows
// are classified only when d carries a graph.
//
// A record that fails is logged and skipped. The returned error is non-nil
// only when ctx is cancelled; the rows built so far are returned with it.
func BuildRows(ctx context.Context, records []Record, d *deps.Dependencies, opts deps.Options) ([]deps.Row, error) {
	opts = opts.WithDefaults()
	b := &rowBuilder{opts: opts, purls: make(map[string]string)}
	if d != nil {
		b.graph = d.Graph
		b.scope = d.Scope
	}

	inScope := make([]Record, 0, len(records))
	for _, rec := range records {
		if b.scope.Contains(rec.Name) {
			inScope = append(inScope, rec)
		}
	}

	rows := make([]deps.Row, 0, len(inScope))
	for i, rec := range inScope {
		if err := ctx.Err(); err != nil {
			return substitutePURLs(rows, b.purls), err
		}
		row, err := b.build(ctx, rec, d.HasGraph())
		if err != nil {
			opts.Logger.Error("skipping package", "pkg", rec.Identity(), "op", "build row", "err", err)
			observability.Scan().OnRecordSkipped(ctx, ManagerName, rec.Identity().String(), err)
		} else {
			rows = append(rows, row)
		}
		opts.Progress(i+1, len(inScope))
	}
	return substitutePURLs(rows, b.purls), nil
}

func (b *rowBuilder) build(ctx context.Context, rec Record, haveGraph bool) (deps.Row, error) {
	if err := pkgerrors.ValidatePubPackageName(rec.Name); err != nil {
		return deps.Row{}, pkgerrors.Wrap(pkgerrors.ErrCodeRecordFailure, err, "catalog record")
	}
	if err := pkgerrors.ValidateVersion(rec.Version); err != nil {
		return deps.Row{}, pkgerrors.Wrap(pkgerrors.ErrCodeRecordFailure, err, "catalog record %s", rec.Name)
	}

	id := rec.Identity()
	loc := DownloadLocation(rec.Name, rec.Version)
	p, err := b.opts.Resolver.Resolve(loc, purl.EcosystemPub)
	if err != nil {
		return deps.Row{}, pkgerrors.Wrap(pkgerrors.ErrCodeRecordFailure, err, "package URL for %s", id)
	}
	b.purls[id.String()] = p

	row := deps.Row{
		PURL:             p,
		Name:             OSSName(rec.Name),
		Version:          rec.Version,
		License:          b.classify(ctx, id, rec.LicenseText()),
		DownloadLocation: loc,
		Homepage:         rec.HomepageOrRepository(),
		Dependencies:     []string{},
	}
	if b.opts.DirectMode && haveGraph {
		row.Comment = classifyRole(id, b.graph.Root, rec.IsDirectDependency)
		row.Dependencies = b.graph.Tree.Deps(id.String())
	}
	return row, nil
}

// classify never fails: a scanner error leaves the license empty.
func (b *rowBuilder) classify(ctx context.Context, id deps.Identity, text string) string {
	start := time.Now()
	name, err := b.opts.Classifier.Classify(ctx, text)
	if err != nil {
		b.opts.Logger.Warn("license classification failed", "pkg", id, "op", "classify", "err", err)
		return ""
	}
	b.opts.Logger.Debug("classified license", "pkg", id, "license", name, "took", time.Since(start).Round(time.Millisecond))
	return name
}

func classifyRole(id, root deps.Identity, direct bool) deps.Comment {
	switch {
	case id == root:
		return deps.CommentRoot
	case direct:
		return deps.CommentDirect
	default:
		return deps.CommentTransitive
	}
}

// substitutePURLs rewrites "name(version)" dependency entries to package
// URLs. Entries without a mapping are kept as they are.
func substitutePURLs(rows []deps.Row, purls map[string]string) []deps.Row {
	out := make([]deps.Row, len(rows))
	for i, r := range rows {
		d := make([]string, len(r.Dependencies))
		for j, key := range r.Dependencies {
			if p, ok := purls[key]; ok {
				d[j] = p
			} else {
				d[j] = key
			}
		}
		r.Dependencies = d
		out[i] = r
	}
	return out
}
