package pub

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/licscan/pkg/deps"
	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
	"github.com/matzehuels/licscan/pkg/observability"
	"github.com/matzehuels/licscan/pkg/shell"
)

// Plugin scans one pub project directory. Run, ParseDirectDependencies and
// ParseOSSInformation must be called sequentially; Workspace and Close may
// be called from any goroutine, e.g. to clean up on cancellation.
type Plugin struct {
	dir     string
	opts    deps.Options
	catalog string

	mu        sync.Mutex
	workspace string
}

// New creates a plugin for the project in dir.
func New(dir string, opts deps.Options) (*Plugin, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "input directory %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "input directory %s", dir)
	}
	if !info.IsDir() {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s is not a directory", dir)
	}
	return &Plugin{dir: abs, opts: opts.WithDefaults()}, nil
}

// Name implements deps.Manager.
func (p *Plugin) Name() string { return ManagerName }

// Dir returns the absolute input directory.
func (p *Plugin) Dir() string { return p.dir }

// Workspace returns the temporary workspace, or "" when none exists.
func (p *Plugin) Workspace() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workspace
}

// Run prepares the metadata catalog. A catalog already present in the input
// directory is used as is; otherwise flutter generates one in a fresh
// workspace. Every failure is a SetupFailure.
func (p *Plugin) Run(ctx context.Context) (err error) {
	done := p.stage(ctx, observability.StageSetup)
	defer func() { done(0, err) }()

	if existing := filepath.Join(p.dir, CatalogFile); fileExists(existing) {
		p.opts.Logger.Info("found metadata catalog, skipping flutter", "file", CatalogFile)
		p.catalog = existing
		return nil
	}

	manifest := filepath.Join(p.dir, ManifestFile)
	data, err := os.ReadFile(manifest)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "cannot find %s", ManifestFile)
	}
	rewritten, err := rewriteManifest(data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "prepare %s", ManifestFile)
	}

	ws, err := p.newWorkspace()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "create workspace")
	}
	if err := os.WriteFile(filepath.Join(ws, ManifestFile), rewritten, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "copy %s", ManifestFile)
	}

	steps := [][]string{
		{"pub", "get"},
		{"pub", "run", "flutter_oss_licenses:generate.dart", "-o", CatalogFile, "--json"},
	}
	for _, args := range steps {
		if _, err := p.flutter(ctx, ws, args...); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "failed to run flutter")
		}
	}
	p.catalog = filepath.Join(ws, CatalogFile)
	return nil
}

// ParseDirectDependencies builds the relation graph and scope set, from
// pre-captured files in the input directory when both exist, from flutter
// otherwise. Tree inconsistencies are logged; the partial graph is kept.
//
// The scope listing is parsed independently of the tree. When the tree
// cannot be parsed, the scope-only Dependencies is returned together with
// the ParseFailure so callers can still filter the catalog.
func (p *Plugin) ParseDirectDependencies(ctx context.Context) (*deps.Dependencies, error) {
	treeText, scopeText, err := p.acquireTree(ctx)
	if err != nil {
		return nil, err
	}

	done := p.stage(ctx, observability.StageScope)
	scope := ParseScope(scopeText)
	done(len(scope), nil)

	done = p.stage(ctx, observability.StageTree)
	g, err := ParseTree([]byte(stripBanner(treeText)))
	switch {
	case pkgerrors.Is(err, pkgerrors.ErrCodeLookupInconsistency):
		p.opts.Logger.Warn("inconsistent dependency tree", "op", "resolve tree", "err", err)
		done(len(g.Tree), nil)
	case err != nil:
		done(0, err)
		return &deps.Dependencies{Scope: scope}, err
	default:
		done(len(g.Tree), nil)
	}

	p.opts.Logger.Debug("parsed dependency tree", "root", g.Root, "packages", len(g.Versions), "in_scope", len(scope))
	return &deps.Dependencies{Graph: g, Scope: scope}, nil
}

func (p *Plugin) acquireTree(ctx context.Context) (tree, scope string, err error) {
	treePath := filepath.Join(p.dir, TreeFile)
	scopePath := filepath.Join(p.dir, NoDevFile)
	if fileExists(treePath) && fileExists(scopePath) {
		p.opts.Logger.Info("parsing captured pub deps output", "tree", TreeFile, "scope", NoDevFile)
		if tree, err = readText(treePath); err != nil {
			return "", "", err
		}
		if scope, err = readText(scopePath); err != nil {
			return "", "", err
		}
		return tree, scope, nil
	}

	dir := p.Workspace()
	if dir == "" {
		dir = p.dir
	}
	if _, err := p.flutter(ctx, dir, "pub", "get"); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "failed to run flutter")
	}
	out, err := p.flutter(ctx, dir, "pub", "deps", "--json")
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "failed to run flutter")
	}
	noDev, err := p.flutter(ctx, dir, "pub", "deps", "--no-dev", "-s", "compact")
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.ErrCodeSetupFailure, err, "failed to run flutter")
	}
	return string(out), string(noDev), nil
}

// ParseOSSInformation reads the metadata catalog and builds report rows.
// d may be nil; see BuildRows.
func (p *Plugin) ParseOSSInformation(ctx context.Context, d *deps.Dependencies) (rows []deps.Row, err error) {
	path := p.catalog
	if path == "" {
		path = filepath.Join(p.dir, CatalogFile)
	}

	done := p.stage(ctx, observability.StageCatalog)
	records, err := ReadCatalog(path)
	done(len(records), err)
	if err != nil {
		return nil, err
	}

	done = p.stage(ctx, observability.StageRows)
	defer func() { done(len(rows), err) }()
	return BuildRows(ctx, records, d, p.opts)
}

// Close removes the workspace. It is safe to call more than once.
func (p *Plugin) Close() error {
	p.mu.Lock()
	ws := p.workspace
	p.workspace = ""
	p.mu.Unlock()

	if ws == "" {
		return nil
	}
	p.opts.Logger.Debug("removing workspace", "dir", ws)
	return os.RemoveAll(ws)
}

func (p *Plugin) newWorkspace() (string, error) {
	if err := p.Close(); err != nil {
		return "", err
	}
	ws := filepath.Join(os.TempDir(), "licscan-"+uuid.NewString())
	if err := os.MkdirAll(ws, 0o755); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.workspace = ws
	p.mu.Unlock()
	p.opts.Logger.Debug("created workspace", "dir", ws)
	return ws, nil
}

func (p *Plugin) flutter(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := shell.Command{Name: p.opts.Flutter, Args: args, Dir: dir}
	p.opts.Logger.Info("running", "cmd", cmd.String())
	out, err := p.opts.Runner.Run(ctx, cmd)
	if err != nil {
		p.opts.Logger.Error("command failed", "cmd", cmd.String(), "err", err)
	}
	return out, err
}

// stage reports a stage start and returns the function that reports its end.
func (p *Plugin) stage(ctx context.Context, name string) func(count int, err error) {
	hooks := observability.Scan()
	hooks.OnStageStart(ctx, ManagerName, name)
	start := time.Now()
	return func(count int, err error) {
		hooks.OnStageComplete(ctx, ManagerName, name, count, time.Since(start), err)
	}
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "read %s", filepath.Base(path))
	}
	text, err := decodeText(data)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "decode %s", filepath.Base(path))
	}
	return text, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var _ deps.Manager = (*Plugin)(nil)
