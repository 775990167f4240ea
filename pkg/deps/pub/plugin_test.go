package pub

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/licscan/pkg/deps"
	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
	"github.com/matzehuels/licscan/pkg/shell"
)

const (
	cmdPubGet   = "flutter pub get"
	cmdGenerate = "flutter pub run flutter_oss_licenses:generate.dart -o tmp_flutter_oss_licenses.json --json"
	cmdDeps     = "flutter pub deps --json"
	cmdNoDev    = "flutter pub deps --no-dev -s compact"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// flutterFake simulates a working flutter toolchain.
func flutterFake() *shell.Fake {
	return &shell.Fake{Responses: map[string]shell.FakeResponse{
		cmdGenerate: {Do: func(cmd shell.Command) error {
			return os.WriteFile(filepath.Join(cmd.Dir, CatalogFile), []byte(catalogJSON), 0o644)
		}},
		cmdDeps:  {Stdout: []byte("Resolving dependencies...\n" + treeJSON)},
		cmdNoDev: {Stdout: []byte(noDevText)},
	}}
}

func newPlugin(t *testing.T, dir string, runner shell.Runner) *Plugin {
	t.Helper()
	p, err := New(dir, deps.Options{DirectMode: true, Runner: runner, Classifier: fakeClassifier})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNew(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), deps.Options{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeFileNotFound), "got %v", err)

	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	_, err = New(filepath.Join(dir, ManifestFile), deps.Options{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeInvalidInput), "got %v", err)
}

func TestRunUsesExistingCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CatalogFile, catalogJSON)
	f := &shell.Fake{}

	p := newPlugin(t, dir, f)
	require.NoError(t, p.Run(context.Background()))
	assert.Empty(t, f.Calls, "flutter must not run")
	assert.Empty(t, p.Workspace())
}

func TestRunMissingManifest(t *testing.T) {
	p := newPlugin(t, t.TempDir(), &shell.Fake{})
	err := p.Run(context.Background())
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeSetupFailure), "got %v", err)
}

func TestRunGeneratesCatalogInWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	f := flutterFake()

	p := newPlugin(t, dir, f)
	require.NoError(t, p.Run(context.Background()))

	ws := p.Workspace()
	require.NotEmpty(t, ws)
	assert.NotEqual(t, dir, ws)
	assert.Contains(t, filepath.Base(ws), "licscan-")
	assert.True(t, f.Ran(cmdPubGet))
	assert.True(t, f.Ran(cmdGenerate))
	for _, c := range f.Calls {
		assert.Equal(t, ws, c.Dir, "%s runs in the workspace", c)
	}

	data, err := os.ReadFile(filepath.Join(ws, ManifestFile))
	require.NoError(t, err)
	var m struct {
		DevDependencies map[string]string `yaml:"dev_dependencies"`
	}
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, map[string]string{"flutter_oss_licenses": "^2.0.1"}, m.DevDependencies)

	original, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, pubspec, string(original), "input manifest untouched")

	rows, err := p.ParseOSSInformation(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	require.NoError(t, p.Close())
	assert.NoDirExists(t, ws)
	require.NoError(t, p.Close(), "Close is idempotent")
}

func TestRunToolFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	f := &shell.Fake{Responses: map[string]shell.FakeResponse{
		cmdPubGet: {Err: &shell.ExitError{Code: 1, Stderr: "version solving failed"}},
	}}

	p := newPlugin(t, dir, f)
	err := p.Run(context.Background())
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeSetupFailure), "got %v", err)
	assert.False(t, f.Ran(cmdGenerate), "no retries, no further steps")

	ws := p.Workspace()
	require.NoError(t, p.Close())
	assert.NoDirExists(t, ws, "workspace removed on the failure path")
}

func TestParseDirectDependenciesFromCapturedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TreeFile, "Resolving dependencies...\n"+treeJSON)
	writeFile(t, dir, NoDevFile, noDevText)
	f := &shell.Fake{}

	p := newPlugin(t, dir, f)
	d, err := p.ParseDirectDependencies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.Calls)
	assert.Equal(t, "app(1.0.0)", d.Graph.Root.String())
	assert.Equal(t, deps.NewScopeSet("http", "async", "meta"), d.Scope)
}

func TestParseDirectDependenciesFromFlutter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	f := flutterFake()

	p := newPlugin(t, dir, f)
	d, err := p.ParseDirectDependencies(context.Background())
	require.NoError(t, err)
	assert.True(t, f.Ran(cmdPubGet))
	assert.True(t, f.Ran(cmdDeps))
	assert.True(t, f.Ran(cmdNoDev))
	assert.Equal(t, dir, f.Calls[0].Dir, "no workspace: runs in the input directory")
	assert.Len(t, d.Graph.Tree, 3)
}

func TestParseDirectDependenciesFailures(t *testing.T) {
	t.Run("tool failure", func(t *testing.T) {
		f := &shell.Fake{Responses: map[string]shell.FakeResponse{cmdDeps: {Err: errors.New("exit status 65")}}}
		p := newPlugin(t, t.TempDir(), f)
		_, err := p.ParseDirectDependencies(context.Background())
		assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeSetupFailure), "got %v", err)
	})

	t.Run("malformed tree", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, TreeFile, `{"packages": [{"name": "app"}]}`)
		writeFile(t, dir, NoDevFile, noDevText)
		p := newPlugin(t, dir, &shell.Fake{})
		d, err := p.ParseDirectDependencies(context.Background())
		assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeParseFailure), "got %v", err)
		require.NotNil(t, d, "scope survives a broken tree")
		assert.False(t, d.HasGraph())
		assert.Equal(t, []string{"async", "http", "meta"}, d.Scope.Names())
	})

	t.Run("inconsistent tree is kept", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, TreeFile, `{"packages": [
			{"name": "app", "version": "1.0.0", "kind": "root", "dependencies": ["ghost"]},
			{"name": "http", "version": "1.2.0", "kind": "direct", "dependencies": ["app"]}
		]}`)
		writeFile(t, dir, NoDevFile, "- http 1.2.0\n")
		p := newPlugin(t, dir, &shell.Fake{})
		d, err := p.ParseDirectDependencies(context.Background())
		require.NoError(t, err)
		assert.Equal(t, deps.RelationTree{"http(1.2.0)": {"app(1.0.0)"}}, d.Graph.Tree)
	})
}

func TestParseOSSInformationMissingCatalog(t *testing.T) {
	p := newPlugin(t, t.TempDir(), &shell.Fake{})
	_, err := p.ParseOSSInformation(context.Background(), nil)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeFileNotFound), "got %v", err)
}

func TestScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)

	m, err := Language.New(dir, deps.Options{DirectMode: true, Runner: flutterFake(), Classifier: fakeClassifier})
	require.NoError(t, err)

	res, err := deps.Scan(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, ManagerName, res.Manager)
	assert.Equal(t, "app", res.Root().Name)

	byName := rowsByName(res.Rows)
	require.Len(t, byName, 3)
	assert.Equal(t, deps.CommentDirect, byName["pub:http"].Comment)
	assert.Equal(t, deps.CommentTransitive, byName["pub:meta"].Comment)
	assert.Equal(t, []string{"pkg:pub/meta@1.11.0"}, byName["pub:async"].Dependencies)

	assert.Empty(t, m.(*Plugin).Workspace(), "Scan closes the plugin")
}

func TestLanguageDetect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	l, err := deps.Detect(dir, Language)
	require.NoError(t, err)
	assert.Equal(t, ManagerName, l.Name)
}

func TestScanBrokenTreeKeepsScope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TreeFile, `{"root": "app", "packages": [{"name": "app", "vers`)
	writeFile(t, dir, NoDevFile, "app 1.0.0\n\ndependencies:\n- http 1.2.0\n")
	writeFile(t, dir, CatalogFile, `[
  {"name": "app", "version": "1.0.0", "homepage": null, "repository": null, "license": null, "isDirectDependency": false},
  {"name": "http", "version": "1.2.0", "homepage": null, "repository": null, "license": "MIT License", "isDirectDependency": true},
  {"name": "test_only", "version": "0.1.0", "homepage": null, "repository": null, "license": null, "isDirectDependency": true}
]`)

	m, err := Language.New(dir, deps.Options{DirectMode: true, Runner: &shell.Fake{}, Classifier: fakeClassifier})
	require.NoError(t, err)

	res, err := deps.Scan(context.Background(), m, nil)
	require.NoError(t, err)

	byName := rowsByName(res.Rows)
	assert.NotContains(t, byName, "pub:test_only", "dev-only package must stay out of the report")
	require.Contains(t, byName, "pub:http")
	assert.Equal(t, deps.CommentNone, byName["pub:http"].Comment, "no graph, no classification")
	assert.Empty(t, byName["pub:http"].Dependencies)
	assert.True(t, res.Root().IsZero())
}

func TestScanMalformedCatalogDegrades(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TreeFile, treeJSON)
	writeFile(t, dir, NoDevFile, noDevText)
	writeFile(t, dir, CatalogFile, `[{"name": "http", "version": "1.2.0"`)

	m, err := Language.New(dir, deps.Options{DirectMode: true, Runner: &shell.Fake{}, Classifier: fakeClassifier})
	require.NoError(t, err)

	res, err := deps.Scan(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, "app", res.Root().Name, "the tree is still reported")
}

func TestCloseFromAnotherGoroutine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, pubspec)
	p := newPlugin(t, dir, flutterFake())
	require.NoError(t, p.Run(context.Background()))
	ws := p.Workspace()
	require.NotEmpty(t, ws)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Workspace()
			assert.NoError(t, p.Close())
		}()
	}
	wg.Wait()

	assert.Empty(t, p.Workspace())
	assert.NoDirExists(t, ws)
}
