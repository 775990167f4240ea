package pub

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/licscan/pkg/license"
	"github.com/matzehuels/licscan/pkg/purl"
)

// app -> http -> async -> meta, http -> meta; flutter_test is dev only.
// app is listed before the packages it depends on.
const treeJSON = `{
  "root": "app",
  "packages": [
    {"name": "app", "version": "1.0.0", "kind": "root", "source": "root", "dependencies": ["http", "flutter_test"]},
    {"name": "http", "version": "1.2.0", "kind": "direct", "source": "hosted", "dependencies": ["async", "meta"]},
    {"name": "async", "version": "2.11.0", "kind": "transitive", "source": "hosted", "dependencies": ["meta"]},
    {"name": "meta", "version": "1.11.0", "kind": "transitive", "source": "hosted", "dependencies": []},
    {"name": "flutter_test", "version": "0.0.0", "kind": "dev", "source": "sdk", "dependencies": []}
  ]
}`

const noDevText = `Dart SDK 3.3.0
Flutter SDK 3.19.0
app 1.0.0

dependencies:
- http 1.2.0 [async meta]

transitive dependencies:
- async 2.11.0 [meta]
- meta 1.11.0
`

const catalogJSON = `[
  {"name": "flutter_test", "version": "0.0.0", "homepage": null, "repository": null, "license": "BSD text", "isDirectDependency": true},
  {"name": "http", "version": "1.2.0", "homepage": "https://github.com/dart-lang/http", "repository": null, "license": "MIT License", "isDirectDependency": true},
  {"name": "async", "version": "2.11.0", "homepage": null, "repository": "https://github.com/dart-lang/async", "license": "BSD text", "isDirectDependency": false},
  {"name": "meta", "version": "1.11.0", "homepage": null, "repository": null, "license": null, "isDirectDependency": false}
]`

// fakeClassifier maps license texts by substring.
var fakeClassifier = license.ClassifierFunc(func(_ context.Context, text string) (string, error) {
	switch {
	case strings.Contains(text, "MIT"):
		return "MIT", nil
	case strings.Contains(text, "BSD"):
		return "BSD-3-Clause", nil
	default:
		return "", nil
	}
})

type resolverFunc func(loc, ecosystem string) (string, error)

func (f resolverFunc) Resolve(loc, ecosystem string) (string, error) { return f(loc, ecosystem) }

// failingResolver fails for one package name and defers to the registry otherwise.
func failingResolver(name string) purl.Resolver {
	reg := purl.NewRegistry()
	return resolverFunc(func(loc, ecosystem string) (string, error) {
		if strings.Contains(loc, "/packages/"+name+"/") {
			return "", fmt.Errorf("registry unavailable for %s", name)
		}
		return reg.Resolve(loc, ecosystem)
	})
}

func ptr(s string) *string { return &s }
