// Package deps defines the ecosystem-neutral model shared by package-manager
// plugins.
//
// # Overview
//
// A scan of one project goes through a [Manager]:
//
//  1. Run prepares the per-package metadata catalog (license text, homepage)
//  2. ParseDirectDependencies builds the relation graph and the scope set
//  3. ParseOSSInformation merges both into report rows
//  4. Close removes the temporary workspace
//
// # Model
//
//   - [Identity]: a package version, keyed as "name(version)"
//   - [RelationTree]: "depends on" edges between identities; leaves are absent
//   - [ScopeSet]: bare names of non-development dependencies
//   - [Row]: one report line, with a [Comment] of "root package", "direct",
//     "transitive" or "" when classification is off
//
// # Detecting the package manager
//
// Each plugin exports a [Language]; [Detect] picks the one whose manifest
// is present in the input directory:
//
//	lang, err := deps.Detect(dir, pub.Language)
//	m, err := lang.New(dir, deps.Options{DirectMode: true, Logger: logger})
//	defer m.Close()
//
// # Supported package managers
//
//   - [pub]: Dart and Flutter (pubspec.yaml)
//
// [pub]: github.com/matzehuels/licscan/pkg/deps/pub
package deps
