// Package pub scans Dart and Flutter projects.
//
// # Pipeline
//
// A scan combines three outputs of the flutter toolchain:
//
//   - the dependency tree of "flutter pub deps --json", parsed by [ParseTree]
//     into a relation graph keyed by "name(version)"
//   - the compact listing of "flutter pub deps --no-dev -s compact", parsed by
//     [ParseScope] into the names of non-development dependencies
//   - the flutter_oss_licenses catalog, read by [ReadCatalog], holding the
//     license text and homepage of every package
//
// [BuildRows] keeps the catalog records that are in scope, classifies each
// as "root package", "direct" or "transitive", and attaches its immediate
// dependencies as package URLs.
//
// # Setup
//
// [Plugin.Run] copies pubspec.yaml into a fresh temporary workspace, injects
// flutter_oss_licenses as the only dev dependency and generates the catalog
// there. [Plugin.Close] removes the workspace. Pre-captured outputs
// ([CatalogFile], [TreeFile], [NoDevFile]) in the input directory are used
// instead of running flutter.
package pub
