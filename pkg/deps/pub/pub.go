package pub

import (
	"github.com/matzehuels/licscan/pkg/deps"
)

// ManagerName identifies the pub plugin in reports and display names.
const ManagerName = "pub"

// Files read from the input directory.
const (
	ManifestFile = "pubspec.yaml"
	// CatalogFile is the flutter_oss_licenses output. When present in the
	// input directory the toolchain is not run.
	CatalogFile = "tmp_flutter_oss_licenses.json"
	// TreeFile and NoDevFile are pre-captured outputs of
	// "flutter pub deps --json" and "flutter pub deps --no-dev -s compact".
	TreeFile  = "tmp_deps.json"
	NoDevFile = "tmp_no_dev_deps.txt"
)

// Language registers the pub plugin for detection.
var Language = &deps.Language{
	Name:          ManagerName,
	ManifestFiles: []string{ManifestFile, CatalogFile},
	New: func(dir string, opts deps.Options) (deps.Manager, error) {
		return New(dir, opts)
	},
}
