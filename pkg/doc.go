// Package pkg holds the licscan libraries.
//
// A scan flows through these packages:
//
//	project dir
//	     ↓
//	[deps] detect the package manager, run it, parse its output
//	     ↓
//	[license] classify license texts (cached by [cache])
//	     ↓
//	[purl] resolve package URLs
//	     ↓
//	[report] CSV, JSON or YAML
//
// [render] exports the dependency relation graph as JSON, DOT or SVG.
// [shell] runs external tools, [observability] exposes stage hooks and
// [errors] carries the failure codes shared by all of them.
package pkg
