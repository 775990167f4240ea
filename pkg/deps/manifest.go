package deps

import (
	"fmt"
	"strings"
)

// Detect finds the language whose manifest is present in dir.
// Languages are tried in order; the first match wins.
func Detect(dir string, langs ...*Language) (*Language, error) {
	for _, l := range langs {
		if l.Supports(dir) {
			return l, nil
		}
	}
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, strings.Join(l.ManifestFiles, "/"))
	}
	return nil, fmt.Errorf("no supported manifest in %s (looked for %s)", dir, strings.Join(names, ", "))
}

// Lookup returns the language with the given name.
func Lookup(name string, langs ...*Language) (*Language, error) {
	for _, l := range langs {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("unknown package manager %q", name)
}
