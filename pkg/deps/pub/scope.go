package pub

import (
	"regexp"
	"strings"

	"github.com/matzehuels/licscan/pkg/deps"
)

// scopeLine matches a list item of "flutter pub deps -s compact",
// e.g. "- http 1.2.0 [async meta]".
var scopeLine = regexp.MustCompile(`-\s(\S+)\s`)

// ParseScope extracts the in-scope package names from the output of
// "flutter pub deps --no-dev -s compact". Only the first match of each line
// counts; lines without a list item are ignored.
func ParseScope(text string) deps.ScopeSet {
	scope := deps.ScopeSet{}
	for _, line := range strings.Split(text, "\n") {
		if m := scopeLine.FindStringSubmatch(line); m != nil {
			scope[m[1]] = struct{}{}
		}
	}
	return scope
}
