package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/licscan/pkg/deps"
)

func TestSummarize(t *testing.T) {
	rows := []deps.Row{
		{Name: "pub:app", Comment: deps.CommentRoot, License: "MIT"},
		{Name: "pub:http", Comment: deps.CommentDirect, License: "MIT"},
		{Name: "pub:async", Comment: deps.CommentTransitive, License: "BSD-3-Clause"},
		{Name: "pub:meta", Comment: deps.CommentTransitive},
	}

	s := summarize(rows)
	if s.total != 4 || s.unlicensed != 1 {
		t.Errorf("total = %d, unlicensed = %d", s.total, s.unlicensed)
	}
	if s.byComment[deps.CommentTransitive] != 2 || s.byComment[deps.CommentDirect] != 1 {
		t.Errorf("byComment = %v", s.byComment)
	}
}

func TestRenderSummary(t *testing.T) {
	classified := renderSummary(summarize([]deps.Row{{Comment: deps.CommentDirect, License: "MIT"}}))
	for _, want := range []string{"Packages", "direct", "no license", "total"} {
		if !strings.Contains(classified, want) {
			t.Errorf("summary missing %q:\n%s", want, classified)
		}
	}
	if strings.Contains(classified, "unclassified") {
		t.Error("unclassified row should be hidden when every row is classified")
	}

	unclassified := renderSummary(summarize([]deps.Row{{Name: "pub:meta"}}))
	if !strings.Contains(unclassified, "unclassified") {
		t.Errorf("summary should count unclassified rows:\n%s", unclassified)
	}
}
