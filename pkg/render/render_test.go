package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/licscan/pkg/deps"
)

func sample() *deps.Dependencies {
	return &deps.Dependencies{
		Graph: deps.Graph{
			Root: deps.Identity{Name: "app", Version: "1.0.0"},
			Tree: deps.RelationTree{
				"app(1.0.0)":  {"http(1.2.0)", "flutter_test(0.0.0)"},
				"http(1.2.0)": {"meta(1.11.0)"},
			},
			Versions: map[string]string{"app": "1.0.0", "http": "1.2.0", "meta": "1.11.0", "flutter_test": "0.0.0"},
		},
		Scope: deps.NewScopeSet("http", "meta"),
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.Contains(t, dot, `"app(1.0.0)" -> "http(1.2.0)";`)
	assert.Contains(t, dot, `"http(1.2.0)" -> "meta(1.11.0)";`)
	assert.Contains(t, dot, `"app(1.0.0)" [label="app(1.0.0)", fillcolor="#ffd966", penwidth=2];`)
	assert.Contains(t, dot, `"flutter_test(0.0.0)" [label="flutter_test(0.0.0)\nout of scope", style="rounded,filled,dashed"`)
	assert.Contains(t, dot, `"meta(1.11.0)" [label="meta(1.11.0)"];`)
}

func TestToDOTDeterministic(t *testing.T) {
	assert.Equal(t, ToDOT(sample(), Options{}), ToDOT(sample(), Options{}))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(sample(), &buf))

	var got graph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "app(1.0.0)", got.Root)
	require.Len(t, got.Nodes, 4)
	assert.Equal(t, "app(1.0.0)", got.Nodes[0].ID)
	assert.True(t, got.Nodes[0].Root)
	assert.False(t, got.Nodes[1].InScope, "flutter_test is dev only")
	assert.Equal(t, []edge{
		{From: "app(1.0.0)", To: "http(1.2.0)"},
		{From: "app(1.0.0)", To: "flutter_test(0.0.0)"},
		{From: "http(1.2.0)", To: "meta(1.11.0)"},
	}, got.Edges)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&deps.Dependencies{}, &buf))
	assert.Contains(t, buf.String(), `"edges": []`)
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `viewBox="0 0 100.50 200.00" width="100" height="200"`)
	assert.Contains(t, out, "<g/>")

	plain := []byte("<svg><g/></svg>")
	assert.Equal(t, plain, normalizeViewBox(plain))
}
