package purl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		location string
		want     string
		wantErr  bool
	}{
		{"pub package", "https://pub.dev/packages/http/versions/1.2.0", "pkg:pub/http@1.2.0", false},
		{"trailing slash", "https://pub.dev/packages/path/versions/1.8.3/", "pkg:pub/path@1.8.3", false},
		{"prerelease", "https://pub.dev/packages/intl/versions/0.19.0-dev.1", "pkg:pub/intl@0.19.0-dev.1", false},
		{"wrong host", "https://example.com/packages/http/versions/1.2.0", "", true},
		{"missing version", "https://pub.dev/packages/http", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.location, EcosystemPub)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryUnsupportedEcosystem(t *testing.T) {
	_, err := NewRegistry().Resolve("https://pub.dev/packages/http/versions/1.2.0", "npm")
	assert.ErrorContains(t, err, "unsupported ecosystem")
}

func TestParse(t *testing.T) {
	eco, name, version, err := Parse(New(EcosystemPub, "collection", "1.18.0"))
	require.NoError(t, err)
	assert.Equal(t, "pub", eco)
	assert.Equal(t, "collection", name)
	assert.Equal(t, "1.18.0", version)

	_, _, _, err = Parse("not a purl")
	assert.Error(t, err)
}
