// Package purl maps download locations to canonical package URLs
// (https://github.com/package-url/purl-spec).
package purl

import (
	"fmt"
	"net/url"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// Ecosystem identifiers understood by Registry.
const (
	EcosystemPub = "pub"
)

// Resolver turns a download location into a package URL.
type Resolver interface {
	Resolve(downloadLocation, ecosystem string) (string, error)
}

// Registry is the default Resolver. It knows, per ecosystem, the registry
// host and path layout that download locations follow.
type Registry struct {
	layouts map[string]layout
}

// layout describes "<scheme>://<host>/<prefix>/<name>/<infix>/<version>".
type layout struct {
	host   string
	prefix string
	infix  string
}

// NewRegistry returns a Registry that understands pub.dev locations.
func NewRegistry() *Registry {
	return &Registry{layouts: map[string]layout{
		EcosystemPub: {host: "pub.dev", prefix: "packages", infix: "versions"},
	}}
}

// Resolve implements Resolver.
func (r *Registry) Resolve(downloadLocation, ecosystem string) (string, error) {
	l, ok := r.layouts[ecosystem]
	if !ok {
		return "", fmt.Errorf("purl: unsupported ecosystem %q", ecosystem)
	}
	u, err := url.Parse(downloadLocation)
	if err != nil {
		return "", fmt.Errorf("purl: parse %q: %w", downloadLocation, err)
	}
	if u.Host != l.host {
		return "", fmt.Errorf("purl: %q is not a %s location", downloadLocation, l.host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[0] != l.prefix || parts[2] != l.infix || parts[1] == "" || parts[3] == "" {
		return "", fmt.Errorf("purl: unrecognised %s location %q", ecosystem, downloadLocation)
	}
	return New(ecosystem, parts[1], parts[3]), nil
}

// New builds the package URL string for name@version.
func New(ecosystem, name, version string) string {
	return packageurl.NewPackageURL(ecosystem, "", name, version, nil, "").ToString()
}

// Parse decomposes a package URL into ecosystem, name and version.
func Parse(s string) (ecosystem, name, version string, err error) {
	p, err := packageurl.FromString(s)
	if err != nil {
		return "", "", "", err
	}
	return p.Type, p.Name, p.Version, nil
}

var _ Resolver = (*Registry)(nil)
