package pub

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/licscan/pkg/deps"
	pkgerrors "github.com/matzehuels/licscan/pkg/errors"
)

// Record is one entry of the flutter_oss_licenses catalog.
type Record struct {
	Name               string  `json:"name"`
	Version            string  `json:"version"`
	Homepage           *string `json:"homepage"`
	Repository         *string `json:"repository"`
	License            *string `json:"license"`
	IsDirectDependency bool    `json:"isDirectDependency"`
}

// Identity returns the record's package identity.
func (r Record) Identity() deps.Identity {
	return deps.Identity{Name: r.Name, Version: r.Version}
}

// HomepageOrRepository returns the homepage, else the repository, else "".
func (r Record) HomepageOrRepository() string {
	switch {
	case r.Homepage != nil:
		return *r.Homepage
	case r.Repository != nil:
		return *r.Repository
	default:
		return ""
	}
}

// LicenseText returns the raw license text, or "" when absent.
func (r Record) LicenseText() string {
	if r.License == nil {
		return ""
	}
	return *r.License
}

// ReadCatalog reads the catalog file at path. A missing file is a
// FileNotFound error; anything that does not decode is a ParseFailure.
func ReadCatalog(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "metadata catalog")
		}
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "read metadata catalog")
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a catalog document, preserving record order.
func ParseCatalog(data []byte) ([]Record, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "decode metadata catalog")
	}
	if err := validate(catalogSchema, []byte(text)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "metadata catalog")
	}
	var records []Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParseFailure, err, "metadata catalog")
	}
	return records, nil
}
