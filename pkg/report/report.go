// Package report writes scan results as CSV, JSON or YAML.
//
// Every format carries the same columns, in this order:
//
//	ID, Source Name or Path, OSS Name, OSS Version, License, Download Location,
//	Homepage, Copyright Text, Exclude, Comment, Depends On
//
// ID is the package URL. Source Name or Path, Copyright Text and Exclude are
// left empty for the downstream report tooling.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/licscan/pkg/buildinfo"
	"github.com/matzehuels/licscan/pkg/deps"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported formats, default first.
var Formats = []string{FormatCSV, FormatJSON, FormatYAML}

// Header is the column header of every report.
var Header = []string{
	"ID",
	"Source Name or Path",
	"OSS Name",
	"OSS Version",
	"License",
	"Download Location",
	"Homepage",
	"Copyright Text",
	"Exclude",
	"Comment",
	"Depends On",
}

// Report is one scan's worth of rows plus run metadata.
type Report struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Tool      string     `json:"tool" yaml:"tool"`
	Generated time.Time  `json:"generated" yaml:"generated"`
	Manager   string     `json:"manager" yaml:"manager"`
	Root      string     `json:"root,omitempty" yaml:"root,omitempty"`
	Rows      []deps.Row `json:"rows" yaml:"rows"`
}

// New builds a Report from a scan result with a fresh run ID.
func New(res *deps.Result) *Report {
	r := &Report{
		RunID:     uuid.NewString(),
		Tool:      buildinfo.UserAgent(),
		Generated: time.Now().UTC().Truncate(time.Second),
		Manager:   res.Manager,
		Rows:      res.Rows,
	}
	if root := res.Root(); !root.IsZero() {
		r.Root = root.String()
	}
	if r.Rows == nil {
		r.Rows = []deps.Row{}
	}
	return r
}

// Record returns row as a report line matching Header.
func Record(row deps.Row) []string {
	f := row.Fields()
	// The tuple has no source column; it goes right after the ID.
	return append([]string{f[0], ""}, f[1:]...)
}

// Write encodes r in format to w.
func Write(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return writeCSV(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format %q (available: %s)", format, strings.Join(Formats, ", "))
	}
}

// Export writes r to a file at path.
func Export(r *Report, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, r, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatFromPath guesses the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	default:
		return FormatCSV
	}
}

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.Write(Record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
