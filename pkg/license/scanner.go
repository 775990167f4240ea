package license

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/licscan/pkg/shell"
)

// DefaultScanner is the scanner binary looked up on PATH when none is configured.
const DefaultScanner = "askalono"

// Scanner classifies license text by handing it to an external scanner
// through a temporary file:
//
//	<binary> --format json identify <file>
type Scanner struct {
	Binary string
	Runner shell.Runner
	// TempDir holds the hand-off files; empty means os.TempDir().
	TempDir string
}

// NewScanner creates a Scanner for binary, run through runner.
func NewScanner(binary string, runner shell.Runner) *Scanner {
	if binary == "" {
		binary = DefaultScanner
	}
	return &Scanner{Binary: binary, Runner: runner}
}

// ID identifies the scanner in cache keys.
func (s *Scanner) ID() string { return s.Binary }

type identifyOutput struct {
	Result *struct {
		Score   float64 `json:"score"`
		License *struct {
			Name string `json:"name"`
		} `json:"license"`
	} `json:"result"`
	Error string `json:"error"`
}

// Classify implements Classifier. The hand-off file is removed on every path.
func (s *Scanner) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	f, err := os.CreateTemp(s.TempDir, "tmp_license-*.txt")
	if err != nil {
		return "", fmt.Errorf("license: create hand-off file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	_, werr := f.WriteString(text)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("license: write hand-off file: %w", werr)
	}

	out, err := s.Runner.Run(ctx, shell.Command{
		Name: s.Binary,
		Args: []string{"--format", "json", "identify", path},
	})
	if err != nil {
		var exitErr *shell.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("license: %w", err)
		}
		// askalono exits non-zero when nothing matched but still prints JSON.
	}
	return parseIdentify(out), nil
}

func parseIdentify(out []byte) string {
	var o identifyOutput
	if err := json.Unmarshal(out, &o); err != nil {
		return ""
	}
	if o.Error != "" || o.Result == nil || o.Result.License == nil {
		return ""
	}
	return o.Result.License.Name
}

var _ Classifier = (*Scanner)(nil)
