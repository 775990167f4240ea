package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licscan/pkg/deps"
	"github.com/matzehuels/licscan/pkg/render"
)

// Graph export formats.
const (
	graphJSON = "json"
	graphDOT  = "dot"
	graphSVG  = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path (stdout if empty)
	format   string // json, dot or svg
	manager  string // explicit package manager
	flutter  string // flutter executable
	detailed bool   // mark out-of-scope nodes in labels
}

// graphCommand creates the graph command, which exports the relation graph
// without building a report.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: graphJSON}

	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Export the dependency relation graph",
		Long: `Export the dependency relation graph of a project.

Nodes are package versions labelled name(version). The root package is
highlighted; development-only packages are drawn dashed.

Examples:
  licscan graph                      # JSON on stdout
  licscan graph -f svg -o deps.svg   # rendered with Graphviz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runGraph(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, dot, svg")
	cmd.Flags().StringVarP(&opts.manager, "manager", "m", "", "package manager (default: detect)")
	cmd.Flags().StringVar(&opts.flutter, "flutter", "", "flutter executable (env "+envFlutter+")")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label out-of-scope packages")
	registerFlagCompletions(cmd)

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, dir string, opts graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format := strings.ToLower(opts.format)
	switch format {
	case graphJSON, graphDOT, graphSVG:
	default:
		return fmt.Errorf("unsupported graph format %q (available: json, dot, svg)", opts.format)
	}

	cfg := config{Manager: opts.manager, Flutter: opts.flutter}
	if cfg.Flutter == "" {
		cfg.Flutter = os.Getenv(envFlutter)
	}
	lang, err := selectLanguage(dir, cfg)
	if err != nil {
		return err
	}
	m, err := lang.New(dir, deps.Options{Flutter: cfg.Flutter, Logger: logger})
	if err != nil {
		return err
	}
	defer m.Close()

	spinner := newSpinnerWithContext(ctx, "Resolving dependency tree...")
	c.hooks.attach(spinner)
	spinner.Start()
	d, err := m.ParseDirectDependencies(ctx)
	c.hooks.attach(nil)
	if err != nil {
		spinner.StopWithError("Failed to resolve dependency tree")
		return err
	}
	spinner.Stop()

	var buf bytes.Buffer
	switch format {
	case graphJSON:
		err = render.WriteJSON(d, &buf)
	case graphDOT:
		buf.WriteString(render.ToDOT(d, render.Options{Detailed: opts.detailed}))
	case graphSVG:
		var svg []byte
		svg, err = render.RenderSVG(ctx, render.ToDOT(d, render.Options{Detailed: opts.detailed}))
		buf.Write(svg)
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Graph written (%d packages, root %s)", len(d.Graph.Versions), d.Graph.Root)
	printFile(opts.output)
	return nil
}
