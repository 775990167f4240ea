package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licscan/pkg/deps"
	"github.com/matzehuels/licscan/pkg/report"
	"github.com/matzehuels/licscan/pkg/shell"
)

// scanOpts holds the flag values of the scan command. They only take
// effect when set explicitly; see config.
type scanOpts struct {
	configPath string
	quiet      bool
	flags      config
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a project and write its license report",
		Long: `Scan a project and write its license report.

The package manager is detected from the files in dir (default: current
directory). Pre-captured tool output in dir is used instead of running the
package manager:

  tmp_flutter_oss_licenses.json   metadata catalog
  tmp_deps.json                   flutter pub deps --json
  tmp_no_dev_deps.txt             flutter pub deps --no-dev -s compact

Examples:
  licscan scan                            # CSV report on stdout
  licscan scan ./app -o report.json       # format from extension
  licscan scan --no-direct --cache none   # no classification, no cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runScan(cmd, dir, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default: <dir>/licscan.toml)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the progress bar and summary")
	f.StringVarP(&opts.flags.Output, "output", "o", "", "report file (stdout if empty)")
	f.StringVarP(&opts.flags.Format, "format", "f", "", "report format: csv, json, yaml (default: from --output, else csv)")
	f.BoolVar(&opts.flags.NoDirect, "no-direct", false, "skip root/direct/transitive classification")
	f.StringVarP(&opts.flags.Manager, "manager", "m", "", "package manager (default: detect)")
	f.StringVar(&opts.flags.Cache, "cache", cacheFile, "license cache: file, memory, redis, none")
	f.StringVar(&opts.flags.RedisURL, "redis-url", "", "redis URL for --cache=redis (env "+envRedisURL+")")
	f.StringVar(&opts.flags.LicenseScanner, "license-scanner", "", "license scanner binary (env "+envLicenseScanner+", default askalono)")
	f.StringVar(&opts.flags.Flutter, "flutter", "", "flutter executable (env "+envFlutter+")")
	registerFlagCompletions(cmd)

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, dir string, opts scanOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, used, err := loadConfig(dir, opts.configPath, cmd.Flags(), opts.flags)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("loaded config", "file", used)
	}

	lang, err := selectLanguage(dir, cfg)
	if err != nil {
		return err
	}

	store, err := newCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s cache: %w", cfg.Cache, err)
	}
	defer store.Close()

	runner := shell.NewExec(logger)
	bar := newRecordBar(opts.quiet)
	dopts := deps.Options{
		DirectMode: !cfg.NoDirect,
		Flutter:    cfg.Flutter,
		Runner:     runner,
		Classifier: newClassifier(cfg, runner, store, logger),
		Logger:     logger,
		Progress:   bar.update,
	}

	m, err := lang.New(dir, dopts)
	if err != nil {
		return err
	}

	sw := newStopwatch(logger)
	spinner := newSpinnerWithContext(ctx, "Preparing scan...")
	if !opts.quiet {
		c.hooks.attach(spinner)
		spinner.Start()
	}
	res, err := deps.Scan(ctx, m, logger)
	c.hooks.attach(nil)
	spinner.Stop()
	bar.finish()
	if err != nil {
		return err
	}
	sw.done("Scanned %d %s packages", len(res.Rows), res.Manager)

	rep := report.New(res)
	if cfg.Output == "" {
		return report.Write(os.Stdout, rep, cfg.Format)
	}
	if err := report.Export(rep, cfg.Output, cfg.Format); err != nil {
		return err
	}

	if !opts.quiet {
		printSuccess("License report written")
		printFile(cfg.Output)
		if root := res.Root(); !root.IsZero() {
			printKeyValue("root", root.String())
		}
		printKeyValue("run", rep.RunID)
		printSummary(res.Rows)
	}
	return nil
}

// recordBar shows license classification progress on stderr. A disabled
// bar ignores updates.
type recordBar struct {
	disabled bool
	bar      *progressbar.ProgressBar
}

func newRecordBar(disabled bool) *recordBar {
	return &recordBar{disabled: disabled}
}

func (b *recordBar) update(done, total int) {
	if b.disabled {
		return
	}
	if b.bar == nil {
		b.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("classifying licenses"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = b.bar.Set(done)
}

func (b *recordBar) finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(os.Stderr)
}
