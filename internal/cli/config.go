package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/matzehuels/licscan/pkg/report"
)

// configFile is looked up in the scanned directory when --config is not set.
const configFile = "licscan.toml"

// Environment variables providing configuration defaults.
const (
	envRedisURL       = "LICSCAN_REDIS_URL"
	envLicenseScanner = "LICSCAN_LICENSE_SCANNER"
	envFlutter        = "LICSCAN_FLUTTER"
	envCache          = "LICSCAN_CACHE"
)

// Cache backends selectable with --cache.
const (
	cacheFile   = "file"
	cacheMemory = "memory"
	cacheRedis  = "redis"
	cacheNone   = "none"
)

// config is the merged scan configuration. Precedence, lowest first:
// defaults, environment (including .env), licscan.toml, explicit flags.
type config struct {
	Output         string `toml:"output"`
	Format         string `toml:"format"`
	NoDirect       bool   `toml:"no_direct"`
	Manager        string `toml:"manager"`
	Cache          string `toml:"cache"`
	RedisURL       string `toml:"redis_url"`
	LicenseScanner string `toml:"license_scanner"`
	Flutter        string `toml:"flutter"`
}

func defaultConfig() config {
	return config{Cache: cacheFile}
}

// applyEnv fills fields from the environment. A .env file in the working
// directory is loaded first; it never overrides variables already set.
func (c *config) applyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv(envRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(envLicenseScanner); v != "" {
		c.LicenseScanner = v
	}
	if v := os.Getenv(envFlutter); v != "" {
		c.Flutter = v
	}
	if v := os.Getenv(envCache); v != "" {
		c.Cache = v
	}
}

// applyFile decodes a TOML config over c. An explicit path must exist;
// the implicit licscan.toml in dir is optional.
func (c *config) applyFile(dir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, configFile)
		if _, err := os.Stat(path); err != nil {
			return "", nil
		}
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return "", fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return "", fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return path, nil
}

// applyFlags copies every flag the user set explicitly from f.
func (c *config) applyFlags(fs *pflag.FlagSet, f config) {
	set := func(name string, apply func()) {
		if fl := fs.Lookup(name); fl != nil && fl.Changed {
			apply()
		}
	}
	set("output", func() { c.Output = f.Output })
	set("format", func() { c.Format = f.Format })
	set("no-direct", func() { c.NoDirect = f.NoDirect })
	set("manager", func() { c.Manager = f.Manager })
	set("cache", func() { c.Cache = f.Cache })
	set("redis-url", func() { c.RedisURL = f.RedisURL })
	set("license-scanner", func() { c.LicenseScanner = f.LicenseScanner })
	set("flutter", func() { c.Flutter = f.Flutter })
}

func (c *config) validate() error {
	if c.Format == "" {
		c.Format = report.FormatFromPath(c.Output)
	}
	switch strings.ToLower(c.Format) {
	case report.FormatCSV, report.FormatJSON, report.FormatYAML, "yml":
	default:
		return fmt.Errorf("unsupported format %q (available: %s)", c.Format, strings.Join(report.Formats, ", "))
	}
	switch c.Cache {
	case cacheFile, cacheMemory, cacheNone:
	case cacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("--cache=redis requires --redis-url or %s", envRedisURL)
		}
	default:
		return fmt.Errorf("unknown cache backend %q (available: file, memory, redis, none)", c.Cache)
	}
	return nil
}

// loadConfig merges all configuration sources for a scan of dir.
func loadConfig(dir, path string, fs *pflag.FlagSet, flags config) (config, string, error) {
	cfg := defaultConfig()
	cfg.applyEnv()
	used, err := cfg.applyFile(dir, path)
	if err != nil {
		return config{}, "", err
	}
	cfg.applyFlags(fs, flags)
	if err := cfg.validate(); err != nil {
		return config{}, "", err
	}
	return cfg, used, nil
}
