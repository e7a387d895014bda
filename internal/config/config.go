// Package config holds application settings.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults
//  2. TOML file (docedit.toml, or the file named with -config)
//  3. .env file in the working directory
//  4. DOCEDIT_* environment variables
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/docedit/internal/config/loader"
	"github.com/dshills/docedit/internal/export"
	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/traverse"
)

// Default file locations.
const (
	DefaultFile   = "docedit.toml"
	DefaultDotEnv = ".env"
	EnvPrefix     = "DOCEDIT_"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level string
	File  string
}

// StorageConfig controls the directory-backed remote store.
type StorageConfig struct {
	Dir     string
	Service string
	Cache   bool
}

// WordCountConfig selects the counting policy.
type WordCountConfig struct {
	// Script is a Lua file defining count_words; empty selects the
	// whitespace policy.
	Script  string
	Timeout time.Duration
}

// ExportConfig controls exporters.
type ExportConfig struct {
	Accent    string
	Dir       string
	PageWidth int
	PageLines int
}

// Config is the complete application configuration.
type Config struct {
	Logging   LoggingConfig
	Storage   StorageConfig
	WordCount WordCountConfig
	Export    ExportConfig

	sources []string
	unknown []string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  "docedit.log",
		},
		Storage: StorageConfig{
			Dir:     "cloud_storage",
			Service: "Cloud Storage",
			Cache:   true,
		},
		WordCount: WordCountConfig{
			Timeout: 2 * time.Second,
		},
		Export: ExportConfig{
			Accent:    export.DefaultAccent,
			Dir:       ".",
			PageWidth: traverse.DefaultPageWidth,
			PageLines: traverse.DefaultPageLines,
		},
	}
}

// envMapping maps the documented variables to settings.
func envMapping() map[string]string {
	return map[string]string{
		"DOCEDIT_LOG_LEVEL":         "logging.level",
		"DOCEDIT_LOG_FILE":          "logging.file",
		"DOCEDIT_STORAGE_DIR":       "storage.dir",
		"DOCEDIT_STORAGE_SERVICE":   "storage.service",
		"DOCEDIT_STORAGE_CACHE":     "storage.cache",
		"DOCEDIT_WORDCOUNT_SCRIPT":  "wordcount.script",
		"DOCEDIT_WORDCOUNT_TIMEOUT": "wordcount.timeout",
		"DOCEDIT_EXPORT_ACCENT":     "export.accent",
		"DOCEDIT_EXPORT_DIR":        "export.dir",
	}
}

// field binds a settings path to a Config field.
type field struct {
	path string
	ptr  func(*Config) any
}

var fields = []field{
	{"logging.level", func(c *Config) any { return &c.Logging.Level }},
	{"logging.file", func(c *Config) any { return &c.Logging.File }},
	{"storage.dir", func(c *Config) any { return &c.Storage.Dir }},
	{"storage.service", func(c *Config) any { return &c.Storage.Service }},
	{"storage.cache", func(c *Config) any { return &c.Storage.Cache }},
	{"wordcount.script", func(c *Config) any { return &c.WordCount.Script }},
	{"wordcount.timeout", func(c *Config) any { return &c.WordCount.Timeout }},
	{"export.accent", func(c *Config) any { return &c.Export.Accent }},
	{"export.dir", func(c *Config) any { return &c.Export.Dir }},
	{"export.pageWidth", func(c *Config) any { return &c.Export.PageWidth }},
	{"export.pageLines", func(c *Config) any { return &c.Export.PageLines }},
}

// options controls Load.
type options struct {
	file         string
	fileRequired bool
	dotenv       string
	environ      []string
	useProcess   bool
	fs           loader.FileSystem
}

// Option configures Load.
type Option func(*options)

// WithFile names the TOML file. Unlike the default file it must exist.
func WithFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.file = path
			o.fileRequired = true
		}
	}
}

// WithDotEnv names the .env file. An empty path disables the layer.
func WithDotEnv(path string) Option {
	return func(o *options) {
		o.dotenv = path
	}
}

// WithEnviron replaces the process environment with KEY=VALUE pairs.
func WithEnviron(environ []string) Option {
	return func(o *options) {
		o.environ = environ
		o.useProcess = false
	}
}

// WithFS sets the file system used for the TOML file.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// Load builds the configuration from all layers and validates it.
func Load(opts ...Option) (*Config, error) {
	o := options{
		file:       DefaultFile,
		dotenv:     DefaultDotEnv,
		useProcess: true,
		fs:         loader.DefaultFS(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	type layer struct {
		source string
		l      loader.Loader
	}
	mapping := envMapping()
	layers := []layer{{o.file, loader.NewTOMLLoaderWithFS(o.fs, o.file, o.fileRequired)}}
	if o.dotenv != "" {
		layers = append(layers, layer{o.dotenv, loader.NewDotEnvLoader(o.dotenv, EnvPrefix, mapping)})
	}
	envLoader := loader.NewEnvLoaderFrom(EnvPrefix, mapping, o.environ)
	if o.useProcess {
		envLoader = loader.NewEnvLoader(EnvPrefix, mapping)
	}
	layers = append(layers, layer{"environment", envLoader})

	cfg := Default()
	merged := make(map[string]any)
	for _, ly := range layers {
		data, err := ly.l.Load()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		merged = loader.DeepMerge(merged, data)
		cfg.sources = append(cfg.sources, ly.source)
	}

	if err := cfg.ApplyMap(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyMap sets every known path present in data. Unknown paths are
// recorded and reported by Unknown.
func (c *Config) ApplyMap(data map[string]any) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.path] = true
		v, ok := loader.GetPath(data, f.path)
		if !ok {
			continue
		}
		if err := assign(f.ptr(c), v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, f.path, err)
		}
	}

	for _, p := range leafPaths("", data) {
		if !known[p] {
			c.unknown = append(c.unknown, p)
		}
	}
	return nil
}

func leafPaths(prefix string, data map[string]any) []string {
	var out []string
	for k, v := range data {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			out = append(out, leafPaths(p, m)...)
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// assign converts v to the type behind dst.
func assign(dst any, v any) error {
	switch d := dst.(type) {
	case *string:
		switch x := v.(type) {
		case string:
			*d = x
		case int64, float64, bool:
			*d = fmt.Sprint(x)
		default:
			return fmt.Errorf("want string, got %T", v)
		}
	case *bool:
		switch x := v.(type) {
		case bool:
			*d = x
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return fmt.Errorf("want boolean, got %q", x)
			}
			*d = b
		default:
			return fmt.Errorf("want boolean, got %T", v)
		}
	case *int:
		switch x := v.(type) {
		case int64:
			*d = int(x)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(x))
			if err != nil {
				return fmt.Errorf("want integer, got %q", x)
			}
			*d = n
		default:
			return fmt.Errorf("want integer, got %T", v)
		}
	case *time.Duration:
		switch x := v.(type) {
		case string:
			dur, err := time.ParseDuration(strings.TrimSpace(x))
			if err != nil {
				return fmt.Errorf("want duration, got %q", x)
			}
			*d = dur
		case int64:
			*d = time.Duration(x) * time.Second
		default:
			return fmt.Errorf("want duration, got %T", v)
		}
	default:
		return fmt.Errorf("unsupported setting type %T", dst)
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	bad := func(path, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, path, fmt.Sprintf(format, args...)))
	}

	if !logging.ValidLevel(c.Logging.Level) {
		bad("logging.level", "unknown level %q", c.Logging.Level)
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		bad("storage.dir", "must not be empty")
	}
	if strings.TrimSpace(c.Storage.Service) == "" {
		bad("storage.service", "must not be empty")
	}
	if c.WordCount.Timeout <= 0 {
		bad("wordcount.timeout", "must be positive")
	}
	if _, err := export.NormalizeColor(c.Export.Accent); err != nil {
		bad("export.accent", "%q is not a hex color", c.Export.Accent)
	}
	if c.Export.PageWidth < 20 {
		bad("export.pageWidth", "must be at least 20")
	}
	if c.Export.PageLines < 8 {
		bad("export.pageLines", "must be at least 8")
	}
	return errors.Join(errs...)
}

// Sources lists the layers that contributed settings, in order.
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

// Unknown lists setting paths that were present but not recognised.
func (c *Config) Unknown() []string {
	return append([]string(nil), c.unknown...)
}

// PDFOptions returns the page layout for PDF-style exports.
func (c *Config) PDFOptions() traverse.PDFOptions {
	return traverse.PDFOptions{Width: c.Export.PageWidth, PageLines: c.Export.PageLines}
}
