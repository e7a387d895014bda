package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvLoader loads configuration from environment variables.
//
// Mapped variables go to their configured path. Other variables with
// the prefix are converted by name: DOCEDIT_EXPORT_PAGE_WIDTH becomes
// export.pageWidth. Values are kept as strings; typing happens when the
// merged map is applied to a configuration struct.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "DOCEDIT_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a loader over the process environment. The
// prefix should include the trailing underscore (e.g., "DOCEDIT_").
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping, environ: os.Environ}
}

// NewEnvLoaderFrom creates a loader over a fixed list of KEY=VALUE
// pairs.
func NewEnvLoaderFrom(prefix string, mapping map[string]string, environ []string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: func() []string { return environ },
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		SetPath(config, path, value)
	}
	return config, nil
}

// envToPath converts DOCEDIT_EXPORT_PAGE_WIDTH to export.pageWidth.
// Names without a setting part are ignored.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + setting
}

// DotEnvLoader loads prefixed variables from a .env file with the same
// rules as EnvLoader. The process environment is not modified.
type DotEnvLoader struct {
	path    string
	prefix  string
	mapping map[string]string
}

// NewDotEnvLoader creates a loader for the .env file at path.
func NewDotEnvLoader(path, prefix string, mapping map[string]string) *DotEnvLoader {
	return &DotEnvLoader{path: path, prefix: prefix, mapping: mapping}
}

// Load parses the file. A missing file yields no settings.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	vars, err := godotenv.Read(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", l.path, err)
	}

	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return NewEnvLoaderFrom(l.prefix, l.mapping, environ).Load()
}
