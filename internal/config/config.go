// Package config provides configuration loading.
//
// Configuration is read from a TOML file with built-in defaults and
// environment variable overrides. Values are accessed through defaulted
// nested lookups; the store is read-only after Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/voxctl/voxctl/internal/colors"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

// Config is a read-only nested key/value store.
type Config struct {
	values map[string]any
}

// DefaultPath returns the default configuration file location,
// ${XDG_CONFIG_HOME}/voxctl/config.toml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "voxctl", "config.toml")
}

// Load reads configuration from the given path on fs, merged over defaults.
// A missing file is not an error; defaults are used. Environment variables
// are applied last so they always win.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := &Config{values: defaults()}

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := afero.ReadFile(fs, path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			var fileValues map[string]any
			if err := toml.Unmarshal(data, &fileValues); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			merge(cfg.values, fileValues)
		}
	}

	cfg.applyEnv()
	cfg.validate()
	return cfg, nil
}

// merge overlays src onto dst, recursing into nested tables.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if srcTable, ok := v.(map[string]any); ok {
			if dstTable, ok := dst[k].(map[string]any); ok {
				merge(dstTable, srcTable)
				continue
			}
		}
		dst[k] = v
	}
}

// envOverrides maps environment variables to configuration paths.
var envOverrides = map[string][]string{
	"VOXCTL_LOGGING":         {"logging", "enabled"},
	"VOXCTL_LOG_LEVEL":       {"logging", "level"},
	"VOXCTL_GRID_SIZE":       {"grid", "default_size"},
	"VOXCTL_FUZZY_THRESHOLD": {"parser", "fuzzy_threshold"},
	"VOXCTL_MODEL":           {"model", "path"},
}

// applyEnv applies environment variable overrides. Env always wins over
// file values, matching the precedence defaults < file < env.
func (c *Config) applyEnv() {
	for env, path := range envOverrides {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		c.set(path, coerce(val))
	}
}

// coerce converts an env string into bool, int, or float when it parses as one.
func coerce(val string) any {
	switch strings.ToLower(val) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	return val
}

func (c *Config) set(path []string, value any) {
	table := c.values
	for _, key := range path[:len(path)-1] {
		next, ok := table[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			table[key] = next
		}
		table = next
	}
	table[path[len(path)-1]] = value
}

// validate normalizes out-of-range values back to defaults with a warning.
func (c *Config) validate() {
	size := c.GetInt(9, "grid", "default_size")
	if size < 2 || size > 9 {
		colors.Warning(fmt.Sprintf("invalid grid.default_size %d: must be in [2,9], using default: 9", size))
		c.set([]string{"grid", "default_size"}, int64(9))
	}
	threshold := c.GetFloat(0.8, "parser", "fuzzy_threshold")
	if threshold < 0 || threshold > 1 {
		colors.Warning(fmt.Sprintf("invalid parser.fuzzy_threshold %v: must be in [0,1], using default: 0.8", threshold))
		c.set([]string{"parser", "fuzzy_threshold"}, 0.8)
	}
}

// Value walks the nested tables along path and returns the raw value.
func (c *Config) Value(path ...string) (any, bool) {
	var current any = c.values
	for _, key := range path {
		table, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = table[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Get returns the string value at path, or def when absent.
func (c *Config) Get(def string, path ...string) string {
	v, ok := c.Value(path...)
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return def
	}
}

// GetBool returns the boolean value at path, or def when absent or not a boolean.
func (c *Config) GetBool(def bool, path ...string) bool {
	v, ok := c.Value(path...)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// GetInt returns the integer value at path, or def when absent or not numeric.
func (c *Config) GetInt(def int, path ...string) int {
	v, ok := c.Value(path...)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

// GetFloat returns the float value at path, or def when absent or not numeric.
func (c *Config) GetFloat(def float64, path ...string) float64 {
	v, ok := c.Value(path...)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return def
	}
}

// GetStringMap returns the table at path flattened into string values.
// Returns an empty map when the path is absent.
func (c *Config) GetStringMap(path ...string) map[string]string {
	out := make(map[string]string)
	v, ok := c.Value(path...)
	if !ok {
		return out
	}
	table, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, raw := range table {
		if s, ok := raw.(string); ok {
			out[k] = s
		}
	}
	return out
}

// GetStringSlice returns the array of strings at path, or nil when absent.
func (c *Config) GetStringSlice(path ...string) []string {
	v, ok := c.Value(path...)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetTableSlice returns the array of tables at path, or nil when absent.
// Used for structured sections such as custom commands.
func (c *Config) GetTableSlice(path ...string) []map[string]any {
	v, ok := c.Value(path...)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		// go-toml decodes [[section]] as []map[string]any
		if tables, ok := v.([]map[string]any); ok {
			return tables
		}
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if table, ok := item.(map[string]any); ok {
			out = append(out, table)
		}
	}
	return out
}
