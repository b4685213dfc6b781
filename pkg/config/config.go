// Package config loads gobarman's configuration: embedded defaults, then
// the user configuration file, then GOBARMAN_ environment overrides.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/espressodb/gobarman/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements the koanf provider interface for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}

// OutputConfig holds the output-layer defaults
type OutputConfig struct {
	// Writer is the registry name of the writer installed at startup
	Writer string `koanf:"writer"`
	Quiet  bool   `koanf:"quiet"`
	Debug  bool   `koanf:"debug"`
}

// ServerConfig describes one managed PostgreSQL server
type ServerConfig struct {
	Name              string `koanf:"name"`
	Description       string `koanf:"description"`
	BackupDirectory   string `koanf:"backup_directory"`
	RetentionPolicy   string `koanf:"retention_policy"`
	MinimumRedundancy int    `koanf:"minimum_redundancy"`
}

// Config is the loaded gobarman configuration
type Config struct {
	// BarmanHome is the root of the on-disk backup catalog. Server
	// entries without a backup directory default to a subdirectory of it.
	BarmanHome string         `koanf:"barman_home"`
	Output     OutputConfig   `koanf:"output"`
	Servers    []ServerConfig `koanf:"servers"`
}

// DefaultPath returns the user configuration path under XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "gobarman", "gobarman.toml")
}

// Load reads the configuration. An empty path means the default location;
// a missing file at the default location is not an error, only explicit
// paths must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read config %s", path)
	}

	// GOBARMAN_OUTPUT_QUIET=true overrides output.quiet, and so on.
	if err := k.Load(env.Provider("GOBARMAN_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GOBARMAN_")), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills the per-server backup directory from barman_home
func (c *Config) applyDefaults() {
	if c.BarmanHome == "" {
		c.BarmanHome = filepath.Join(xdg.DataHome, "gobarman")
	}
	for i := range c.Servers {
		if c.Servers[i].BackupDirectory == "" {
			c.Servers[i].BackupDirectory = filepath.Join(c.BarmanHome, c.Servers[i].Name)
		}
	}
}

// Server returns the configuration of the named server.
func (c *Config) Server(name string) (ServerConfig, error) {
	for _, srv := range c.Servers {
		if srv.Name == name {
			return srv, nil
		}
	}
	return ServerConfig{}, errors.Newf(errors.ErrServerNotFound,
		"server %q is not configured", name)
}

// ServerNames returns the configured server names in declaration order.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for _, srv := range c.Servers {
		names = append(names, srv.Name)
	}
	return names
}
