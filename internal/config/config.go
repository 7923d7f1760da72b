// Package config loads operator configuration from an optional TOML file
// with environment-variable overrides. The two secrets the system needs —
// the integration token and the database identifier — are configuration,
// not part of the data-model contract; their absence is a fatal
// configuration error reported to the operator.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
)

// Source backends.
const (
	SourceNotion = "notion"
	SourceMongo  = "mongo"
)

// Snapshot backends.
const (
	SnapshotFile  = "file"
	SnapshotRedis = "redis"
	SnapshotNone  = "none"
)

// Config holds the full runtime configuration.
type Config struct {
	// Source selects the record backend: "notion" (default) or "mongo".
	Source string `toml:"source"`

	// Token is the Notion integration token.
	Token string `toml:"token"`

	// DatabaseID identifies the timeline database.
	DatabaseID string `toml:"database_id"`

	// Listen is the web UI listen address (default ":8420").
	Listen string `toml:"listen"`

	// Theme is the default diagram theme: "light" or "dark".
	Theme string `toml:"theme"`

	Snapshot SnapshotConfig `toml:"snapshot"`
	Mongo    MongoConfig    `toml:"mongo"`
}

// SnapshotConfig selects and parameterizes the snapshot store.
type SnapshotConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// Path is the snapshot file location for the file backend.
	// Empty means ~/.cache/talegraph/snapshot.json.
	Path string `toml:"path"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// MongoConfig parameterizes the mongo source backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Environment variable names. TALEGRAPH_NOTION_TOKEN takes precedence over
// NOTION_KEY; the latter is kept for compatibility with existing
// deployments of the timeline database.
const (
	EnvToken       = "TALEGRAPH_NOTION_TOKEN"
	EnvTokenLegacy = "NOTION_KEY"
	EnvDatabaseID  = "TIMELINE_DATABASE_ID"
	EnvListen      = "TALEGRAPH_LISTEN"
	EnvTheme       = "TALEGRAPH_THEME"
	EnvSource      = "TALEGRAPH_SOURCE"
	EnvSnapshot    = "TALEGRAPH_SNAPSHOT_PATH"
	EnvRedisAddr   = "TALEGRAPH_REDIS_ADDR"
	EnvMongoURI    = "TALEGRAPH_MONGO_URI"
)

// Default returns the configuration defaults before file and environment
// are applied.
func Default() *Config {
	return &Config{
		Source: SourceNotion,
		Listen: ":8420",
		Theme:  "light",
		Snapshot: SnapshotConfig{
			Backend: SnapshotFile,
		},
		Mongo: MongoConfig{
			Database:   "talegraph",
			Collection: "records",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file (explicit
// path, or ~/.config/talegraph/config.toml if present), then environment
// overrides. Load does not validate; call [Config.Validate] once the
// command knows which parts it needs.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeConfigInvalid, err, "parse %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeConfigInvalid, err, "read %s", path)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "talegraph", "config.toml")
}

func applyEnv(cfg *Config) {
	setIf(&cfg.Token, EnvToken)
	if cfg.Token == "" {
		setIf(&cfg.Token, EnvTokenLegacy)
	}
	setIf(&cfg.DatabaseID, EnvDatabaseID)
	setIf(&cfg.Listen, EnvListen)
	setIf(&cfg.Theme, EnvTheme)
	setIf(&cfg.Source, EnvSource)
	setIf(&cfg.Snapshot.Path, EnvSnapshot)
	setIf(&cfg.Snapshot.RedisAddr, EnvRedisAddr)
	setIf(&cfg.Mongo.URI, EnvMongoURI)
}

func setIf(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks that the configured backend has the settings it needs.
func (c *Config) Validate() error {
	if c.DatabaseID == "" {
		return apperrors.New(apperrors.ErrCodeConfigMissing,
			"database identifier is not set (set %s or database_id in the config file)", EnvDatabaseID)
	}

	switch c.Source {
	case SourceNotion:
		if c.Token == "" {
			return apperrors.New(apperrors.ErrCodeConfigMissing,
				"integration token is not set (set %s or %s)", EnvToken, EnvTokenLegacy)
		}
	case SourceMongo:
		if c.Mongo.URI == "" {
			return apperrors.New(apperrors.ErrCodeConfigMissing,
				"mongo URI is not set (set %s or mongo.uri in the config file)", EnvMongoURI)
		}
	default:
		return apperrors.New(apperrors.ErrCodeConfigInvalid,
			"unknown source %q (must be %q or %q)", c.Source, SourceNotion, SourceMongo)
	}

	switch c.Snapshot.Backend {
	case SnapshotFile, SnapshotNone:
	case SnapshotRedis:
		if c.Snapshot.RedisAddr == "" {
			return apperrors.New(apperrors.ErrCodeConfigMissing,
				"redis snapshot backend needs an address (set %s)", EnvRedisAddr)
		}
	default:
		return apperrors.New(apperrors.ErrCodeConfigInvalid,
			"unknown snapshot backend %q", c.Snapshot.Backend)
	}

	return nil
}
