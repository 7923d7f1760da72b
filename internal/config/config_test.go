package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		EnvToken, EnvTokenLegacy, EnvDatabaseID, EnvListen, EnvTheme,
		EnvSource, EnvSnapshot, EnvRedisAddr, EnvMongoURI,
	} {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Source != SourceNotion {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceNotion)
	}
	if cfg.Listen != ":8420" {
		t.Errorf("Listen = %q, want :8420", cfg.Listen)
	}
	if cfg.Snapshot.Backend != SnapshotFile {
		t.Errorf("Snapshot.Backend = %q, want file", cfg.Snapshot.Backend)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
token = "file-token"
database_id = "file-db"
theme = "dark"

[snapshot]
backend = "redis"
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDatabaseID, "env-db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want file-token", cfg.Token)
	}
	// Environment overrides the file
	if cfg.DatabaseID != "env-db" {
		t.Errorf("DatabaseID = %q, want env-db", cfg.DatabaseID)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
	if cfg.Snapshot.Backend != SnapshotRedis || cfg.Snapshot.RedisAddr != "localhost:6379" {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
}

func TestLegacyTokenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTokenLegacy, "legacy-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Token != "legacy-token" {
		t.Errorf("Token = %q, want legacy-token", cfg.Token)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode apperrors.Code
	}{
		{
			name:   "valid notion config",
			mutate: func(c *Config) { c.Token = "t"; c.DatabaseID = "db" },
		},
		{
			name:     "missing database id",
			mutate:   func(c *Config) { c.Token = "t" },
			wantCode: apperrors.ErrCodeConfigMissing,
		},
		{
			name:     "missing token",
			mutate:   func(c *Config) { c.DatabaseID = "db" },
			wantCode: apperrors.ErrCodeConfigMissing,
		},
		{
			name: "mongo needs uri",
			mutate: func(c *Config) {
				c.DatabaseID = "db"
				c.Source = SourceMongo
			},
			wantCode: apperrors.ErrCodeConfigMissing,
		},
		{
			name: "mongo with uri",
			mutate: func(c *Config) {
				c.DatabaseID = "db"
				c.Source = SourceMongo
				c.Mongo.URI = "mongodb://localhost"
			},
		},
		{
			name: "unknown source",
			mutate: func(c *Config) {
				c.Token = "t"
				c.DatabaseID = "db"
				c.Source = "carrier-pigeon"
			},
			wantCode: apperrors.ErrCodeConfigInvalid,
		},
		{
			name: "redis snapshot needs addr",
			mutate: func(c *Config) {
				c.Token = "t"
				c.DatabaseID = "db"
				c.Snapshot.Backend = SnapshotRedis
			},
			wantCode: apperrors.ErrCodeConfigMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error: %v, want nil", err)
				}
				return
			}
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("Validate() code = %v, want %v", apperrors.GetCode(err), tt.wantCode)
			}
		})
	}
}
