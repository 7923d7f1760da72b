package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/talegraph/talegraph/internal/config"
	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/snapshot"
)

func TestNewSourceNotion(t *testing.T) {
	cfg := config.Default()
	cfg.Token = "secret"
	cfg.DatabaseID = "db-1"

	src, cleanup, err := newSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}
	defer cleanup()

	if src.Name() != "notion" {
		t.Errorf("Name() = %q, want notion", src.Name())
	}
}

func TestNewSourceUnknown(t *testing.T) {
	cfg := config.Default()
	cfg.Source = "carrier-pigeon"

	_, _, err := newSource(context.Background(), cfg)
	if !apperrors.Is(err, apperrors.ErrCodeConfigInvalid) {
		t.Errorf("newSource() error = %v, want CONFIG_INVALID", err)
	}
}

func TestNewStoreBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    any
		wantErr bool
	}{
		{name: "file", backend: config.SnapshotFile, want: &snapshot.FileStore{}},
		{name: "none", backend: config.SnapshotNone, want: &snapshot.NullStore{}},
		{name: "unknown", backend: "floppy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Snapshot.Backend = tt.backend
			cfg.Snapshot.Path = filepath.Join(t.TempDir(), "snapshot.json")

			store, err := newStore(context.Background(), cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("newStore() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newStore() error = %v", err)
			}
			defer store.Close()

			switch tt.want.(type) {
			case *snapshot.FileStore:
				if _, ok := store.(*snapshot.FileStore); !ok {
					t.Errorf("newStore() = %T, want *snapshot.FileStore", store)
				}
			case *snapshot.NullStore:
				if _, ok := store.(*snapshot.NullStore); !ok {
					t.Errorf("newStore() = %T, want *snapshot.NullStore", store)
				}
			}
		})
	}
}
