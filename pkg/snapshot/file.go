package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
)

// FileStore keeps the snapshot as a single JSON document on disk. The file
// is read whole and replaced whole; concurrent writers are out of scope for
// a single-operator deployment.
type FileStore struct {
	path string
}

// NewFileStore creates a file-based store writing to path. If path is
// empty, the default ~/.cache/talegraph/snapshot.json is used. The parent
// directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "resolve home dir")
		}
		path = filepath.Join(home, ".cache", "talegraph", "snapshot.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "create snapshot dir")
	}
	return &FileStore{path: path}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot file. A missing, unparseable, or mismatching
// file is a miss, not an error.
func (s *FileStore) Load(ctx context.Context, databaseID string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "read %s", s.path)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt snapshot, treat as miss
		return nil, nil
	}
	if !snap.matches(databaseID) {
		return nil, nil
	}
	return &snap, nil
}

// Save writes the snapshot, replacing any previous file. The write goes
// through a temp file and rename so readers never observe a partial file.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "marshal snapshot")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "replace %s", s.path)
	}
	return nil
}

// Clear removes the snapshot file if it belongs to the given database.
func (s *FileStore) Clear(ctx context.Context, databaseID string) error {
	snap, err := s.Load(ctx, databaseID)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "remove %s", s.path)
	}
	return nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
