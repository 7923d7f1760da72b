package cli

import (
	"context"

	"github.com/talegraph/talegraph/internal/config"
	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/notion"
	"github.com/talegraph/talegraph/pkg/snapshot"
	"github.com/talegraph/talegraph/pkg/source"
	"github.com/talegraph/talegraph/pkg/source/mongo"
)

// newSource builds the record source selected by the configuration. The
// returned cleanup releases any backend connections and is safe to call
// even when it is a no-op.
func newSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	switch cfg.Source {
	case config.SourceMongo:
		src, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = src.Close(context.Background()) }
		return src, cleanup, nil
	case config.SourceNotion:
		client := notion.NewClient(cfg.Token)
		return source.FromNotion(client, cfg.DatabaseID), func() {}, nil
	default:
		return nil, nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "unknown source %q", cfg.Source)
	}
}

// newStore builds the snapshot store selected by the configuration.
func newStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotRedis:
		return snapshot.NewRedisStore(ctx, cfg.Snapshot.RedisAddr)
	case config.SnapshotNone:
		return snapshot.NewNullStore(), nil
	case config.SnapshotFile:
		return snapshot.NewFileStore(cfg.Snapshot.Path)
	default:
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
