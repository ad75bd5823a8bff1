// Package engine opens the storage selected by configuration.
package engine

import (
	"context"
	"fmt"

	"github.com/opst/hbnb/pkg/configs"
	xe "github.com/opst/hbnb/pkg/errors"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/file"
	"github.com/opst/hbnb/pkg/storage/postgres"
)

// Open returns the storage selected by conf.Type, reloaded.
//
// "file" (or empty) selects the file store, and "db" selects the relational store.
func Open(ctx context.Context, conf configs.StorageConfig) (storage.Storage, error) {
	var st storage.Storage
	switch conf.Type {
	case configs.StorageFile, "":
		st = file.New(conf.File)
	case configs.StorageDB:
		opts := []postgres.Option{}
		if conf.Env == configs.EnvTest {
			opts = append(opts, postgres.WithDropTables())
		}
		pg, err := postgres.Open(ctx, conf.Database.URL(), opts...)
		if err != nil {
			return nil, err
		}
		st = pg
	default:
		return nil, fmt.Errorf("%w: unknown storage type: %s", configs.ErrInvalidConfig, conf.Type)
	}

	if err := st.Reload(ctx); err != nil {
		st.Close()
		return nil, xe.Wrap(err)
	}
	return st, nil
}
