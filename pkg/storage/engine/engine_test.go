package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/opst/hbnb/pkg/configs"
	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/engine"
	"github.com/opst/hbnb/pkg/utils/try"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("it opens the file store and reloads it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.json")
		{
			st := try.To(engine.Open(ctx, configs.StorageConfig{Type: configs.StorageFile, File: path})).OrFatal(t)
			s := models.NewState()
			s.Name = "Arizona"
			try.To(0, storage.Save(ctx, st, s)).OrFatal(t)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatal(err)
		}

		st := try.To(engine.Open(ctx, configs.StorageConfig{File: path})).OrFatal(t)
		defer st.Close()
		states := try.To(storage.AllOf[*models.State](ctx, st, models.ClassState)).OrFatal(t)
		if len(states) != 1 || states[0].Name != "Arizona" {
			t.Errorf("unexpected states: %v", states)
		}
	})

	t.Run("it rejects unknown storage types", func(t *testing.T) {
		_, err := engine.Open(ctx, configs.StorageConfig{Type: "mysql"})
		if !errors.Is(err, configs.ErrInvalidConfig) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
