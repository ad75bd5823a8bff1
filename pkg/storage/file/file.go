// Package file implements storage.Storage on a JSON file.
//
// The file is a single JSON object mapping "<Class>.<Id>" to the dictionary
// form of each model. No constraints are enforced.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	xe "github.com/opst/hbnb/pkg/errors"
	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
)

const DefaultPath = "file.json"

type fileStorage struct { // implements storage.Storage
	path string

	mu      sync.Mutex
	objects map[string]models.Model

	// held while a Save takes a snapshot and writes it, so the newest snapshot is renamed last.
	saving sync.Mutex
}

var _ storage.Storage = &fileStorage{}

// New returns an empty store backed by the file at path.
//
// To read what is already in the file, call Reload.
func New(path string) *fileStorage {
	if path == "" {
		path = DefaultPath
	}
	return &fileStorage{path: path, objects: map[string]models.Model{}}
}

// Path is where the store persists models.
func (f *fileStorage) Path() string {
	return f.path
}

func (f *fileStorage) All(_ context.Context, class string) (map[string]models.Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ret := make(map[string]models.Model, len(f.objects))
	for k, m := range f.objects {
		if class != "" && m.Class() != class {
			continue
		}
		ret[k] = m
	}
	return ret, nil
}

func (f *fileStorage) New(_ context.Context, m models.Model) error {
	if m == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[models.Key(m)] = m
	return nil
}

func (f *fileStorage) Delete(_ context.Context, m models.Model) error {
	if m == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, models.Key(m))
	return nil
}

// Save writes all models into the file.
//
// The content is written to a temporary file first, and renamed to the path.
func (f *fileStorage) Save(context.Context) error {
	f.saving.Lock()
	defer f.saving.Unlock()

	f.mu.Lock()
	dicts := make(map[string]models.Dict, len(f.objects))
	for k, m := range f.objects {
		dicts[k] = m.ToDict()
	}
	f.mu.Unlock()

	content, err := json.Marshal(dicts)
	if err != nil {
		return xe.Wrap(err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return xe.Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return xe.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return xe.Wrap(err)
	}
	return xe.Wrap(os.Rename(tmp.Name(), f.path))
}

// Reload replaces models in memory with the content of the file.
//
// When the file does not exist, models in memory are left as they are.
func (f *fileStorage) Reload(context.Context) error {
	content, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return xe.Wrap(err)
	}

	dicts := map[string]models.Dict{}
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&dicts); err != nil {
		return xe.WrapWithNote(f.path, err)
	}

	objects := make(map[string]models.Model, len(dicts))
	for key, d := range dicts {
		m, err := models.Restore(d)
		if err != nil {
			return xe.WrapWithNote(key, err)
		}
		objects[models.Key(m)] = m
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = objects
	return nil
}

// Close does nothing. The file is not kept open.
func (f *fileStorage) Close() error {
	return nil
}
