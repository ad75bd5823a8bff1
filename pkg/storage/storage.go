package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/opst/hbnb/pkg/models"
)

var (
	// requested model is not found
	ErrMissing = errors.New("missing")

	// the store refused a model because of its constraints
	ErrConstraint = errors.New("constraint violation")

	// the store cannot keep models of the class
	ErrUnsupportedClass = errors.New("unsupported class")
)

// Storage keeps models.
//
// Writes are staged by New and Delete, and made durable by Save.
type Storage interface {
	// All returns models of the class keyed by "<Class>.<Id>".
	//
	// When class is empty, all models are returned.
	All(ctx context.Context, class string) (map[string]models.Model, error)

	// New stages m to be saved.
	New(ctx context.Context, m models.Model) error

	// Save makes staged changes durable.
	Save(ctx context.Context) error

	// Delete stages removal of m. nil is ignored.
	Delete(ctx context.Context, m models.Model) error

	// Reload prepares the store from its durable form.
	//
	// The file store reads its file, the relational store brings its schema up.
	Reload(ctx context.Context) error

	Close() error
}

type Missing struct {
	Class string
	Id    string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s.%s is not found", m.Class, m.Id)
}

func (m Missing) Unwrap() error {
	return ErrMissing
}

// Save updates the timestamp of m and makes it durable.
func Save(ctx context.Context, st Storage, m models.Model) error {
	m.Meta().Touch()
	if err := st.New(ctx, m); err != nil {
		return err
	}
	return st.Save(ctx)
}

// Delete removes m durably.
func Delete(ctx context.Context, st Storage, m models.Model) error {
	if err := st.Delete(ctx, m); err != nil {
		return err
	}
	return st.Save(ctx)
}

// Get finds a model by class and id.
//
// When it is not found, the error is Missing.
func Get(ctx context.Context, st Storage, class string, id string) (models.Model, error) {
	all, err := st.All(ctx, class)
	if err != nil {
		return nil, err
	}
	m, ok := all[class+"."+id]
	if !ok {
		return nil, Missing{Class: class, Id: id}
	}
	return m, nil
}

// AllOf returns models of the class as T, in no particular order.
func AllOf[T models.Model](ctx context.Context, st Storage, class string) ([]T, error) {
	all, err := st.All(ctx, class)
	if err != nil {
		return nil, err
	}
	ret := make([]T, 0, len(all))
	for _, m := range all {
		if t, ok := m.(T); ok {
			ret = append(ret, t)
		}
	}
	return ret, nil
}
