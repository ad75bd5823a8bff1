package mocks

import (
	"context"
	"errors"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
)

type Storage struct {
	Impl struct {
		All    func(context.Context, string) (map[string]models.Model, error)
		New    func(context.Context, models.Model) error
		Save   func(context.Context) error
		Delete func(context.Context, models.Model) error
		Reload func(context.Context) error
		Close  func() error
	}
	Calls struct {
		All    CallLog[string]
		New    CallLog[models.Model]
		Save   int
		Delete CallLog[models.Model]
		Reload int
		Close  int
	}
}

type CallLog[T any] []T

func (cl CallLog[T]) Times() int {
	return len(cl)
}

var _ storage.Storage = &Storage{}

func NewStorage() *Storage {
	return &Storage{}
}

// WithModels makes All answer from ms.
func (m *Storage) WithModels(ms ...models.Model) *Storage {
	m.Impl.All = func(_ context.Context, class string) (map[string]models.Model, error) {
		ret := map[string]models.Model{}
		for _, model := range ms {
			if class == "" || model.Class() == class {
				ret[models.Key(model)] = model
			}
		}
		return ret, nil
	}
	return m
}

func (m *Storage) All(ctx context.Context, class string) (map[string]models.Model, error) {
	m.Calls.All = append(m.Calls.All, class)
	if m.Impl.All != nil {
		return m.Impl.All(ctx, class)
	}

	panic(errors.New("should not be called"))
}

func (m *Storage) New(ctx context.Context, model models.Model) error {
	m.Calls.New = append(m.Calls.New, model)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, model)
	}

	panic(errors.New("should not be called"))
}

func (m *Storage) Save(ctx context.Context) error {
	m.Calls.Save++
	if m.Impl.Save != nil {
		return m.Impl.Save(ctx)
	}

	panic(errors.New("should not be called"))
}

func (m *Storage) Delete(ctx context.Context, model models.Model) error {
	m.Calls.Delete = append(m.Calls.Delete, model)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, model)
	}

	panic(errors.New("should not be called"))
}

func (m *Storage) Reload(ctx context.Context) error {
	m.Calls.Reload++
	if m.Impl.Reload != nil {
		return m.Impl.Reload(ctx)
	}

	panic(errors.New("should not be called"))
}

func (m *Storage) Close() error {
	m.Calls.Close++
	if m.Impl.Close != nil {
		return m.Impl.Close()
	}
	return nil
}
