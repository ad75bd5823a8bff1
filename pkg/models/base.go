package models

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the layout of timestamps in dictionaries.
//
// Parsing also accepts timestamps without the fraction part.
const TimeFormat = "2006-01-02T15:04:05.000000"

const (
	KeyClass     = "__class__"
	KeyId        = "id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// Dict is the dictionary form of a model.
//
// It is what the file store persists, and what the console reads from its
// command line.
type Dict map[string]any

// Base is the part common to all models.
type Base struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// attributes set at runtime which the class does not declare.
	Attrs map[string]any
}

// Model is an entity of HBNB.
type Model interface {
	// Class name, like "State".
	Class() string

	// Meta returns the Base of the model. Modifications are visible to the model.
	Meta() *Base

	// ToDict returns all attributes, with timestamps formatted and "__class__".
	ToDict() Dict

	// Validate checks the constraints which the relational store requires.
	Validate() error

	// load takes declared attributes out of d, and assigns them.
	// Keys not in d are left untouched.
	load(d Dict) error
}

// now returns the current time in the precision which timestamps are kept in.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newBase() Base {
	t := now()
	return Base{Id: uuid.NewString(), CreatedAt: t, UpdatedAt: t}
}

func (b *Base) Meta() *Base {
	return b
}

// Touch updates UpdatedAt to now.
//
// UpdatedAt strictly increases even when the clock does not move.
func (b *Base) Touch() {
	t := now()
	if !t.After(b.UpdatedAt) {
		t = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = t
}

// Set puts an undeclared attribute.
func (b *Base) Set(key string, value any) {
	if b.Attrs == nil {
		b.Attrs = map[string]any{}
	}
	b.Attrs[key] = value
}

// Get looks up an undeclared attribute.
func (b *Base) Get(key string) (any, bool) {
	v, ok := b.Attrs[key]
	return v, ok
}

func (b *Base) dict(class string) Dict {
	d := make(Dict, len(b.Attrs)+4)
	for k, v := range b.Attrs {
		d[k] = v
	}
	d[KeyId] = b.Id
	d[KeyCreatedAt] = b.CreatedAt.Format(TimeFormat)
	d[KeyUpdatedAt] = b.UpdatedAt.Format(TimeFormat)
	d[KeyClass] = class
	return d
}

func (b *Base) loadBase(d Dict) error {
	var errs []error
	if err := pick(d, KeyId, &b.Id, asString); err != nil {
		errs = append(errs, err)
	}
	if err := pick(d, KeyCreatedAt, &b.CreatedAt, asTime); err != nil {
		errs = append(errs, err)
	}
	if err := pick(d, KeyUpdatedAt, &b.UpdatedAt, asTime); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Key is the identity of a model in stores: "<Class>.<Id>".
func Key(m Model) string {
	return m.Class() + "." + m.Meta().Id
}

// Describe formats a model as "[<Class>] (<Id>) <attributes>".
func Describe(m Model) string {
	d := m.ToDict()
	delete(d, KeyClass)
	return fmt.Sprintf("[%s] (%s) %v", m.Class(), m.Meta().Id, map[string]any(d))
}

// Restore rebuilds a model from its dictionary form. "__class__" selects the class.
func Restore(d Dict) (Model, error) {
	class, ok := d[KeyClass].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q is missing", ErrUnknownClass, KeyClass)
	}
	return RestoreAs(class, d)
}

// RestoreAs rebuilds a model of the class from a dictionary.
//
// id and timestamps are taken from d when present, and generated otherwise.
// Keys which the class does not declare become undeclared attributes.
func RestoreAs(class string, d Dict) (Model, error) {
	m, err := New(class)
	if err != nil {
		return nil, err
	}

	rest := maps.Clone(d)
	delete(rest, KeyClass)
	if err := m.Meta().loadBase(rest); err != nil {
		return nil, err
	}
	if err := m.load(rest); err != nil {
		return nil, err
	}
	for k, v := range rest {
		m.Meta().Set(k, v)
	}
	return m, nil
}

// Update assigns attributes to a model.
//
// id, timestamps and "__class__" in attrs are ignored.
func Update(m Model, attrs Dict) error {
	rest := maps.Clone(attrs)
	for _, k := range []string{KeyClass, KeyId, KeyCreatedAt, KeyUpdatedAt} {
		delete(rest, k)
	}
	if err := m.load(rest); err != nil {
		return err
	}
	for k, v := range rest {
		m.Meta().Set(k, v)
	}
	return nil
}
