package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/opst/hbnb/pkg/storage"
)

func TestAsConstraintViolation(t *testing.T) {
	type When struct {
		Err error
	}
	type Then struct {
		IsConstraint bool
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := asConstraintViolation(when.Err)

			if errors.Is(got, storage.ErrConstraint) != then.IsConstraint {
				t.Errorf("errors.Is(%v, ErrConstraint): expected %v", got, then.IsConstraint)
			}
			if !errors.Is(got, when.Err) {
				t.Errorf("cause is lost: %v", got)
			}
		}
	}

	for name, code := range map[string]string{
		"not null":    pgerrcode.NotNullViolation,
		"foreign key": pgerrcode.ForeignKeyViolation,
		"check":       pgerrcode.CheckViolation,
		"unique":      pgerrcode.UniqueViolation,
		"too long":    pgerrcode.StringDataRightTruncationDataException,
	} {
		t.Run("it converts "+name+" violation", theory(
			When{Err: &pgconn.PgError{Code: code, TableName: "cities"}},
			Then{IsConstraint: true},
		))
	}

	t.Run("it does not convert other postgres errors", theory(
		When{Err: &pgconn.PgError{Code: pgerrcode.UndefinedTable}},
		Then{IsConstraint: false},
	))

	t.Run("it does not convert non-postgres errors", theory(
		When{Err: errors.New("fake error")},
		Then{IsConstraint: false},
	))
}

func TestConstraintViolation_Error(t *testing.T) {
	err := ConstraintViolation{Table: "states", Reason: "name is required"}
	if got := err.Error(); got != "constraint violation in states: name is required" {
		t.Errorf("unexpected message: %s", got)
	}
	if !errors.Is(err, storage.ErrConstraint) {
		t.Errorf("it should be ErrConstraint")
	}
}
