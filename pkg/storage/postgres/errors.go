package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/opst/hbnb/pkg/storage"
)

// a row violates a constraint of a table.
type ConstraintViolation struct {
	Table  string
	Reason string
	cause  error
}

var _ error = ConstraintViolation{}

func (c ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation in %s: %s", c.Table, c.Reason)
}

func (c ConstraintViolation) Unwrap() []error {
	if c.cause == nil {
		return []error{storage.ErrConstraint}
	}
	return []error{storage.ErrConstraint, c.cause}
}

var constraintCodes = map[string]struct{}{
	pgerrcode.NotNullViolation:                       {},
	pgerrcode.ForeignKeyViolation:                    {},
	pgerrcode.CheckViolation:                         {},
	pgerrcode.UniqueViolation:                        {},
	pgerrcode.StringDataRightTruncationDataException: {},
}

// asConstraintViolation converts errors from postgres for constraints into ConstraintViolation.
//
// Other errors are returned as they are.
func asConstraintViolation(err error) error {
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) {
		return err
	}
	if _, ok := constraintCodes[pgerr.Code]; !ok {
		return err
	}
	return ConstraintViolation{Table: pgerr.TableName, Reason: pgerr.Message, cause: err}
}
