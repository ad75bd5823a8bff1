package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownClass = errors.New("unknown class")

	// attribute value is not acceptable.
	ErrInvalid = errors.New("invalid attribute")
)

type InvalidAttribute struct {
	Class  string
	Attr   string
	Reason string
}

var _ error = InvalidAttribute{}

func (e InvalidAttribute) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("%s: %s", e.Attr, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Class, e.Attr, e.Reason)
}

func (e InvalidAttribute) Unwrap() error {
	return ErrInvalid
}
