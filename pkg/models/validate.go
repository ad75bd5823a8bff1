package models

import (
	"errors"
	"unicode/utf8"
)

// constraints of a class. Violations are collected, not short-circuited.
type constraints struct {
	class string
	errs  []error
}

func (c *constraints) required(attr string, value string) *constraints {
	if value == "" {
		c.errs = append(c.errs, InvalidAttribute{Class: c.class, Attr: attr, Reason: "required"})
	}
	return c
}

func (c *constraints) maxLength(attr string, value string, max int) *constraints {
	if utf8.RuneCountInString(value) > max {
		c.errs = append(c.errs, InvalidAttribute{
			Class: c.class, Attr: attr, Reason: "too long",
		})
	}
	return c
}

func (c *constraints) nonNegative(attr string, value int) *constraints {
	if value < 0 {
		c.errs = append(c.errs, InvalidAttribute{Class: c.class, Attr: attr, Reason: "negative"})
	}
	return c
}

func (c *constraints) err() error {
	return errors.Join(c.errs...)
}
