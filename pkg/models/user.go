package models

import (
	"errors"
	"strings"
)

type User struct {
	Base
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func NewUser() *User {
	return &User{Base: newBase()}
}

func (*User) Class() string { return ClassUser }

func (u *User) ToDict() Dict {
	d := u.dict(u.Class())
	d["email"] = u.Email
	d["password"] = u.Password
	d["first_name"] = u.FirstName
	d["last_name"] = u.LastName
	return d
}

func (u *User) Validate() error {
	c := &constraints{class: u.Class()}
	return c.
		required("email", u.Email).maxLength("email", u.Email, 128).
		required("password", u.Password).maxLength("password", u.Password, 128).
		maxLength("first_name", u.FirstName, 128).
		maxLength("last_name", u.LastName, 128).
		err()
}

func (u *User) load(d Dict) error {
	return errors.Join(
		pick(d, "email", &u.Email, asString),
		pick(d, "password", &u.Password, asString),
		pick(d, "first_name", &u.FirstName, asString),
		pick(d, "last_name", &u.LastName, asString),
	)
}

// FullName is "<first> <last>", trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) String() string { return Describe(u) }
