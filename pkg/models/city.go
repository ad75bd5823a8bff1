package models

import "errors"

type City struct {
	Base
	StateId string
	Name    string
}

func NewCity() *City {
	return &City{Base: newBase()}
}

func (*City) Class() string { return ClassCity }

func (c *City) ToDict() Dict {
	d := c.dict(c.Class())
	d["state_id"] = c.StateId
	d["name"] = c.Name
	return d
}

func (c *City) Validate() error {
	cs := &constraints{class: c.Class()}
	return cs.
		required("name", c.Name).maxLength("name", c.Name, 128).
		required("state_id", c.StateId).maxLength("state_id", c.StateId, 60).
		err()
}

func (c *City) load(d Dict) error {
	return errors.Join(
		pick(d, "state_id", &c.StateId, asString),
		pick(d, "name", &c.Name, asString),
	)
}

func (c *City) String() string { return Describe(c) }
