package models

type Amenity struct {
	Base
	Name string
}

func NewAmenity() *Amenity {
	return &Amenity{Base: newBase()}
}

func (*Amenity) Class() string { return ClassAmenity }

func (a *Amenity) ToDict() Dict {
	d := a.dict(a.Class())
	d["name"] = a.Name
	return d
}

func (a *Amenity) Validate() error {
	c := &constraints{class: a.Class()}
	return c.required("name", a.Name).maxLength("name", a.Name, 128).err()
}

func (a *Amenity) load(d Dict) error {
	return pick(d, "name", &a.Name, asString)
}

func (a *Amenity) String() string { return Describe(a) }
