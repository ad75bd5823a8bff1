package models

type State struct {
	Base
	Name string
}

func NewState() *State {
	return &State{Base: newBase()}
}

func (*State) Class() string { return ClassState }

func (s *State) ToDict() Dict {
	d := s.dict(s.Class())
	d["name"] = s.Name
	return d
}

func (s *State) Validate() error {
	c := &constraints{class: s.Class()}
	return c.required("name", s.Name).maxLength("name", s.Name, 128).err()
}

func (s *State) load(d Dict) error {
	return pick(d, "name", &s.Name, asString)
}

func (s *State) String() string { return Describe(s) }
