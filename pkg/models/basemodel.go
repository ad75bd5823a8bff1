package models

// BaseModel is a model without declared attributes.
//
// Only the file store persists it.
type BaseModel struct {
	Base
}

func NewBaseModel() *BaseModel {
	return &BaseModel{Base: newBase()}
}

func (*BaseModel) Class() string { return ClassBaseModel }

func (m *BaseModel) ToDict() Dict { return m.dict(m.Class()) }

func (*BaseModel) Validate() error { return nil }

func (*BaseModel) load(Dict) error { return nil }

func (m *BaseModel) String() string { return Describe(m) }
