package models

import "errors"

type Review struct {
	Base
	PlaceId string
	UserId  string
	Text    string
}

func NewReview() *Review {
	return &Review{Base: newBase()}
}

func (*Review) Class() string { return ClassReview }

func (r *Review) ToDict() Dict {
	d := r.dict(r.Class())
	d["place_id"] = r.PlaceId
	d["user_id"] = r.UserId
	d["text"] = r.Text
	return d
}

func (r *Review) Validate() error {
	c := &constraints{class: r.Class()}
	return c.
		required("place_id", r.PlaceId).
		required("user_id", r.UserId).
		required("text", r.Text).maxLength("text", r.Text, 1024).
		err()
}

func (r *Review) load(d Dict) error {
	return errors.Join(
		pick(d, "place_id", &r.PlaceId, asString),
		pick(d, "user_id", &r.UserId, asString),
		pick(d, "text", &r.Text, asString),
	)
}

func (r *Review) String() string { return Describe(r) }
