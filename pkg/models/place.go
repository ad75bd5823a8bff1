package models

import (
	"errors"
	"slices"
)

type Place struct {
	Base
	CityId          string
	UserId          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64

	// ids of Amenities linked to this Place.
	AmenityIds []string
}

func NewPlace() *Place {
	return &Place{Base: newBase(), AmenityIds: []string{}}
}

func (*Place) Class() string { return ClassPlace }

func (p *Place) ToDict() Dict {
	d := p.dict(p.Class())
	d["city_id"] = p.CityId
	d["user_id"] = p.UserId
	d["name"] = p.Name
	d["description"] = p.Description
	d["number_rooms"] = p.NumberRooms
	d["number_bathrooms"] = p.NumberBathrooms
	d["max_guest"] = p.MaxGuest
	d["price_by_night"] = p.PriceByNight
	d["latitude"] = p.Latitude
	d["longitude"] = p.Longitude
	d["amenity_ids"] = slices.Clone(p.AmenityIds)
	return d
}

func (p *Place) Validate() error {
	c := &constraints{class: p.Class()}
	return c.
		required("city_id", p.CityId).
		required("user_id", p.UserId).
		required("name", p.Name).maxLength("name", p.Name, 128).
		maxLength("description", p.Description, 1024).
		nonNegative("number_rooms", p.NumberRooms).
		nonNegative("number_bathrooms", p.NumberBathrooms).
		nonNegative("max_guest", p.MaxGuest).
		nonNegative("price_by_night", p.PriceByNight).
		err()
}

func (p *Place) load(d Dict) error {
	return errors.Join(
		pick(d, "city_id", &p.CityId, asString),
		pick(d, "user_id", &p.UserId, asString),
		pick(d, "name", &p.Name, asString),
		pick(d, "description", &p.Description, asString),
		pick(d, "number_rooms", &p.NumberRooms, asInt),
		pick(d, "number_bathrooms", &p.NumberBathrooms, asInt),
		pick(d, "max_guest", &p.MaxGuest, asInt),
		pick(d, "price_by_night", &p.PriceByNight, asInt),
		pick(d, "latitude", &p.Latitude, asFloat),
		pick(d, "longitude", &p.Longitude, asFloat),
		pick(d, "amenity_ids", &p.AmenityIds, asStrings),
	)
}

// LinkAmenity adds the amenity to the place. Linking twice is a no-op.
func (p *Place) LinkAmenity(a *Amenity) {
	if a == nil || slices.Contains(p.AmenityIds, a.Id) {
		return
	}
	p.AmenityIds = append(p.AmenityIds, a.Id)
}

func (p *Place) String() string { return Describe(p) }
