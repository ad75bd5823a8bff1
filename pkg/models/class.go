package models

import (
	"fmt"
	"slices"
)

const (
	ClassBaseModel = "BaseModel"
	ClassUser      = "User"
	ClassState     = "State"
	ClassAmenity   = "Amenity"
	ClassCity      = "City"
	ClassPlace     = "Place"
	ClassReview    = "Review"
)

var constructors = map[string]func() Model{
	ClassBaseModel: func() Model { return NewBaseModel() },
	ClassUser:      func() Model { return NewUser() },
	ClassState:     func() Model { return NewState() },
	ClassAmenity:   func() Model { return NewAmenity() },
	ClassCity:      func() Model { return NewCity() },
	ClassPlace:     func() Model { return NewPlace() },
	ClassReview:    func() Model { return NewReview() },
}

// Classes returns all class names.
//
// A class comes after the classes it refers to.
func Classes() []string {
	return []string{
		ClassBaseModel, ClassUser, ClassState, ClassAmenity,
		ClassCity, ClassPlace, ClassReview,
	}
}

// IsClass tells whether class is a known class name.
func IsClass(class string) bool {
	return slices.Contains(Classes(), class)
}

// New creates a fresh model of the class, with a new id and timestamps.
func New(class string) (Model, error) {
	ctor, ok := constructors[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	return ctor(), nil
}
