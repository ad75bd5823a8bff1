package storage

import (
	"context"
	"slices"

	"github.com/opst/hbnb/pkg/models"
)

// CitiesOf returns cities in the state.
func CitiesOf(ctx context.Context, st Storage, state *models.State) ([]*models.City, error) {
	return filtered(ctx, st, models.ClassCity, func(c *models.City) bool {
		return c.StateId == state.Id
	})
}

// PlacesOf returns places in the city.
func PlacesOf(ctx context.Context, st Storage, city *models.City) ([]*models.Place, error) {
	return filtered(ctx, st, models.ClassPlace, func(p *models.Place) bool {
		return p.CityId == city.Id
	})
}

// PlacesOwnedBy returns places which the user owns.
func PlacesOwnedBy(ctx context.Context, st Storage, user *models.User) ([]*models.Place, error) {
	return filtered(ctx, st, models.ClassPlace, func(p *models.Place) bool {
		return p.UserId == user.Id
	})
}

// ReviewsOf returns reviews on the place.
func ReviewsOf(ctx context.Context, st Storage, place *models.Place) ([]*models.Review, error) {
	return filtered(ctx, st, models.ClassReview, func(r *models.Review) bool {
		return r.PlaceId == place.Id
	})
}

// AmenitiesOf returns amenities linked to the place.
//
// Links to amenities which are not in st are ignored.
func AmenitiesOf(ctx context.Context, st Storage, place *models.Place) ([]*models.Amenity, error) {
	return filtered(ctx, st, models.ClassAmenity, func(a *models.Amenity) bool {
		return slices.Contains(place.AmenityIds, a.Id)
	})
}

func filtered[T models.Model](ctx context.Context, st Storage, class string, pred func(T) bool) ([]T, error) {
	all, err := AllOf[T](ctx, st, class)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(t T) bool { return !pred(t) }), nil
}
