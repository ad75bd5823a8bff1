package handlers

import (
	"cmp"
	"context"
	"slices"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
)

type cityView struct {
	Id   string
	Name string
}

type stateView struct {
	Id     string
	Name   string
	Cities []cityView
}

type amenityView struct {
	Id   string
	Name string
}

type placeView struct {
	Id              string
	Name            string
	Description     string
	Owner           string
	PriceByNight    int
	MaxGuest        int
	NumberRooms     int
	NumberBathrooms int
}

func byName[T any](name func(T) string, id func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Or(cmp.Compare(name(a), name(b)), cmp.Compare(id(a), id(b)))
	}
}

func citiesView(cities []*models.City) []cityView {
	slices.SortFunc(cities, byName(
		func(c *models.City) string { return c.Name },
		func(c *models.City) string { return c.Id },
	))
	ret := make([]cityView, 0, len(cities))
	for _, c := range cities {
		ret = append(ret, cityView{Id: c.Id, Name: c.Name})
	}
	return ret
}

// statesView returns states sorted by name.
//
// When withCities is true, cities of each state are there, sorted by name.
func statesView(ctx context.Context, st storage.Storage, withCities bool) ([]stateView, error) {
	states, err := storage.AllOf[*models.State](ctx, st, models.ClassState)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(states, byName(
		func(s *models.State) string { return s.Name },
		func(s *models.State) string { return s.Id },
	))

	citiesOfState := map[string][]*models.City{}
	if withCities {
		cities, err := storage.AllOf[*models.City](ctx, st, models.ClassCity)
		if err != nil {
			return nil, err
		}
		for _, c := range cities {
			citiesOfState[c.StateId] = append(citiesOfState[c.StateId], c)
		}
	}

	ret := make([]stateView, 0, len(states))
	for _, s := range states {
		v := stateView{Id: s.Id, Name: s.Name}
		if withCities {
			v.Cities = citiesView(citiesOfState[s.Id])
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func amenitiesView(ctx context.Context, st storage.Storage) ([]amenityView, error) {
	amenities, err := storage.AllOf[*models.Amenity](ctx, st, models.ClassAmenity)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(amenities, byName(
		func(a *models.Amenity) string { return a.Name },
		func(a *models.Amenity) string { return a.Id },
	))
	ret := make([]amenityView, 0, len(amenities))
	for _, a := range amenities {
		ret = append(ret, amenityView{Id: a.Id, Name: a.Name})
	}
	return ret, nil
}

func placesView(ctx context.Context, st storage.Storage) ([]placeView, error) {
	places, err := storage.AllOf[*models.Place](ctx, st, models.ClassPlace)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(places, byName(
		func(p *models.Place) string { return p.Name },
		func(p *models.Place) string { return p.Id },
	))

	users, err := st.All(ctx, models.ClassUser)
	if err != nil {
		return nil, err
	}

	ret := make([]placeView, 0, len(places))
	for _, p := range places {
		owner := ""
		if u, ok := users[models.ClassUser+"."+p.UserId].(*models.User); ok {
			owner = u.FullName()
		}
		ret = append(ret, placeView{
			Id:              p.Id,
			Name:            p.Name,
			Description:     p.Description,
			Owner:           owner,
			PriceByNight:    p.PriceByNight,
			MaxGuest:        p.MaxGuest,
			NumberRooms:     p.NumberRooms,
			NumberBathrooms: p.NumberBathrooms,
		})
	}
	return ret, nil
}
