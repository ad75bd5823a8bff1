package models_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/opst/hbnb/pkg/cmp"
	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/utils/try"
)

func TestNew(t *testing.T) {
	for _, class := range models.Classes() {
		t.Run(class, func(t *testing.T) {
			a := try.To(models.New(class)).OrFatal(t)
			b := try.To(models.New(class)).OrFatal(t)

			if a.Class() != class {
				t.Errorf("Class: got %s, want %s", a.Class(), class)
			}
			if a.Meta().Id == "" || a.Meta().Id == b.Meta().Id {
				t.Errorf("ids are not unique: %s, %s", a.Meta().Id, b.Meta().Id)
			}
			if !a.Meta().CreatedAt.Equal(a.Meta().UpdatedAt) {
				t.Errorf(
					"timestamps differ at construction: %s, %s",
					a.Meta().CreatedAt, a.Meta().UpdatedAt,
				)
			}
			if b.Meta().CreatedAt.Before(a.Meta().CreatedAt) {
				t.Errorf("later model is created earlier")
			}
		})
	}

	t.Run("unknown class", func(t *testing.T) {
		if _, err := models.New("Castle"); !errors.Is(err, models.ErrUnknownClass) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestToDict(t *testing.T) {
	t.Run("BaseModel with given id and timestamps", func(t *testing.T) {
		m := try.To(models.Restore(models.Dict{
			"__class__":  "BaseModel",
			"id":         "7q795",
			"created_at": "2023-12-07T09:49:07.936066",
			"updated_at": "2023-12-07T09:49:07.936176",
		})).OrFatal(t)

		expected := models.Dict{
			"__class__":  "BaseModel",
			"id":         "7q795",
			"created_at": "2023-12-07T09:49:07.936066",
			"updated_at": "2023-12-07T09:49:07.936176",
		}
		if got := m.ToDict(); !cmp.MapEqWith(got, expected, func(a, b any) bool { return a == b }) {
			t.Errorf("ToDict:\n===actual===\n%v\n===expected===\n%v", got, expected)
		}
	})

	t.Run("undeclared attributes are kept", func(t *testing.T) {
		m := try.To(models.Restore(models.Dict{
			"__class__": "BaseModel", "name": "object name",
		})).OrFatal(t)
		if got := m.ToDict()["name"]; got != "object name" {
			t.Errorf("name: got %v", got)
		}
		if v, ok := m.Meta().Get("name"); !ok || v != "object name" {
			t.Errorf("Get: got %v, %v", v, ok)
		}
	})

	t.Run("timestamps are formatted with microseconds", func(t *testing.T) {
		s := models.NewState()
		s.CreatedAt = time.Date(2023, 12, 7, 16, 16, 21, 0, time.UTC)
		if got := s.ToDict()["created_at"]; got != "2023-12-07T16:16:21.000000" {
			t.Errorf("created_at: got %v", got)
		}
	})
}

func TestRestore(t *testing.T) {
	state := models.NewState()
	state.Name = "California"

	city := models.NewCity()
	city.Name = "San Francisco"
	city.StateId = state.Id

	user := models.NewUser()
	user.Email = "betty@example.com"
	user.Password = "pwd"
	user.FirstName = "Betty"
	user.LastName = "Holberton"

	amenity := models.NewAmenity()
	amenity.Name = "Wifi"

	place := models.NewPlace()
	place.CityId = city.Id
	place.UserId = user.Id
	place.Name = "Lovely place"
	place.Description = "near the sea"
	place.NumberRooms = 3
	place.NumberBathrooms = 1
	place.MaxGuest = 6
	place.PriceByNight = 120
	place.Latitude = 37.77
	place.Longitude = -122.41
	place.LinkAmenity(amenity)

	review := models.NewReview()
	review.PlaceId = place.Id
	review.UserId = user.Id
	review.Text = "great stay"

	for _, m := range []models.Model{models.NewBaseModel(), state, city, user, amenity, place, review} {
		t.Run(m.Class(), func(t *testing.T) {
			m.Meta().Touch()
			restored := try.To(models.Restore(m.ToDict())).OrFatal(t)

			if restored.Class() != m.Class() {
				t.Fatalf("class: got %s, want %s", restored.Class(), m.Class())
			}
			if !restored.Meta().CreatedAt.Equal(m.Meta().CreatedAt) {
				t.Errorf("created_at: got %s, want %s", restored.Meta().CreatedAt, m.Meta().CreatedAt)
			}
			if !restored.Meta().UpdatedAt.Equal(m.Meta().UpdatedAt) {
				t.Errorf("updated_at: got %s, want %s", restored.Meta().UpdatedAt, m.Meta().UpdatedAt)
			}
			if got, want := fmt.Sprint(restored), fmt.Sprint(m); got != want {
				t.Errorf("restored model differs:\n===actual===\n%s\n===expected===\n%s", got, want)
			}
		})
	}

	t.Run("Place restored from JSON-decoded numbers", func(t *testing.T) {
		restored := try.To(models.Restore(models.Dict{
			"__class__":      "Place",
			"number_rooms":   float64(4),
			"latitude":       float64(1.5),
			"price_by_night": "100",
			"amenity_ids":    []any{"a-1", "a-2"},
		})).OrFatal(t)
		p := restored.(*models.Place)
		if p.NumberRooms != 4 || p.Latitude != 1.5 || p.PriceByNight != 100 {
			t.Errorf("unexpected place: %+v", p)
		}
		if !cmp.SliceEq(p.AmenityIds, []string{"a-1", "a-2"}) {
			t.Errorf("amenity_ids: got %v", p.AmenityIds)
		}
	})

	t.Run("id is generated when missing", func(t *testing.T) {
		restored := try.To(models.Restore(models.Dict{"__class__": "State", "name": "Nevada"})).OrFatal(t)
		if restored.Meta().Id == "" {
			t.Error("id is empty")
		}
	})

	t.Run("broken attributes are rejected", func(t *testing.T) {
		for name, d := range map[string]models.Dict{
			"fractional int": {"__class__": "Place", "number_rooms": 1.5},
			"bad timestamp":  {"__class__": "State", "created_at": "yesterday"},
			"non-string":     {"__class__": "State", "name": 12},
		} {
			t.Run(name, func(t *testing.T) {
				if _, err := models.Restore(d); err == nil {
					t.Errorf("no error for %v", d)
				}
			})
		}
	})

	t.Run("missing or unknown class", func(t *testing.T) {
		for _, d := range []models.Dict{{"name": "x"}, {"__class__": "Castle"}} {
			if _, err := models.Restore(d); !errors.Is(err, models.ErrUnknownClass) {
				t.Errorf("Restore(%v): unexpected error %v", d, err)
			}
		}
	})
}

func TestTouch(t *testing.T) {
	m := models.NewBaseModel()
	before := m.UpdatedAt
	for range 3 {
		m.Touch()
		if !m.UpdatedAt.After(before) {
			t.Fatalf("updated_at does not increase: %s -> %s", before, m.UpdatedAt)
		}
		before = m.UpdatedAt
	}
	if !m.CreatedAt.Before(m.UpdatedAt) {
		t.Errorf("created_at is not before updated_at")
	}
}

func TestDescribe(t *testing.T) {
	s := models.NewState()
	s.Name = "Texas"
	want := fmt.Sprintf(
		"[State] (%s) map[created_at:%s id:%s name:Texas updated_at:%s]",
		s.Id, s.CreatedAt.Format(models.TimeFormat), s.Id, s.UpdatedAt.Format(models.TimeFormat),
	)
	if got := s.String(); got != want {
		t.Errorf("String:\n got: %s\nwant: %s", got, want)
	}
}

func TestUpdate(t *testing.T) {
	p := models.NewPlace()
	id := p.Id
	if err := models.Update(p, models.Dict{
		"id": "overwritten", "name": "Cabin", "max_guest": 4, "color": "blue",
	}); err != nil {
		t.Fatal(err)
	}
	if p.Id != id {
		t.Errorf("id is updated: %s", p.Id)
	}
	if p.Name != "Cabin" || p.MaxGuest != 4 {
		t.Errorf("declared attributes not updated: %+v", p)
	}
	if v, _ := p.Get("color"); v != "blue" {
		t.Errorf("undeclared attribute: got %v", v)
	}

	if err := models.Update(p, models.Dict{"max_guest": "many"}); !errors.Is(err, models.ErrInvalid) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	type then struct {
		invalidAttrs []string
	}
	long := string(make([]rune, 129))

	for name, testcase := range map[string]struct {
		when models.Model
		then
	}{
		"empty State": {
			when: models.NewState(),
			then: then{invalidAttrs: []string{"name"}},
		},
		"too long State name": {
			when: &models.State{Name: long},
			then: then{invalidAttrs: []string{"name"}},
		},
		"empty City": {
			when: models.NewCity(),
			then: then{invalidAttrs: []string{"name", "state_id"}},
		},
		"empty User": {
			when: models.NewUser(),
			then: then{invalidAttrs: []string{"email", "password"}},
		},
		"User without names is fine": {
			when: &models.User{Email: "a@example.com", Password: "pwd"},
			then: then{},
		},
		"empty Place": {
			when: models.NewPlace(),
			then: then{invalidAttrs: []string{"city_id", "user_id", "name"}},
		},
		"Place with negative price": {
			when: &models.Place{CityId: "c", UserId: "u", Name: "n", PriceByNight: -1},
			then: then{invalidAttrs: []string{"price_by_night"}},
		},
		"empty Review": {
			when: models.NewReview(),
			then: then{invalidAttrs: []string{"place_id", "user_id", "text"}},
		},
		"empty Amenity": {
			when: models.NewAmenity(),
			then: then{invalidAttrs: []string{"name"}},
		},
		"BaseModel": {
			when: models.NewBaseModel(),
			then: then{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := testcase.when.Validate()
			if len(testcase.then.invalidAttrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, models.ErrInvalid) {
				t.Fatalf("not ErrInvalid: %v", err)
			}

			joined, ok := err.(interface{ Unwrap() []error })
			if !ok {
				t.Fatalf("not joined: %#v", err)
			}
			attrs := []string{}
			for _, e := range joined.Unwrap() {
				attrs = append(attrs, e.(models.InvalidAttribute).Attr)
			}
			if !cmp.SliceContentEq(attrs, testcase.then.invalidAttrs) {
				t.Errorf("invalid attrs: got %v, want %v", attrs, testcase.then.invalidAttrs)
			}
		})
	}
}

func TestLinkAmenity(t *testing.T) {
	p := models.NewPlace()
	a := models.NewAmenity()
	p.LinkAmenity(a)
	p.LinkAmenity(a)
	p.LinkAmenity(nil)
	if !cmp.SliceEq(p.AmenityIds, []string{a.Id}) {
		t.Errorf("amenity_ids: got %v", p.AmenityIds)
	}
}
