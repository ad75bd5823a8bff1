package postgres_test

import (
	"context"
	"errors"
	"testing"

	ctxutil "github.com/opst/hbnb/internal/testutils/context"
	"github.com/opst/hbnb/pkg/cmp"
	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/postgres"
	"github.com/opst/hbnb/pkg/storage/postgres/schema"
	"github.com/opst/hbnb/pkg/storage/postgres/testenv"
	"github.com/opst/hbnb/pkg/utils/try"
)

type fixture struct {
	User    *models.User
	State   *models.State
	City    *models.City
	Amenity *models.Amenity
	Place   *models.Place
	Review  *models.Review
}

func newFixture() fixture {
	user := models.NewUser()
	user.Email = "betty@example.com"
	user.Password = "pwd"
	user.FirstName = "Betty"

	state := models.NewState()
	state.Name = "California"

	city := models.NewCity()
	city.StateId = state.Id
	city.Name = "San Francisco"

	amenity := models.NewAmenity()
	amenity.Name = "Wifi"

	place := models.NewPlace()
	place.CityId = city.Id
	place.UserId = user.Id
	place.Name = "Lovely place"
	place.NumberRooms = 3
	place.PriceByNight = 120
	place.Latitude = 37.77
	place.LinkAmenity(amenity)

	review := models.NewReview()
	review.PlaceId = place.Id
	review.UserId = user.Id
	review.Text = "Great!"

	return fixture{
		User: user, State: state, City: city,
		Amenity: amenity, Place: place, Review: review,
	}
}

func (f fixture) Models() []models.Model {
	// not in the order of foreign keys, to see Save sorts them.
	return []models.Model{f.Review, f.Place, f.City, f.Amenity, f.State, f.User}
}

func sameModel(a, b models.Model) bool {
	return models.Describe(a) == models.Describe(b)
}

func open(ctx context.Context, t *testing.T) storage.Storage {
	t.Helper()
	st := try.To(postgres.New(ctx, testenv.GetPool(ctx, t))).OrFatal(t)
	if err := st.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestPgStorage(t *testing.T) {
	ctx, cancel := ctxutil.WithTest(context.Background(), t)
	defer cancel()

	t.Run("saved models are found in All", func(t *testing.T) {
		st := open(ctx, t)
		f := newFixture()
		for _, m := range f.Models() {
			try.To(0, st.New(ctx, m)).OrFatal(t)
		}
		if err := st.Save(ctx); err != nil {
			t.Fatal(err)
		}

		all := try.To(st.All(ctx, "")).OrFatal(t)
		expected := map[string]models.Model{}
		for _, m := range f.Models() {
			expected[models.Key(m)] = m
		}
		if !cmp.MapEqWith(all, expected, sameModel) {
			t.Errorf("unexpected models:\n===actual===\n%v\n===expected===\n%v", all, expected)
		}

		places := try.To(st.All(ctx, models.ClassPlace)).OrFatal(t)
		got, ok := places[models.Key(f.Place)].(*models.Place)
		if !ok || len(places) != 1 {
			t.Fatalf("unexpected places: %v", places)
		}
		if !cmp.SliceEq(got.AmenityIds, []string{f.Amenity.Id}) {
			t.Errorf("amenities are not linked: %v", got.AmenityIds)
		}
		if !got.UpdatedAt.Equal(f.Place.UpdatedAt) {
			t.Errorf("updated_at: %s != %s", got.UpdatedAt, f.Place.UpdatedAt)
		}
	})

	t.Run("saving again updates rows", func(t *testing.T) {
		st := open(ctx, t)
		f := newFixture()
		for _, m := range f.Models() {
			try.To(0, st.New(ctx, m)).OrFatal(t)
		}
		try.To(0, st.Save(ctx)).OrFatal(t)

		f.State.Name = "Nevada"
		if err := storage.Save(ctx, st, f.State); err != nil {
			t.Fatal(err)
		}

		got := try.To(storage.Get(ctx, st, models.ClassState, f.State.Id)).OrFatal(t)
		if s := got.(*models.State); s.Name != "Nevada" || !s.UpdatedAt.Equal(f.State.UpdatedAt) {
			t.Errorf("state is not updated: %v", s)
		}
	})

	t.Run("staged models are visible before Save", func(t *testing.T) {
		st := open(ctx, t)
		s := models.NewState()
		s.Name = "Texas"
		try.To(0, st.New(ctx, s)).OrFatal(t)

		states := try.To(st.All(ctx, models.ClassState)).OrFatal(t)
		if _, ok := states[models.Key(s)]; !ok {
			t.Errorf("staged state is not found: %v", states)
		}
		users := try.To(st.All(ctx, models.ClassUser)).OrFatal(t)
		if len(users) != 0 {
			t.Errorf("unexpected users: %v", users)
		}
	})

	t.Run("deleting a state deletes its cities", func(t *testing.T) {
		st := open(ctx, t)
		f := newFixture()
		for _, m := range f.Models() {
			try.To(0, st.New(ctx, m)).OrFatal(t)
		}
		try.To(0, st.Save(ctx)).OrFatal(t)

		if err := storage.Delete(ctx, st, f.State); err != nil {
			t.Fatal(err)
		}

		for _, class := range []string{models.ClassState, models.ClassCity, models.ClassPlace, models.ClassReview} {
			if found := try.To(st.All(ctx, class)).OrFatal(t); len(found) != 0 {
				t.Errorf("%s remains: %v", class, found)
			}
		}
		if found := try.To(st.All(ctx, models.ClassUser)).OrFatal(t); len(found) != 1 {
			t.Errorf("user should remain: %v", found)
		}
	})

	t.Run("a city without its state is a constraint violation", func(t *testing.T) {
		st := open(ctx, t)
		c := models.NewCity()
		c.Name = "Nowhere"
		c.StateId = "no-such-state"

		err := storage.Save(ctx, st, c)
		if !errors.Is(err, storage.ErrConstraint) {
			t.Errorf("unexpected error: %v", err)
		}
		if found := try.To(st.All(ctx, models.ClassCity)).OrFatal(t); len(found) != 0 {
			t.Errorf("city should not be saved: %v", found)
		}
	})

	t.Run("BaseModel is not supported", func(t *testing.T) {
		st := open(ctx, t)
		if _, err := st.All(ctx, models.ClassBaseModel); !errors.Is(err, storage.ErrUnsupportedClass) {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := st.All(ctx, "Nothing"); !errors.Is(err, models.ErrUnknownClass) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("WithDropTables drops tables", func(t *testing.T) {
		p := testenv.GetPool(ctx, t)
		st := try.To(postgres.New(ctx, p)).OrFatal(t)
		try.To(0, st.Reload(ctx)).OrFatal(t)

		sch := schema.New(p, schema.Embedded())
		if v := try.To(sch.Version(ctx)).OrFatal(t); v != 1 {
			t.Fatalf("schema version: %d", v)
		}

		try.To(postgres.New(ctx, p, postgres.WithDropTables())).OrFatal(t)
		if v := try.To(sch.Version(ctx)).OrFatal(t); v != 0 {
			t.Errorf("schema version after drop: %d", v)
		}
	})
}
