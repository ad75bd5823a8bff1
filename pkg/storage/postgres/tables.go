package postgres

import (
	"context"
	"time"

	"github.com/opst/hbnb/pkg/conn/db/postgres/pool"
	"github.com/opst/hbnb/pkg/conn/db/postgres/scanner"
	"github.com/opst/hbnb/pkg/models"
)

// table maps a class onto a table.
type table struct {
	Name string

	// Select queries all rows of the table as models.
	Select func(context.Context, pool.Queryer) ([]models.Model, error)

	// Upsert inserts or updates a row for the model.
	Upsert func(context.Context, pool.Queryer, models.Model) error
}

func selectAs[R any](query string, toModel func(R) models.Model) func(context.Context, pool.Queryer) ([]models.Model, error) {
	return func(ctx context.Context, q pool.Queryer) ([]models.Model, error) {
		records, err := scanner.New[R]().QueryAll(ctx, q, query)
		if err != nil {
			return nil, err
		}
		ret := make([]models.Model, 0, len(records))
		for _, r := range records {
			ret = append(ret, toModel(r))
		}
		return ret, nil
	}
}

func base(id string, createdAt, updatedAt time.Time) models.Base {
	return models.Base{Id: id, CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()}
}

type stateRecord struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}

type cityRecord struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	StateId   string
	Name      string
}

type userRecord struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type placeRecord struct {
	Id              string
	CreatedAt       time.Time
	UpdatedAt       time.Time
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
	AmenityIds      []string
}

type reviewRecord struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	PlaceId   string
	UserId    string
	Text      string
}

type amenityRecord struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}

// tables of classes, in the order of foreign keys: referred tables go first.
var tables = []struct {
	Class string
	table
}{
	{
		Class: models.ClassUser,
		table: table{
			Name: "users",
			Select: selectAs(
				`SELECT "id", "created_at", "updated_at", "email", "password",
					coalesce("first_name", '') AS "first_name",
					coalesce("last_name", '') AS "last_name"
				FROM "users"`,
				func(r userRecord) models.Model {
					return &models.User{
						Base:      base(r.Id, r.CreatedAt, r.UpdatedAt),
						Email:     r.Email,
						Password:  r.Password,
						FirstName: r.FirstName,
						LastName:  r.LastName,
					}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				u := m.(*models.User)
				_, err := q.Exec(
					ctx,
					`INSERT INTO "users"
						("id", "created_at", "updated_at", "email", "password", "first_name", "last_name")
					VALUES ($1, $2, $3, $4, $5, $6, $7)
					ON CONFLICT ("id") DO UPDATE SET
						"updated_at" = $3, "email" = $4, "password" = $5,
						"first_name" = $6, "last_name" = $7`,
					u.Id, u.CreatedAt, u.UpdatedAt, u.Email, u.Password, u.FirstName, u.LastName,
				)
				return err
			},
		},
	},
	{
		Class: models.ClassState,
		table: table{
			Name: "states",
			Select: selectAs(
				`SELECT "id", "created_at", "updated_at", "name" FROM "states"`,
				func(r stateRecord) models.Model {
					return &models.State{Base: base(r.Id, r.CreatedAt, r.UpdatedAt), Name: r.Name}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				s := m.(*models.State)
				_, err := q.Exec(
					ctx,
					`INSERT INTO "states" ("id", "created_at", "updated_at", "name")
					VALUES ($1, $2, $3, $4)
					ON CONFLICT ("id") DO UPDATE SET "updated_at" = $3, "name" = $4`,
					s.Id, s.CreatedAt, s.UpdatedAt, s.Name,
				)
				return err
			},
		},
	},
	{
		Class: models.ClassAmenity,
		table: table{
			Name: "amenities",
			Select: selectAs(
				`SELECT "id", "created_at", "updated_at", "name" FROM "amenities"`,
				func(r amenityRecord) models.Model {
					return &models.Amenity{Base: base(r.Id, r.CreatedAt, r.UpdatedAt), Name: r.Name}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				a := m.(*models.Amenity)
				_, err := q.Exec(
					ctx,
					`INSERT INTO "amenities" ("id", "created_at", "updated_at", "name")
					VALUES ($1, $2, $3, $4)
					ON CONFLICT ("id") DO UPDATE SET "updated_at" = $3, "name" = $4`,
					a.Id, a.CreatedAt, a.UpdatedAt, a.Name,
				)
				return err
			},
		},
	},
	{
		Class: models.ClassCity,
		table: table{
			Name: "cities",
			Select: selectAs(
				`SELECT "id", "created_at", "updated_at", "state_id", "name" FROM "cities"`,
				func(r cityRecord) models.Model {
					return &models.City{
						Base:    base(r.Id, r.CreatedAt, r.UpdatedAt),
						StateId: r.StateId,
						Name:    r.Name,
					}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				c := m.(*models.City)
				_, err := q.Exec(
					ctx,
					`INSERT INTO "cities" ("id", "created_at", "updated_at", "state_id", "name")
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT ("id") DO UPDATE SET
						"updated_at" = $3, "state_id" = $4, "name" = $5`,
					c.Id, c.CreatedAt, c.UpdatedAt, c.StateId, c.Name,
				)
				return err
			},
		},
	},
	{
		Class: models.ClassPlace,
		table: table{
			Name: "places",
			Select: selectAs(
				`SELECT
					"id", "created_at", "updated_at", "city_id", "user_id", "name",
					coalesce("description", '') AS "description",
					"number_rooms", "number_bathrooms", "max_guest", "price_by_night",
					coalesce("latitude", 0) AS "latitude",
					coalesce("longitude", 0) AS "longitude",
					array(
						SELECT "amenity_id" FROM "place_amenity"
						WHERE "place_amenity"."place_id" = "places"."id"
						ORDER BY "amenity_id"
					)::text[] AS "amenity_ids"
				FROM "places"`,
				func(r placeRecord) models.Model {
					return &models.Place{
						Base:            base(r.Id, r.CreatedAt, r.UpdatedAt),
						CityId:          r.CityId,
						UserId:          r.UserId,
						Name:            r.Name,
						Description:     r.Description,
						NumberRooms:     r.NumberRooms,
						NumberBathrooms: r.NumberBathrooms,
						MaxGuest:        r.MaxGuest,
						PriceByNight:    r.PriceByNight,
						Latitude:        r.Latitude,
						Longitude:       r.Longitude,
						AmenityIds:      r.AmenityIds,
					}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				p := m.(*models.Place)
				if _, err := q.Exec(
					ctx,
					`INSERT INTO "places" (
						"id", "created_at", "updated_at", "city_id", "user_id", "name", "description",
						"number_rooms", "number_bathrooms", "max_guest", "price_by_night",
						"latitude", "longitude"
					)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
					ON CONFLICT ("id") DO UPDATE SET
						"updated_at" = $3, "city_id" = $4, "user_id" = $5,
						"name" = $6, "description" = $7,
						"number_rooms" = $8, "number_bathrooms" = $9,
						"max_guest" = $10, "price_by_night" = $11,
						"latitude" = $12, "longitude" = $13`,
					p.Id, p.CreatedAt, p.UpdatedAt, p.CityId, p.UserId, p.Name, p.Description,
					p.NumberRooms, p.NumberBathrooms, p.MaxGuest, p.PriceByNight,
					p.Latitude, p.Longitude,
				); err != nil {
					return err
				}

				if _, err := q.Exec(
					ctx, `DELETE FROM "place_amenity" WHERE "place_id" = $1`, p.Id,
				); err != nil {
					return err
				}
				for _, amenityId := range p.AmenityIds {
					if _, err := q.Exec(
						ctx,
						`INSERT INTO "place_amenity" ("place_id", "amenity_id") VALUES ($1, $2)
						ON CONFLICT DO NOTHING`,
						p.Id, amenityId,
					); err != nil {
						return err
					}
				}
				return nil
			},
		},
	},
	{
		Class: models.ClassReview,
		table: table{
			Name: "reviews",
			Select: selectAs(
				`SELECT "id", "created_at", "updated_at", "place_id", "user_id", "text" FROM "reviews"`,
				func(r reviewRecord) models.Model {
					return &models.Review{
						Base:    base(r.Id, r.CreatedAt, r.UpdatedAt),
						PlaceId: r.PlaceId,
						UserId:  r.UserId,
						Text:    r.Text,
					}
				},
			),
			Upsert: func(ctx context.Context, q pool.Queryer, m models.Model) error {
				r := m.(*models.Review)
				_, err := q.Exec(
					ctx,
					`INSERT INTO "reviews" ("id", "created_at", "updated_at", "place_id", "user_id", "text")
					VALUES ($1, $2, $3, $4, $5, $6)
					ON CONFLICT ("id") DO UPDATE SET
						"updated_at" = $3, "place_id" = $4, "user_id" = $5, "text" = $6`,
					r.Id, r.CreatedAt, r.UpdatedAt, r.PlaceId, r.UserId, r.Text,
				)
				return err
			},
		},
	},
}

func tableOf(class string) (table, bool) {
	for _, t := range tables {
		if t.Class == class {
			return t.table, true
		}
	}
	return table{}, false
}
