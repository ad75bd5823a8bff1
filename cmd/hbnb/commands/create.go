package commands

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/youta-t/flarc"
)

const ARG_PARAMS = "PARAMS"

func NewCreate(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Create an instance and print its id.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_CLASS, Required: true,
				Help: "Class name. State, City, User, Place, Review, Amenity or BaseModel.",
			},
			{
				Name: ARG_PARAMS, Required: false, Repeatable: true,
				Help: "Attributes in the form key=value.",
			},
		},
		NewTask[struct{}](open, CreateTask),
		flarc.WithDescription(`
Values of PARAMS are:

- "double quoted": a string. "_" is replaced with a space, and \" is a double quote.
- with ".": a float.
- others: an integer.

Parameters which can not be read are skipped.

Example:
	{{ .Command }} State name="California"
	{{ .Command }} Place city_id="0001" user_id="0001" name="My_little_house" number_rooms=4 latitude=37.773972
`),
	)
}

func CreateTask(
	ctx context.Context,
	logger *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	m, err := models.New(cl.Args()[ARG_CLASS][0])
	if err != nil {
		return err
	}

	attrs, skipped := ParseParams(cl.Args()[ARG_PARAMS])
	for _, err := range skipped {
		logger.Printf("skipped: %s", err)
	}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if err := models.Update(m, models.Dict{k: attrs[k]}); err != nil {
			logger.Printf("skipped: %s: %s", k, err)
		}
	}

	if err := storage.Save(ctx, st, m); err != nil {
		return err
	}
	fmt.Fprintln(cl.Stdout(), m.Meta().Id)
	return nil
}
