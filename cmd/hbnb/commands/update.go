package commands

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/youta-t/flarc"
)

const (
	ARG_ATTR  = "ATTR"
	ARG_VALUE = "VALUE"
)

func NewUpdate(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Set an attribute of an instance.",
		struct{}{},
		flarc.Args{
			{Name: ARG_CLASS, Required: true, Help: "Class name."},
			{Name: ARG_ID, Required: true, Help: "Id of the instance."},
			{Name: ARG_ATTR, Required: true, Help: "Attribute name."},
			{
				Name: ARG_VALUE, Required: true,
				Help: `New value. It is read as PARAMS of create, and taken as it is when it can not be read.`,
			},
		},
		NewTask[struct{}](open, UpdateTask),
	)
}

func UpdateTask(
	ctx context.Context,
	_ *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	args := cl.Args()
	attr := args[ARG_ATTR][0]
	if slices.Contains([]string{models.KeyId, models.KeyCreatedAt, models.KeyUpdatedAt, models.KeyClass}, attr) {
		return fmt.Errorf("%w: %s can not be updated", ErrInvalidParam, attr)
	}

	m, err := find(ctx, st, args)
	if err != nil {
		return err
	}

	var value any = args[ARG_VALUE][0]
	if v, err := ParseValue(args[ARG_VALUE][0]); err == nil {
		value = v
	}
	if err := models.Update(m, models.Dict{attr: value}); err != nil {
		return err
	}
	return storage.Save(ctx, st, m)
}
