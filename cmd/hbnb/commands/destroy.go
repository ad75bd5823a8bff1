package commands

import (
	"context"
	"log"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/youta-t/flarc"
)

func NewDestroy(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete an instance.",
		struct{}{},
		flarc.Args{
			{Name: ARG_CLASS, Required: true, Help: "Class name."},
			{Name: ARG_ID, Required: true, Help: "Id of the instance."},
		},
		NewTask[struct{}](open, DestroyTask),
	)
}

func DestroyTask(
	ctx context.Context,
	logger *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	m, err := find(ctx, st, cl.Args())
	if err != nil {
		return err
	}
	if err := storage.Delete(ctx, st, m); err != nil {
		return err
	}
	logger.Printf("deleted: %s", models.Key(m))
	return nil
}
