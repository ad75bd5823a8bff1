package commands

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/youta-t/flarc"
)

func NewShow(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Print an instance.",
		struct{}{},
		flarc.Args{
			{Name: ARG_CLASS, Required: true, Help: "Class name."},
			{Name: ARG_ID, Required: true, Help: "Id of the instance."},
		},
		NewTask[struct{}](open, ShowTask),
	)
}

func ShowTask(
	ctx context.Context,
	_ *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	m, err := find(ctx, st, cl.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(cl.Stdout(), models.Describe(m))
	return nil
}

func NewAll(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Print all instances, or all instances of a class.",
		struct{}{},
		flarc.Args{
			{Name: ARG_CLASS, Required: false, Help: "Class name. When omitted, all classes are printed."},
		},
		NewTask[struct{}](open, AllTask),
	)
}

func AllTask(
	ctx context.Context,
	_ *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	class := ""
	if c := cl.Args()[ARG_CLASS]; len(c) != 0 {
		class = c[0]
		if !models.IsClass(class) {
			return fmt.Errorf("%w: %s", models.ErrUnknownClass, class)
		}
	}

	all, err := st.All(ctx, class)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintln(cl.Stdout(), models.Describe(all[k]))
	}
	return nil
}

// find the instance named by ARG_CLASS and ARG_ID.
func find(ctx context.Context, st storage.Storage, args map[string][]string) (models.Model, error) {
	class := args[ARG_CLASS][0]
	if !models.IsClass(class) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownClass, class)
	}
	return storage.Get(ctx, st, class, args[ARG_ID][0])
}
