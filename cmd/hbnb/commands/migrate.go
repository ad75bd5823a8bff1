package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/file"
	"github.com/youta-t/flarc"
)

type MigrateFlags struct {
	From string `flag:"from" metavar:"path/to/file.json" help:"JSON file of the file store. Its instances are copied into the configured storage."`
}

func NewMigrate(open StorageOpener) (flarc.Command, error) {
	return flarc.NewCommand(
		"Prepare the storage, and import instances from a file store.",
		MigrateFlags{},
		flarc.Args{},
		NewTask[MigrateFlags](open, MigrateTask),
		flarc.WithDescription(`
Tables of the relational store are created or upgraded.

With --from, instances in the JSON file are saved into the configured storage.
Classes which the storage can not hold (BaseModel, for the relational store) are skipped.
`),
	)
}

func MigrateTask(
	ctx context.Context,
	logger *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[MigrateFlags],
	_ []any,
) error {
	// the storage is reloaded, so the schema is ready here.
	from := cl.Flags().From
	if from == "" {
		logger.Println("storage is ready")
		return nil
	}

	// the file store tolerates a missing file, but --from is an explicit input.
	if _, err := os.Stat(from); err != nil {
		return err
	}
	src := file.New(from)
	if err := src.Reload(ctx); err != nil {
		return err
	}
	all, err := src.All(ctx, "")
	if err != nil {
		return err
	}

	order := map[string]int{}
	for i, c := range models.Classes() {
		order[c] = i
	}
	ms := make([]models.Model, 0, len(all))
	for _, m := range all {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool {
		if oi, oj := order[ms[i].Class()], order[ms[j].Class()]; oi != oj {
			return oi < oj
		}
		return ms[i].Meta().Id < ms[j].Meta().Id
	})

	copied := 0
	for _, m := range ms {
		if err := st.New(ctx, m); err != nil {
			if errors.Is(err, storage.ErrUnsupportedClass) {
				logger.Printf("skipped: %s", models.Key(m))
				continue
			}
			return err
		}
		copied += 1
	}
	if err := st.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cl.Stdout(), "%d instances are migrated from %s\n", copied, from)
	return nil
}
