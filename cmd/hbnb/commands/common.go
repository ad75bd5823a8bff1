package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/opst/hbnb/pkg/configs"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/engine"
	"github.com/youta-t/flarc"
)

const (
	ARG_CLASS = "CLASS"
	ARG_ID    = "ID"
)

type CommonFlags struct {
	ConfigPath string `flag:"config-path" alias:"c" metavar:"path/to/config.yaml" help:"Config file. HBNB_* environment variables override it."`
}

// StorageOpener opens the storage to be operated.
type StorageOpener func(ctx context.Context, conf configs.StorageConfig) (storage.Storage, error)

// DefaultStorageOpener opens the storage selected by configuration.
var DefaultStorageOpener StorageOpener = engine.Open

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	st storage.Storage,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts Task to flarc.Task.
//
// The storage is opened before the task, and closed after that.
func NewTask[T any](open StorageOpener, task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		conf, err := configs.Load(commonFlag.ConfigPath)
		if err != nil {
			return fmt.Errorf("can not read configuration: %w", err)
		}

		st, err := open(ctx, conf.Storage)
		if err != nil {
			return fmt.Errorf("can not open storage: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Printf("failed to close storage: %s", err)
			}
		}()

		return task(ctx, logger, st, cl, newpos)
	}
}
