package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/opst/hbnb/pkg/configs"
	"github.com/opst/hbnb/pkg/deploy"
	"github.com/youta-t/flarc"
)

type CommonFlags struct {
	ConfigPath string `flag:"config-path" alias:"c" metavar:"path/to/config.yaml" help:"Config file. Defaults are used when it is not given."`
}

// Deployer is what subcommands drive. *deploy.Deployer is the one.
type Deployer interface {
	Pack(ctx context.Context) (string, error)
	DoDeploy(ctx context.Context, archivePath string) error
	Deploy(ctx context.Context) (string, error)
	Clean(ctx context.Context, number int) error
}

var _ Deployer = &deploy.Deployer{}

// DeployerFactory builds a Deployer from the configuration.
type DeployerFactory func(conf configs.DeployConfig, logger *log.Logger) Deployer

func DefaultDeployerFactory(conf configs.DeployConfig, logger *log.Logger) Deployer {
	return deploy.New(conf, logger)
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	d Deployer,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts Task to flarc.Task.
//
// It loads the configuration named by CommonFlags, and builds a Deployer with factory.
func NewTask[T any](factory DeployerFactory, task Task[T]) flarc.Task[T] {
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

		return task(ctx, logger, factory(conf.Deploy, logger), cl, newpos)
	}
}
