package commands

import (
	"context"
	"log"

	"github.com/youta-t/flarc"
)

type CleanFlags struct {
	Number int `flag:"number" alias:"n" help:"How many recent archives are kept. 0 is same as 1."`
}

func NewClean(factory DeployerFactory) (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete out-of-date archives and releases.",
		CleanFlags{Number: 0},
		flarc.Args{},
		NewTask[CleanFlags](factory, CleanTask),
		flarc.WithDescription(`
Delete archives in deploy.versions and releases in deploy.releases on each host,
except for the most recent ones.
`),
	)
}

func CleanTask(
	ctx context.Context,
	logger *log.Logger,
	d Deployer,
	cl flarc.Commandline[CleanFlags],
	_ []any,
) error {
	return d.Clean(ctx, cl.Flags().Number)
}
