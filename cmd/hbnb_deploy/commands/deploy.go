package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/youta-t/flarc"
)

const ARG_ARCHIVE = "ARCHIVE"

func NewDoDeploy(factory DeployerFactory) (flarc.Command, error) {
	return flarc.NewCommand(
		"Distribute an archive to web servers.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_ARCHIVE, Required: true,
				Help: "Path to the archive made by pack.",
			},
		},
		NewTask[struct{}](factory, DoDeployTask),
		flarc.WithDescription(`
Upload the archive to each of deploy.hosts, extract it into deploy.releases
and point deploy.current to it.

Hosts are processed in order, and it stops at the first failure.
`),
	)
}

func DoDeployTask(
	ctx context.Context,
	logger *log.Logger,
	d Deployer,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	archivePath := cl.Args()[ARG_ARCHIVE][0]
	if err := d.DoDeploy(ctx, archivePath); err != nil {
		return err
	}
	logger.Printf("%s is deployed", archivePath)
	return nil
}

func NewDeploy(factory DeployerFactory) (flarc.Command, error) {
	return flarc.NewCommand(
		"Pack the static site and distribute it to web servers.",
		struct{}{},
		flarc.Args{},
		NewTask[struct{}](factory, DeployTask),
	)
}

func DeployTask(
	ctx context.Context,
	logger *log.Logger,
	d Deployer,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	archivePath, err := d.Deploy(ctx)
	if archivePath != "" {
		fmt.Fprintln(cl.Stdout(), archivePath)
	}
	return err
}
