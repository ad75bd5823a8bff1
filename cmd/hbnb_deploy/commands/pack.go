package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/youta-t/flarc"
)

func NewPack(factory DeployerFactory) (flarc.Command, error) {
	return flarc.NewCommand(
		"Archive the static site into the versions directory.",
		struct{}{},
		flarc.Args{},
		NewTask[struct{}](factory, PackTask),
		flarc.WithDescription(`
Archive the source directory (deploy.source, default "web_static")
as "<deploy.versions>/web_static_<YYYYMMDDHHMMSS>.tgz".

The path to the archive is printed to stdout.
`),
	)
}

func PackTask(
	ctx context.Context,
	logger *log.Logger,
	d Deployer,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	archivePath, err := d.Pack(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cl.Stdout(), archivePath)
	return nil
}
