package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/opst/hbnb/cmd/hbnb_deploy/commands"
	"github.com/opst/hbnb/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := log.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	factory := commands.DefaultDeployerFactory
	pack := try.To(commands.NewPack(factory)).OrFatal(logger)
	doDeploy := try.To(commands.NewDoDeploy(factory)).OrFatal(logger)
	deploy := try.To(commands.NewDeploy(factory)).OrFatal(logger)
	clean := try.To(commands.NewClean(factory)).OrFatal(logger)
	version := try.To(commands.NewVersion()).OrFatal(logger)

	cmd := try.To(
		flarc.NewCommandGroup(
			"Pack the HBNB static site and ship it to web servers.",
			commands.CommonFlags{ConfigPath: os.Getenv("HBNB_CONFIG")},
			flarc.WithSubcommand("pack", pack),
			flarc.WithSubcommand("do-deploy", doDeploy),
			flarc.WithSubcommand("deploy", deploy),
			flarc.WithSubcommand("clean", clean),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd, flarc.WithHelp(true)))
}
