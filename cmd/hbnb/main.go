package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/opst/hbnb/cmd/hbnb/commands"
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

	open := commands.DefaultStorageOpener
	create := try.To(commands.NewCreate(open)).OrFatal(logger)
	show := try.To(commands.NewShow(open)).OrFatal(logger)
	all := try.To(commands.NewAll(open)).OrFatal(logger)
	destroy := try.To(commands.NewDestroy(open)).OrFatal(logger)
	update := try.To(commands.NewUpdate(open)).OrFatal(logger)
	migrate := try.To(commands.NewMigrate(open)).OrFatal(logger)
	version := try.To(commands.NewVersion()).OrFatal(logger)

	hbnb := try.To(
		flarc.NewCommandGroup(
			"HBNB admin console",
			commands.CommonFlags{ConfigPath: os.Getenv("HBNB_CONFIG")},
			flarc.WithSubcommand("create", create),
			flarc.WithSubcommand("show", show),
			flarc.WithSubcommand("all", all),
			flarc.WithSubcommand("destroy", destroy),
			flarc.WithSubcommand("update", update),
			flarc.WithSubcommand("migrate", migrate),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, hbnb, flarc.WithHelp(true)))
}
