package commands

import (
	"context"
	"fmt"

	"github.com/opst/hbnb/pkg/buildtime"
	"github.com/youta-t/flarc"
)

func NewVersion() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show version of this command.",
		struct{}{},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			_, err := fmt.Fprintln(c.Stdout(), buildtime.VersionString())
			return err
		},
	)
}
