// Command describe prints the revision identifier embedded into release
// builds. It is invoked by the Makefile when computing -ldflags.
package main

import (
	"fmt"
	"os"

	"github.com/NomadCrew/pett-server/internal/gitdescribe"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "describe"
	app.Usage = "Describe the checked out commit using the nearest tag"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "dir,d",
			Usage: "Directory inside the repository to describe",
			Value: ".",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		revision, err := gitdescribe.Describe(ctx.String("dir"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Fprintln(ctx.App.Writer, revision)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
