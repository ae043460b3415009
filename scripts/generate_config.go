package main

import (
	"fmt"
	"os"

	"github.com/NomadCrew/pett-server/config"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "generate-config"
	app.Usage = "Write a YAML configuration template usable through CONFIG_FILE"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "env,e",
			Usage:  "Environment to generate the template for (development or production)",
			EnvVar: "SERVER_ENVIRONMENT",
			Value:  string(config.EnvDevelopment),
		},
		cli.StringFlag{
			Name:  "out,o",
			Usage: "Destination file",
			Value: "config.yaml",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		env := config.Environment(ctx.String("env"))
		if err := config.CreateConfigTemplateForEnvironment(ctx.String("out"), env); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Fprintf(ctx.App.Writer, "Wrote %s configuration to %s\n", env, ctx.String("out"))
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
