// Command healthcheck probes a running pett server and exits non-zero unless
// it reports itself available. It is meant for container HEALTHCHECK use so
// the image needs no curl or wget.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "healthcheck"
	app.Usage = "Exit 0 when GET /health returns 200, 1 otherwise"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "addr,a",
			Usage:  "host:port of the server to probe",
			EnvVar: "PETT_HEALTHCHECK_ADDR",
			Value:  "127.0.0.1:8000",
		},
		cli.DurationFlag{
			Name:  "timeout,t",
			Usage: "Maximum time to wait for a response",
			Value: 3 * time.Second,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	status, err := probe(ctx.String("addr"), ctx.Duration("timeout"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("healthcheck failed: %v", err), 1)
	}
	fmt.Fprintln(ctx.App.Writer, status)
	return nil
}

// probe returns the reported status when the server answers 200.
func probe(addr string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", err
	}
	status := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d %s", resp.StatusCode, status)
	}
	return status, nil
}
