// Package main verifies the public endpoints of a running pett server.
// It can be run with: go run scripts/api_verification/verify_core_endpoints.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli"
)

type endpointTest struct {
	Name string
	Path string
	// Accepted lists the status codes that count as success.
	Accepted []int
	Verify   func(body []byte) error
}

var coreEndpoints = []endpointTest{
	{
		Name:     "Greeting",
		Path:     "/",
		Accepted: []int{http.StatusOK},
		Verify: func(body []byte) error {
			if string(body) != "Hello World" {
				return fmt.Errorf("unexpected body %q", body)
			}
			return nil
		},
	},
	{
		// Down and Unknown are valid answers; only the body is checked.
		Name:     "Health",
		Path:     "/health",
		Accepted: []int{http.StatusOK, http.StatusServiceUnavailable},
		Verify: func(body []byte) error {
			switch string(body) {
			case "Ok", "Degraded", "Down", "Unknown":
				return nil
			}
			return fmt.Errorf("unexpected health status %q", body)
		},
	},
	{
		Name:     "Metadata",
		Path:     "/metadata",
		Accepted: []int{http.StatusOK},
		Verify: func(body []byte) error {
			var md map[string]string
			if err := json.Unmarshal(body, &md); err != nil {
				return fmt.Errorf("invalid JSON: %w", err)
			}
			for _, key := range []string{"version", "description", "last_commit_sha"} {
				if md[key] == "" {
					return fmt.Errorf("missing %s", key)
				}
			}
			return nil
		},
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "verify-core-endpoints"
	app.Usage = "Check that a running server answers its public endpoints"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "base-url",
			EnvVar: "API_BASE_URL",
			Value:  "http://127.0.0.1:8000",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		baseURL := ctx.String("base-url")
		fmt.Printf("Target API: %s\n\n", baseURL)

		client := &http.Client{Timeout: 10 * time.Second}
		failures := 0
		for _, test := range coreEndpoints {
			if err := runTest(client, baseURL, test); err != nil {
				failures++
				fmt.Printf("FAIL %s: %v\n", test.Name, err)
				continue
			}
			fmt.Printf("ok   %s\n", test.Name)
		}

		if failures > 0 {
			return cli.NewExitError(fmt.Sprintf("%d of %d endpoints failed", failures, len(coreEndpoints)), 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTest(client *http.Client, baseURL string, test endpointTest) error {
	resp, err := client.Get(baseURL + test.Path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	accepted := false
	for _, code := range test.Accepted {
		if resp.StatusCode == code {
			accepted = true
			break
		}
	}
	if !accepted {
		return fmt.Errorf("unexpected HTTP %d", resp.StatusCode)
	}
	return test.Verify(body)
}
