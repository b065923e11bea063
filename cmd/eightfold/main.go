// Command eightfold serves the directory it lives in over HTTP for local
// development, with caching disabled and colorized request logs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/f4ah6o/eightfold-go/internal/config"
	"github.com/f4ah6o/eightfold-go/internal/console"
	"github.com/f4ah6o/eightfold-go/internal/devserver"
	"github.com/urfave/cli"
)

// Version is filled in at linking time.
var Version = "<unknown>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(ctx, os.Stdout, config.ExecutableRoot)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp(ctx context.Context, out io.Writer, rootFunc func() (string, error)) *cli.App {
	app := cli.NewApp()
	app.Name = "eightfold"
	app.Version = Version
	app.Usage = "development server for the files next to this executable"
	app.UsageText = fmt.Sprintf("%s [port]", app.Name)
	app.ArgsUsage = "[port]"
	app.Writer = out
	app.Action = func(clicontext *cli.Context) error {
		cfg, err := loadConfig(clicontext.Args().First(), rootFunc)
		if err != nil {
			return err
		}
		return devserver.New(cfg, console.New(out)).Run(ctx)
	}
	return app
}

// loadConfig builds the config from defaults, the optional config file in
// the root directory, and the port argument, in that order.
func loadConfig(portArg string, rootFunc func() (string, error)) (*config.Config, error) {
	cfg := config.Default()

	root, err := rootFunc()
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	if err := config.LoadFile(root, cfg); err != nil {
		return nil, err
	}
	if portArg != "" {
		port, err := config.ParsePort(portArg)
		if err != nil {
			return nil, err
		}
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
