// Command legalchunk chunks French legal and construction documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/cli"
	"github.com/custodia-labs/legalchunk/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(app.Options{ConfigDir: os.Getenv("LEGALCHUNK_HOME")})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer a.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chunking:   a.Chunking,
		Settings:   a.SettingsService,
		History:    a.History,
		Loader:     a.Loader,
		ConfigPath: a.ConfigStore.Path(),
	})

	return cli.ExecuteContext(ctx)
}
