package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/comitanigiacomo/kanso-routines/internal/app"
	"github.com/comitanigiacomo/kanso-routines/internal/cli"
	"github.com/comitanigiacomo/kanso-routines/internal/config"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
)

var version = "v0.1.0"

func main() {
	var commands cli.Commands
	kctx := kong.Parse(&commands, cli.Options(version)...)

	if err := run(kctx, &commands); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, commands *cli.Commands) (err error) {
	cfg := config.Load()
	if commands.Storage != "" {
		cfg.StorageDriver = commands.Storage
	}
	if commands.DataDir != "" {
		cfg.DataDir = commands.DataDir
	}
	cfg.Debug = cfg.Debug || commands.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.DataDir}); err != nil {
		return err
	}

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	session, err := services.OpenSession(ctx, services.NewTrackingStore(time.Now, location), storage.Repo)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		if closeErr := session.Close(closeCtx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return kctx.Run(&cli.Context{
		Store:     session.Store,
		Analytics: session.Analytics,
		Out:       os.Stdout,
	})
}
