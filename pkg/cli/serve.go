package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/headwind-cms/headwind/pkg/cli/config"
	httpctrl "github.com/headwind-cms/headwind/pkg/controller/http"
	"github.com/headwind-cms/headwind/pkg/usecase"
	"github.com/headwind-cms/headwind/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var activityLimit int
	var repoCfg config.Repository
	var schemaCfg config.SchemaFile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("HEADWIND_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "activity-limit",
			Usage:       "Maximum activity entries returned per record",
			Value:       50,
			Sources:     cli.EnvVars("HEADWIND_ACTIVITY_LIMIT"),
			Destination: &activityLimit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, schemaCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if err := schemaCfg.Apply(ctx, repo); err != nil {
				return goerr.Wrap(err, "failed to apply schema file")
			}

			uc := usecase.New(repo, usecase.WithActivityLimit(activityLimit))

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
