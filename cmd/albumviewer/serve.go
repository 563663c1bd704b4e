package main

import (
	"context"
	"os"
	"syscall"
	"time"

	"albumviewer/internal/flow"
	"albumviewer/internal/http"
	"albumviewer/internal/placeholder"

	"cloud.google.com/go/compute/metadata"
	"github.com/spf13/cobra"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screens and their actions as a JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if metadata.OnGCE() {
			v.Addr = ":" + os.Getenv("PORT")
		}
		return serve(cmd.Context())
	},
}

func newLogger(out *os.File) *zap.Zap {
	logger := zap.New(v.AppName, version, out)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}
	return logger
}

func newApp(logger *zap.Zap) *flow.App {
	gateway := placeholder.New(placeholder.Config{
		BaseURL:      v.APIBaseURL,
		Timeout:      v.HTTPTimeout,
		MaxOpenConns: v.MaxOpenConns,
	}, logger)
	return flow.NewApp(flow.AppConfig{
		Gateway: gateway,
		Logger:  logger,
	})
}

func serve(ctx context.Context) error {
	logger := newLogger(os.Stdout)
	app := newApp(logger)

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("albumviewer root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})
	lc.Start("user list mount", func() error {
		if err := app.Users.Mount(ctx); err != nil {
			logger.Error("[serve] user list failed to load",
				"details", err.Error(),
			)
		}
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:  logger,
		Version: version,
		App:     app,
		AppName: v.AppName,
	}
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
	return nil
}
