package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/chat-widget/internal/bootstrap"
	"github.com/GregMSThompson/chat-widget/internal/config"
	"github.com/GregMSThompson/chat-widget/internal/embed"
	"github.com/GregMSThompson/chat-widget/internal/handlers"
	"github.com/GregMSThompson/chat-widget/internal/response"
	"github.com/GregMSThompson/chat-widget/internal/router"
	"github.com/GregMSThompson/chat-widget/internal/services"
)

var cfgFile string

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "chat-widget",
		Short: "Chat launcher widget backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			serve()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file, environment variables override it")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(snippetCmd())
	rootCmd.AddCommand(presetsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}
}

func serve() {
	cfg, err := config.Load(cfgFile)
	exitOnError("config failed", err, slog.Default())

	// bootstrap
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	wserv := services.NewWidgetService(bs.Store, bs.Cache, cfg.PublicURL)
	userv := services.NewUploadService(bs.Images, cfg.MaxUploadBytes)

	script, err := embed.NewScript(embed.ScriptOptions{
		BrandingLogo: cfg.BrandingLogo,
		BrandingLink: cfg.BrandingLink,
	})
	exitOnError("script render failed", err, bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.WidgetSvc = wserv
	deps.UploadSvc = userv
	deps.Script = script
	deps.Production = cfg.IsProduction()

	// router
	r := router.NewRouter(deps, router.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadDir:      bs.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("listening", "addr", srv.Addr, "publicUrl", cfg.PublicURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		bs.Log.Error("server start failed", "error", err)
		return
	}
	bs.Log.Info("server stopped")
}
