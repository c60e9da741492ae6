package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-console/internal/auth"
	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/handlers"
	"github.com/ukydev/fleet-console/internal/notify"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	st, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	authService, err := auth.NewService(a.cfg.JWTSecret, a.cfg.JWTExpiry)
	if err != nil {
		return err
	}

	var notifier fleet.Notifier = notify.Nop{}
	if a.cfg.MQTTEnabled() {
		pub, err := notify.NewMQTTPublisher(a.cfg.MQTTBroker, a.cfg.MQTTClientID, a.cfg.MQTTTopic)
		if err != nil {
			return err
		}
		defer pub.Close()
		notifier = pub
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:           authService,
		Store:          st,
		Fleet:          fleet.NewService(st, fleet.WithNotifier(notifier)),
		LoginRateLimit: a.cfg.LoginRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("port", a.cfg.Port).Info("HTTP server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
