package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/askme/backend/internal/config"
	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/logging"
	"github.com/emilythestrangee/askme/backend/internal/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	srv := server.NewServer(cfg, db, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	if err := db.Close(); err != nil {
		log.WithError(err).Error("failed to close database")
	}
}
