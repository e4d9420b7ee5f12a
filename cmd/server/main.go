// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/database"
	"github.com/herambgvd/gvd-frs/internal/documents"
	"github.com/herambgvd/gvd-frs/internal/router"
	"github.com/herambgvd/gvd-frs/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	configureLogging(cfg)

	// Initialize the relational database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize the document store
	store, err := documents.Initialize(cfg.Mongo)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize document store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store.Close(ctx)
	}()

	// Initialize object storage
	storageService, err := services.NewStorageService(&cfg.Storage)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize object storage")
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := storageService.EnsureBucket(ctx); err != nil {
			logrus.WithError(err).Warn("Object store bucket check failed")
		}
		cancel()
	}

	// Seed demo license keys
	if cfg.Demo.SeedKeys {
		keyStore := services.NewKeyStore(db)
		licenseService := services.NewLicenseService(db, keyStore)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := licenseService.SeedDemoKeys(ctx); err != nil {
			logrus.WithError(err).Warn("Failed to seed demo license keys")
		}
		cancel()
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, store, storageService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func configureLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}
}
