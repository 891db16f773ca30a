package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/01moynul/agencyhub/internal/config"
	"github.com/01moynul/agencyhub/internal/database"
	"github.com/01moynul/agencyhub/internal/email"
	"github.com/01moynul/agencyhub/internal/handlers"
	"github.com/01moynul/agencyhub/internal/logger"
	"github.com/01moynul/agencyhub/internal/routes"
	"github.com/01moynul/agencyhub/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.OpenDB(ctx, cfg.DB.DSN)
	if err == nil {
		err = database.Migrate(ctx, db)
	}
	cancel()
	if err != nil {
		log.Fatal("failed to prepare database", zap.Error(err))
	}
	defer db.Close()

	// 2. --- Image Storage ---
	images, uploadDir, err := newImageStore(cfg.Storage)
	if err != nil {
		log.Fatal("failed to set up image storage", zap.Error(err))
	}

	// 3. --- Email ---
	var sender email.Sender = &email.LogSender{Log: log.Named("email")}
	if cfg.SMTP.Host != "" {
		smtp, err := email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			log.Fatal("failed to set up SMTP", zap.Error(err))
		}
		sender = smtp
	} else {
		log.Warn("SMTP_HOST not set, inquiry emails will only be logged")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Prices:   &database.PricePlanStore{DB: db},
		Projects: &database.ProjectStore{DB: db},
		Queries:  &database.QueryStore{DB: db},
		Images:   images,
		Notifier: &email.Notifier{
			Sender:       sender,
			AdminAddress: cfg.Admin.NotifyEmail,
			SiteName:     cfg.App.SiteName,
			Timeout:      cfg.SMTP.Timeout,
		},
		Tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL),
		Admin: auth.AdminCredentials{
			Email:        cfg.Admin.Email,
			Password:     cfg.Admin.Password,
			PasswordHash: cfg.Admin.PasswordHash,
		},
		DB:             db,
		Log:            log,
		MaxUploadBytes: cfg.Storage.MaxBytes,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		LoginRatePerMinute: cfg.HTTP.LoginRatePerMinute,
		UploadDir:          uploadDir,
		Log:                log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// --- Start Server ---
	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

// newImageStore picks the configured image host. The returned dir is non-empty
// when images live on local disk and must be served by the API.
func newImageStore(cfg config.StorageConfig) (storage.ImageStore, string, error) {
	if cfg.Driver == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:     cfg.Endpoint,
			Region:       cfg.Region,
			Bucket:       cfg.Bucket,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			PublicURL:    cfg.PublicURL,
			UsePathStyle: cfg.UsePathStyle,
		})
		return store, "", err
	}

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return nil, "", err
	}
	return store, cfg.UploadDir, nil
}
