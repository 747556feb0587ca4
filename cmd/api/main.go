package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/raatap-waitlist/internal/config"
	"github.com/raatap-waitlist/internal/infrastructure/awscfg"
	"github.com/raatap-waitlist/internal/infrastructure/dynamo"
	"github.com/raatap-waitlist/internal/infrastructure/google"
	jwtinfra "github.com/raatap-waitlist/internal/infrastructure/jwt"
	"github.com/raatap-waitlist/internal/infrastructure/mail"
	"github.com/raatap-waitlist/internal/infrastructure/places"
	s3infra "github.com/raatap-waitlist/internal/infrastructure/s3"
	"github.com/raatap-waitlist/internal/infrastructure/sns"
	pkgtoken "github.com/raatap-waitlist/internal/pkg/token"
	transporthttp "github.com/raatap-waitlist/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := setupLogger(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(log)
	if envErr != nil {
		log.Debug("no .env file found, reading from environment")
	}

	ctx := context.Background()

	awsCfg, err := awscfg.Load(ctx, cfg, "")
	if err != nil {
		log.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = pkgtoken.NewSecret()
		if err != nil {
			log.Error("failed to generate session secret", "error", err)
			os.Exit(1)
		}
		log.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}
	tokens, err := jwtinfra.NewProvider(secret)
	if err != nil {
		log.Error("invalid session secret", "error", err)
		os.Exit(1)
	}

	mailer, err := mail.NewMailer(awsCfg, cfg)
	if err != nil {
		log.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		OTPRepo:     dynamo.NewOtpRepo(dynamoClient, cfg.DynamoTables.OTPs),
		ProfileRepo: dynamo.NewProfileRepo(dynamoClient, cfg.DynamoTables.Profiles),
		Mailer:      mailer,
		Tokens:      tokens,
		Geocoder:    places.NewNominatimClient(cfg.NominatimURL),
	}

	// Optional integrations stay nil unless configured.
	if cfg.SMSEnabled {
		snsCfg, err := awscfg.Load(ctx, cfg, cfg.SNSRegion)
		if err != nil {
			log.Warn("SNS sender not available", "error", err)
		} else {
			deps.SMSSender = sns.NewSender(snsCfg, cfg)
		}
	}
	if cfg.S3BucketName != "" {
		deps.Exports = s3infra.NewStore(s3infra.NewClient(awsCfg, cfg), cfg.S3BucketName)
	} else {
		log.Info("S3_BUCKET_NAME not set; waitlist export disabled")
	}
	if cfg.GoogleClientID != "" {
		deps.Google = google.NewVerifier(cfg.GoogleClientID)
	}
	if cfg.GoogleMapsAPIKey != "" {
		deps.Places = places.NewGoogleClient(cfg.GooglePlacesURL, cfg.GoogleMapsAPIKey)
	}
	if cfg.AdminEmail == "" {
		log.Warn("admin credentials not configured; admin login will fail")
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "mail_driver", cfg.MailDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

const (
	envLocal = "local"
	envDev   = "development"
)

// setupLogger picks a text handler for local runs and JSON elsewhere.
func setupLogger(env, level string) *slog.Logger {
	lvl := parseLevel(level)
	switch env {
	case envLocal, envDev:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
