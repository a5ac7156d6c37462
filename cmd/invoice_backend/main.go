package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/SscSPs/simple_invoice_app/internal/adapters/pdf"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	"github.com/SscSPs/simple_invoice_app/internal/core/services"
	"github.com/SscSPs/simple_invoice_app/internal/handlers"
	"github.com/SscSPs/simple_invoice_app/internal/middleware"
	"github.com/SscSPs/simple_invoice_app/internal/platform/config"
	fsrepo "github.com/SscSPs/simple_invoice_app/internal/repositories/database/firestore"
	"github.com/SscSPs/simple_invoice_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/simple_invoice_app/internal/utils"
	"github.com/SscSPs/simple_invoice_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"google.golang.org/api/option"
)

// @title SimpleInvoice API
// @version 1.0
// @description Invoices, PDF export and dashboard statistics for signed-in users.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var firebaseApp *firebase.App
	if cfg.FirebaseEnabled() {
		firebaseApp, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	repos, closeStore, err := setupRecordStore(ctx, cfg, firebaseApp, logger)
	if err != nil {
		logger.Error("Failed to initialize record store", slog.String("store", cfg.RecordStore), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var containerOptions []services.ContainerOption
	if firebaseApp != nil {
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			logger.Error("Failed to initialize Firebase Auth client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		containerOptions = append(containerOptions, services.WithFirebaseAuth(authClient))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, pdf.NewEncoder(cfg.JWTIssuer), containerOptions...)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		logger.Error("Invalid AUTH_RATE_LIMIT", slog.String("value", cfg.AuthRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	authLimiter := limiter.New(memory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the web frontend)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, authLimiter, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.RecordStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newFirebaseApp creates the Firebase app. A credentials file is optional;
// without one the application default credentials are used.
func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	return firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
}

// setupRecordStore connects the configured backend and returns its
// repositories with a function releasing the connection.
func setupRecordStore(ctx context.Context, cfg *config.Config, firebaseApp *firebase.App, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.RecordStore {
	case config.RecordStoreFirestore:
		if firebaseApp == nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("firestore store needs FIREBASE_PROJECT_ID")
		}
		client, err := firebaseApp.Firestore(ctx)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		logger.Info("Firestore client established.", slog.String("project_id", cfg.FirebaseProjectID))
		return fsrepo.NewRepositoryProvider(client), closeFirestore(client, logger), nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, logger); err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
	}
}

func closeFirestore(client *firestore.Client, logger *slog.Logger) func() {
	return func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing firestore client", slog.String("error", err.Error()))
		}
	}
}
