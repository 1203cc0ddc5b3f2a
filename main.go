// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/jobs"
	"go-storefront/metrics"
	"go-storefront/middleware"
	"go-storefront/repository"
	"go-storefront/repository/memory"
	mongostore "go-storefront/repository/mongo"
	"go-storefront/routes"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store
	store, closeStore, err := openStore(ctx, conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	// Initialize services
	mailer, err := utils.NewMailer(conf.EmailConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mailer")
	}
	emailService := utils.NewEmailService(mailer, conf.ClientURL)
	tokens := utils.NewTokenManager(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	auth := services.NewAuthService(store, tokens, conf.SecureCookies)
	uploads := utils.NewUploader(conf.UploadDir)
	limiter := middleware.NewRateLimiter(conf.RateLimit, conf.RateBurst)

	// Initialize controllers
	handlers := routes.Controllers{
		User:     controllers.NewUserController(store, auth, emailService, uploads),
		OAuth:    controllers.NewOAuthController(store, auth, conf.GoogleConfig, conf.ClientURL),
		Product:  controllers.NewProductController(store),
		Cart:     controllers.NewCartController(store),
		Wishlist: controllers.NewWishlistController(store),
		Purchase: controllers.NewPurchaseController(store, emailService),
		Review:   controllers.NewReviewController(store, uploads),
		Contact:  controllers.NewContactController(store),
		Admin:    controllers.NewAdminController(store, auth, emailService, conf.AdminSecret),
		Agent:    controllers.NewAgentController(store, auth, emailService, conf.AgentSecret),
	}

	// Set up the router
	router := mux.NewRouter()
	routes.Instrument(router, middleware.Logger, metrics.InstrumentHandler)
	routes.RegisterRoutes(router, handlers, auth, limiter, store, uploads.Dir())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   conf.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	// Background cleanup
	scheduler, err := jobs.Schedule(jobs.NewCleaner(store, limiter), conf.CleanupInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	// Start the server
	server := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.Info().Str("port", conf.Port).Str("storage", conf.Storage).Msg("Server is running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(conf *config.Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if conf.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// openStore returns the configured store and a func releasing it
func openStore(ctx context.Context, conf *config.Config) (*repository.Store, func(), error) {
	if conf.Storage == "memory" {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	client, err := utils.ConnectDB(ctx, conf.MongoDBConfig.URI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(conf.MongoDBConfig.Database)
	if err = mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}
	return mongostore.NewStore(db), closeFn, nil
}
