package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell/blog-platform/internal/api"
	"github.com/inkwell/blog-platform/internal/core/service"
	"github.com/inkwell/blog-platform/internal/infrastructure/db/mongo"
	"github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/events"
	"github.com/inkwell/blog-platform/internal/infrastructure/mail"
	"github.com/inkwell/blog-platform/internal/infrastructure/media"
	"github.com/inkwell/blog-platform/internal/infrastructure/oauth"
	"github.com/inkwell/blog-platform/internal/infrastructure/queue"
	"github.com/inkwell/blog-platform/internal/pkg/config"
	"github.com/inkwell/blog-platform/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
	cleanupWorkers  = 4
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Data stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	postRepo := mongo.NewPostRepository(db)
	categoryRepo := mongo.NewCategoryRepository(db)
	contactRepo := mongo.NewContactRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		postRepo.EnsureIndexes,
		categoryRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Infrastructure services ---
	mediaStore := media.NewCloudinaryStore(media.CloudinaryConfig{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	}, log)

	cleaner := queue.NewCleaner(cleanupWorkers, mediaStore, log)
	cleaner.Start(ctx)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, log)

	broker := events.NewRedisBroker(rdb, log)
	tickets := redis.NewTicketStore(rdb)

	// --- Core services ---
	authService := service.NewAuthService(userRepo, mediaStore, cleaner, mailer, broker, cfg.JWTSecret, tokenTTL, log)
	postService := service.NewPostService(postRepo, categoryRepo, userRepo, mediaStore, cleaner, broker, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	contactService := service.NewContactService(contactRepo, log)
	adminService := service.NewAdminService(userRepo, contactRepo, log)

	providers := []oauth.Provider{
		oauth.NewGoogleProvider(oauth.Credentials{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			CallbackURL:  cfg.Google.CallbackURL,
		}),
		oauth.NewGitHubProvider(oauth.Credentials{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			CallbackURL:  cfg.GitHub.CallbackURL,
		}),
	}

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Posts:       postService,
		Categories:  categoryService,
		Contacts:    contactService,
		Admin:       adminService,
		Broker:      broker,
		Tickets:     tickets,
		Providers:   providers,
		FrontendURL: cfg.FrontendURL,
		Mongo:       db,
		Redis:       rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server shut down")
}
