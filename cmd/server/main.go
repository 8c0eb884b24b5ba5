package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/portfolio-dev/portfolio-server/internal/auth"
	"github.com/portfolio-dev/portfolio-server/internal/config"
	"github.com/portfolio-dev/portfolio-server/internal/database"
	"github.com/portfolio-dev/portfolio-server/internal/handler"
	"github.com/portfolio-dev/portfolio-server/internal/jobs"
	"github.com/portfolio-dev/portfolio-server/internal/mail"
	"github.com/portfolio-dev/portfolio-server/internal/media"
	"github.com/portfolio-dev/portfolio-server/internal/redis"
	"github.com/portfolio-dev/portfolio-server/internal/repository"
	"github.com/portfolio-dev/portfolio-server/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	isProduction := cfg.IsProduction()
	if !isProduction {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), config.DBMigrateTimeout)
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		cancel()
	}

	var contentOpts []service.Option
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		contentOpts = append(contentOpts, service.WithCache(redis.NewCache(redisClient, cfg.CacheTTL())))
		log.Info().Dur("ttl", cfg.CacheTTL()).Msg("redis content cache enabled")
	}

	profileRepo := repository.NewProfileRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)
	skillRepo := repository.NewSkillRepository(db.DB)
	contactRepo := repository.NewContactMessageRepository(db.DB)

	issuer := auth.NewIssuer(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, auth.WithTTL(config.SessionTTL))
	guard := auth.NewGuard(cfg.JWTSecret)

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.MailConfigured() {
		sesMailer, err := mail.NewSESMailer(context.Background(), cfg.SESRegion, cfg.MailFrom, cfg.ContactTo)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure mail relay")
		}
		mailer = sesMailer
	}

	// Left nil when storage is not configured; uploads then answer 500.
	var uploader media.Uploader
	var imageHosts []string
	if cfg.MediaConfigured() {
		s3Uploader, err := media.NewS3Uploader(context.Background(), media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.MediaPublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure media storage")
		}
		uploader = s3Uploader
		if u, err := url.Parse(cfg.MediaPublicBaseURL); err == nil && u.Host != "" {
			imageHosts = append(imageHosts, u.Scheme+"://"+u.Host)
		}
	}

	contentService := service.NewContentService(profileRepo, projectRepo, skillRepo, contentOpts...)
	contactService := service.NewContactService(contactRepo, mailer)

	router := handler.NewRouter(handler.RouterDeps{
		Issuer:               issuer,
		Guard:                guard,
		Content:              contentService,
		Contacts:             contactService,
		Uploader:             uploader,
		StaticDir:            cfg.StaticDir,
		IsProduction:         isProduction,
		RequireAuthForWrites: cfg.RequireAuthForWrites,
		ImageHosts:           imageHosts,
	})

	if retention := cfg.ContactRetention(); retention > 0 {
		cleanupJob := jobs.NewCleanupJob(contactRepo, retention, config.CleanupJobInterval)
		cleanupJob.Start()
		defer cleanupJob.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
