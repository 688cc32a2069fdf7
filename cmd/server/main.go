package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/config"
	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/Maxito7/heey_portfolio/internal/email"
	"github.com/Maxito7/heey_portfolio/internal/infrastructure/repository"
	handlers "github.com/Maxito7/heey_portfolio/internal/interfaces/http"
	services "github.com/Maxito7/heey_portfolio/internal/service"
	"github.com/Maxito7/heey_portfolio/internal/ui/gallery"
	"github.com/Maxito7/heey_portfolio/internal/ui/modal"
	"github.com/Maxito7/heey_portfolio/internal/ui/session"
	"github.com/Maxito7/heey_portfolio/internal/ui/zoom"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}

	s3Service, err := services.NewS3Service(ctx, services.S3Options{
		BucketName: cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		Endpoint:   cfg.Storage.Endpoint,
		SignedURLs: cfg.Storage.SignedURLs,
		URLExpiry:  cfg.Storage.URLExpiry,
		Anonymous:  cfg.Storage.Anonymous,
	}, logger)
	if err != nil {
		return fmt.Errorf("error initializing S3: %w", err)
	}

	portfolioRepo := repository.NewPortfolioRepository(db)
	content := application.NewContentClient(portfolioRepo, s3Service, logger)
	portfolioService := application.NewPortfolioService(portfolioRepo)

	var mailer domain.Mailer
	if cfg.MailEnabled() {
		emailClient, err := email.NewClient(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.FromName,
			cfg.SMTP.FromEmail,
			logger,
		)
		if err != nil {
			logger.Warn("email client initialization failed, contact form disabled", zap.Error(err))
		} else {
			mailer = emailClient
		}
	}
	contactService := application.NewContactService(mailer, cfg.SMTP.ContactTo, logger)

	store := session.NewStore(content, clockwork.NewRealClock(), logger, sessionOptions(cfg))
	defer store.Close()

	limiter := application.NewRateLimiter(cfg.Limits.Window, cfg.Limits.Requests, nil)
	defer limiter.Close()

	app := fiber.New(fiber.Config{
		BodyLimit:             512 << 20,
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length,X-RateLimit-Remaining",
		MaxAge:           86400,
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Portfolio: handlers.NewPortfolioHandler(content, portfolioService, cfg.UI.PlaceholderImage, logger),
		Asset:     handlers.NewAssetHandler(content, logger),
		Session:   handlers.NewSessionHandler(store, logger),
		Contact:   handlers.NewContactHandler(contactService),
	}, limiter)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		errCh <- app.Listen(":" + cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func sessionOptions(cfg *config.Config) session.Options {
	opts := session.DefaultOptions()
	opts.TTL = cfg.UI.SessionTTL
	opts.Page = gallery.Options{
		Grid: gallery.GridOptions{
			RowHeight:   cfg.UI.RowHeight,
			RowGap:      cfg.UI.RowGap,
			Debounce:    cfg.UI.LayoutDebounce,
			Placeholder: cfg.UI.PlaceholderImage,
		},
		Modal: modal.Options{
			ShowDelay:     cfg.UI.ShowDelay,
			EnterDuration: cfg.UI.EnterDuration,
			ExitDuration:  cfg.UI.ExitDuration,
		},
		Zoom:         zoom.DefaultOptions(),
		HeroInterval: cfg.UI.HeroInterval,
	}
	return opts
}
