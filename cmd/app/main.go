package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/mailservice"
	"github.com/sushihentaime/newsportal/internal/metrics"
	"github.com/sushihentaime/newsportal/internal/newsservice"
	"github.com/sushihentaime/newsportal/internal/productservice"
	"github.com/sushihentaime/newsportal/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	metrics        *metrics.Collector
	registry       *prometheus.Registry
	userService    *userservice.UserService
	newsService    *newsservice.NewsService
	productService *productservice.ProductService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
	db             pinger
}

// pinger is the part of *sql.DB the health check needs.
type pinger interface {
	PingContext(ctx context.Context) error
}

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	runMigrations := flag.Bool("migrate", false, "apply database migrations before starting")
	migrationsPath := flag.String("migrations", "file://migrations", "migrations source URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	if *runMigrations {
		if _, err := common.Migrate(*migrationsPath, dsn); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	db, err := common.NewDB(dsn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	if err := common.DeclareTopology(broker); err != nil {
		logger.Error("failed to declare the broker topology", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	cache := common.NewCache(cfg.CacheDefaultExpiration, cfg.CacheCleanupInterval)

	mailService, err := mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger)
	if err != nil {
		logger.Error("failed to load the email templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		metrics:        collector,
		registry:       registry,
		userService:    userservice.NewUserService(db, broker),
		newsService:    newsservice.NewNewsService(db, broker, cache, cache, logger, collector),
		productService: productservice.NewProductService(db, cache, cache, collector),
		mailService:    mailService,
		broker:         broker,
		db:             db,
	}

	app.mailService.SendActivationEmail()
	app.mailService.SendNewPostEmail()
	defer app.mailService.Close()

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
