package app

import (
	"context"
	"credit-engine/internal/config"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/database/postgres"
	"credit-engine/internal/ingest"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

const (
	rabbitMQDialAttempts = 5
	redisPingTimeout     = 10 * time.Second
)

// Components is the service graph shared by the HTTP server and the CLI.
type Components struct {
	CustomerRepo    *postgres.CustomerRepository
	LoanRepo        *postgres.LoanRepository
	CustomerService customer.CustomerService
	LoanService     loan.LoanService
	CreditService   credit.Service
	Ingester        *ingest.Ingester
}

// Publishers groups the optional event sinks. Leave both nil to disable events.
type Publishers struct {
	Customer customer.EventPublisher
	Credit   credit.EventPublisher
}

func Build(cfg *config.Config, db postgres.DBPool, pubs Publishers, logger *slog.Logger) *Components {
	logger.Info("Initializing application components...")
	loc := cfg.Scoring.Location()
	now := func() time.Time { return time.Now().In(loc) }

	defaultScore := cfg.Scoring.DefaultScore
	if defaultScore < credit.MinScore || defaultScore > credit.MaxScore {
		logger.Warn("Configured default score out of range, using built-in default", "configured", defaultScore, "default", credit.DefaultScore)
		defaultScore = credit.DefaultScore
	}

	customerRepo := postgres.NewCustomerRepository(db, logger)
	loanRepo := postgres.NewLoanRepository(db, logger)
	customerService := customer.NewCustomerService(customerRepo, pubs.Customer, logger)
	loanService := loan.NewLoanService(loanRepo, customerService, now, logger)
	creditService := credit.NewService(customerRepo, loanRepo, credit.NewScorer(defaultScore), logger,
		credit.WithLocation(loc),
		credit.WithPublisher(pubs.Credit),
	)

	return &Components{
		CustomerRepo:    customerRepo,
		LoanRepo:        loanRepo,
		CustomerService: customerService,
		LoanService:     loanService,
		CreditService:   creditService,
		Ingester:        ingest.NewIngester(customerRepo, loanRepo, cfg.Ingest, logger),
	}
}

// ConnectDatabase opens the pool and applies pending migrations when enabled.
func ConnectDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.URL, cfg.MigrationsPath, logger); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	pool, err := postgres.NewConnectionPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// ConnectRabbitMQ dials with linear backoff and logs when the broker blocks
// or drops the connection.
func ConnectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= rabbitMQDialAttempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")
			go watchConnection(conn, logger)
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", rabbitMQDialAttempts),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", rabbitMQDialAttempts, err)
}

func watchConnection(conn *amqp.Connection, logger *slog.Logger) {
	blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case b := <-blockChan:
		logger.Warn("RabbitMQ connection blocked", "reason", b.Reason)
	case e := <-closeChan:
		if e != nil {
			logger.Error("RabbitMQ connection closed", slog.Any("error", e))
		}
	}
}

// SetupPublishers returns the event sinks and the connection to close on
// shutdown. A disabled or unreachable broker yields empty publishers.
func SetupPublishers(cfg config.RabbitMQConfig, logger *slog.Logger) (Publishers, *amqp.Connection) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ disabled, domain events will not be published")
		return Publishers{}, nil
	}
	conn, err := ConnectRabbitMQ(cfg.URL, logger)
	if err != nil {
		logger.Error("RabbitMQ unavailable, continuing without events", slog.Any("error", err))
		return Publishers{}, nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create event publisher, continuing without events", slog.Any("error", err))
		_ = conn.Close()
		return Publishers{}, nil
	}
	return Publishers{Customer: publisher, Credit: publisher}, conn
}

// ConnectRedis returns nil without error when no address is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, rate limiting stays in process")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Redis client connected", "addr", cfg.Addr, "db", cfg.DB)
	return rdb, nil
}
