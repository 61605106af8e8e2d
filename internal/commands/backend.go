package commands

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/finance-planner/internal/config"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/repositories"
	"github.com/sbilibin2017/finance-planner/internal/services"
	"github.com/segmentio/kafka-go"
)

// backend owns the connections behind the service layer.
type backend struct {
	db           *sqlx.DB
	rdb          *redis.Client
	kafkaWriter  *kafka.Writer
	profiles     *services.ProfileService
	transactions *services.TransactionService
}

// newBackend connects the database, the optional Redis cache and the optional Kafka writer,
// and wires repositories into services.
func newBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	db, err := repositories.Connect(ctx, cfg.DBDriver, cfg.DBDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return nil, err
	}
	b := &backend{db: db}

	var cache services.StatsCache
	if cfg.RedisAddr != "" {
		b.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := b.rdb.Ping(ctx).Err(); err != nil {
			b.close()
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		cache = repositories.NewStatsCacheRepository(b.rdb, cfg.StatsCacheTTL)
		logger.Log.Infow("stats cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.StatsCacheTTL)
	}

	var publisher services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		b.kafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		publisher = b.kafkaWriter
		logger.Log.Infow("transaction events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	profileReadRepo := repositories.NewProfileReadRepository(db, middlewares.GetTxFromContext)
	profileWriteRepo := repositories.NewProfileWriteRepository(db, middlewares.GetTxFromContext)
	transactionReadRepo := repositories.NewTransactionReadRepository(db, middlewares.GetTxFromContext)
	transactionWriteRepo := repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)

	b.profiles = services.NewProfileService(profileReadRepo, profileWriteRepo)
	b.transactions = services.NewTransactionService(b.profiles, transactionReadRepo, transactionWriteRepo, cache, publisher, middlewares.AfterCommit)

	return b, nil
}

type cliServices struct {
	*services.ProfileService
	*services.TransactionService
}

func (b *backend) cliServices() TransactionServices {
	return cliServices{ProfileService: b.profiles, TransactionService: b.transactions}
}

func (b *backend) close() {
	if b.kafkaWriter != nil {
		if err := b.kafkaWriter.Close(); err != nil {
			logger.Log.Errorw("failed to close kafka writer", "error", err)
		}
	}
	if b.rdb != nil {
		if err := b.rdb.Close(); err != nil {
			logger.Log.Errorw("failed to close redis client", "error", err)
		}
	}
	if err := b.db.Close(); err != nil {
		logger.Log.Errorw("failed to close database", "error", err)
	}
}
