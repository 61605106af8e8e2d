package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=transaction.go -destination=transaction_mock.go -package=services

// ProfileResolver resolves a profile name to a stored profile.
type ProfileResolver interface {
	GetByName(ctx context.Context, name string) (*models.ProfileDB, error)    // Returns ErrProfileNotFound for unknown names
	LoadOrCreate(ctx context.Context, name string) (*models.ProfileDB, error) // Creates the profile when missing
}

// TransactionReader defines read-only operations for transactions.
type TransactionReader interface {
	GetByID(ctx context.Context, transactionID string) (*models.Transaction, error)
	ListByProfileID(ctx context.Context, profileID string) ([]models.Transaction, error)
	GetStatsByProfileID(ctx context.Context, profileID string) (*models.TransactionStats, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	Save(ctx context.Context, t models.Transaction, createdAt int64) error
	Update(ctx context.Context, t models.Transaction) error
}

// StatsCache caches per-profile stats.
type StatsCache interface {
	GetStats(ctx context.Context, profileID string) (*models.TransactionStats, error)
	SetStats(ctx context.Context, profileID string, stats models.TransactionStats) error
	DeleteStats(ctx context.Context, profileID string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AfterCommitFunc schedules fn to run once the write transaction carried by ctx has committed.
type AfterCommitFunc func(ctx context.Context, fn func())

// TransactionService handles transaction operations, the stats cache and event publishing.
// cache, kafkaWriter and afterCommit are optional; a nil afterCommit runs side effects inline.
type TransactionService struct {
	profiles    ProfileResolver
	reader      TransactionReader
	writer      TransactionWriter
	cache       StatsCache
	kafkaWriter KafkaWriter
	afterCommit AfterCommitFunc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	profiles ProfileResolver,
	reader TransactionReader,
	writer TransactionWriter,
	cache StatsCache,
	kafkaWriter KafkaWriter,
	afterCommit AfterCommitFunc,
) *TransactionService {
	if afterCommit == nil {
		afterCommit = func(_ context.Context, fn func()) { fn() }
	}
	return &TransactionService{
		profiles:    profiles,
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		afterCommit: afterCommit,
	}
}

// ListTransactions returns all transactions of the profile, creating the profile when missing.
func (s *TransactionService) ListTransactions(ctx context.Context, profileName string) ([]models.Transaction, error) {
	profile, err := s.profiles.LoadOrCreate(ctx, profileName)
	if err != nil {
		return nil, err
	}

	transactions, err := s.reader.ListByProfileID(ctx, profile.ProfileID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "profile", profileName, "error", err)
		return nil, err
	}
	return transactions, nil
}

// AddTransaction validates and stores a new transaction for the profile.
func (s *TransactionService) AddTransaction(ctx context.Context, profileName, label string, amount int64, tags []string) (*models.Transaction, error) {
	if err := validateTransaction(label, amount, tags); err != nil {
		return nil, err
	}

	profile, err := s.profiles.LoadOrCreate(ctx, profileName)
	if err != nil {
		return nil, err
	}

	t := models.Transaction{
		TransactionID: "tra:" + uuid.NewString(),
		ProfileID:     profile.ProfileID,
		Label:         label,
		Amount:        amount,
		Tags:          uniqueTags(tags),
	}

	if err := s.writer.Save(ctx, t, time.Now().UnixNano()); err != nil {
		logger.Log.Errorw("failed to save transaction", "profile", profileName, "label", label, "amount", amount, "error", err)
		return nil, err
	}

	s.afterCommit(ctx, func() {
		s.invalidateStats(ctx, profile.ProfileID)
		s.publishTransaction(ctx, models.EventTransactionCreated, t)
	})

	return &t, nil
}

// UpdateTransaction changes the non-zero fields of upd on a transaction owned by the profile.
func (s *TransactionService) UpdateTransaction(ctx context.Context, profileName, transactionID string, upd models.TransactionUpdate) (*models.Transaction, error) {
	profile, err := s.profiles.GetByName(ctx, profileName)
	if err != nil {
		return nil, err
	}

	t, err := s.reader.GetByID(ctx, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to load transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}
	if t.ProfileID != profile.ProfileID {
		logger.Log.Warnw("transaction belongs to another profile", "transaction_id", transactionID, "profile", profileName)
		return nil, ErrTransactionNotFound
	}

	if upd.Label != "" {
		t.Label = upd.Label
	}
	if upd.Amount != 0 {
		t.Amount = upd.Amount
	}
	if len(upd.Tags) > 0 {
		t.Tags = upd.Tags
	}

	if err := validateTransaction(t.Label, t.Amount, t.Tags); err != nil {
		return nil, err
	}
	t.Tags = uniqueTags(t.Tags)

	if err := s.writer.Update(ctx, *t); err != nil {
		logger.Log.Errorw("failed to update transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	updated := *t
	s.afterCommit(ctx, func() {
		s.invalidateStats(ctx, profile.ProfileID)
		s.publishTransaction(ctx, models.EventTransactionUpdated, updated)
	})

	return t, nil
}

// GetStats returns the profile stats, served from the cache when possible.
func (s *TransactionService) GetStats(ctx context.Context, profileName string) (*models.TransactionStats, error) {
	profile, err := s.profiles.LoadOrCreate(ctx, profileName)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		stats, err := s.cache.GetStats(ctx, profile.ProfileID)
		if err == nil {
			return stats, nil
		}
	}

	stats, err := s.reader.GetStatsByProfileID(ctx, profile.ProfileID)
	if err != nil {
		logger.Log.Errorw("failed to compute stats", "profile", profileName, "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, profile.ProfileID, *stats); err != nil {
			logger.Log.Errorw("failed to cache stats", "profile_id", profile.ProfileID, "error", err)
		}
	}

	return stats, nil
}

func (s *TransactionService) invalidateStats(ctx context.Context, profileID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteStats(ctx, profileID); err != nil {
		logger.Log.Errorw("failed to invalidate cached stats", "profile_id", profileID, "error", err)
	}
}

// publishTransaction publishes a transaction event to Kafka.
func (s *TransactionService) publishTransaction(ctx context.Context, event string, t models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", t.TransactionID)
		return
	}

	data, err := json.Marshal(models.TransactionEvent{
		Event:         event,
		TransactionID: t.TransactionID,
		ProfileID:     t.ProfileID,
		Label:         t.Label,
		Amount:        t.Amount,
		Tags:          t.Tags,
		Timestamp:     time.Now().Unix(),
	})
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event", "transaction_id", t.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(t.ProfileID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event", "transaction_id", t.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction event published", "event", event, "transaction_id", t.TransactionID)
	}
}

func validateTransaction(label string, amount int64, tags []string) error {
	if label == "" {
		return ErrInvalidLabel
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	for i, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w: transaction tag [%d] must not be empty", ErrInvalidTag, i)
		}
	}
	return nil
}

// uniqueTags drops repeated tags, keeping first occurrences in order.
func uniqueTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res
}
