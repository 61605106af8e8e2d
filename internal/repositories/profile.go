package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

// ProfileReadRepository handles profile read operations
type ProfileReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewProfileReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProfileReadRepository {
	return &ProfileReadRepository{db: db, txGetter: txGetter}
}

// GetByName returns the profile with the given name or sql.ErrNoRows.
func (r *ProfileReadRepository) GetByName(ctx context.Context, name string) (*models.ProfileDB, error) {
	query := r.db.Rebind(`SELECT id, name FROM profiles WHERE name = ?`)

	var profile models.ProfileDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &profile, query, name)

	logQuery(query, []any{name}, profile, err)

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileWriteRepository handles profile write operations
type ProfileWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewProfileWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProfileWriteRepository {
	return &ProfileWriteRepository{db: db, txGetter: txGetter}
}

// SaveIfAbsent inserts the profile unless one with the same name already exists.
func (r *ProfileWriteRepository) SaveIfAbsent(ctx context.Context, profileID, name string) error {
	query := r.db.Rebind(`
		INSERT INTO profiles (id, name)
		VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING
	`)
	args := []any{profileID, name}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	return err
}
