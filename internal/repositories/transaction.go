package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns a single transaction with its tags or sql.ErrNoRows.
func (r *TransactionReadRepository) GetByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	query := r.db.Rebind(`
		SELECT id, profile_id, label, amount, created_at
		FROM transactions
		WHERE id = ?
	`)

	ex := executor(ctx, r.db, r.txGetter)

	var row models.TransactionDB
	err := sqlx.GetContext(ctx, ex, &row, query, transactionID)

	logQuery(query, []any{transactionID}, row, err)

	if err != nil {
		return nil, err
	}

	tags, err := r.tagsByTransactionID(ctx, ex, []string{row.TransactionID})
	if err != nil {
		return nil, err
	}

	t := toTransaction(row, tags[row.TransactionID])
	return &t, nil
}

// ListByProfileID returns all transactions of a profile in creation order.
func (r *TransactionReadRepository) ListByProfileID(ctx context.Context, profileID string) ([]models.Transaction, error) {
	query := r.db.Rebind(`
		SELECT id, profile_id, label, amount, created_at
		FROM transactions
		WHERE profile_id = ?
		ORDER BY created_at, id
	`)

	ex := executor(ctx, r.db, r.txGetter)

	var rows []models.TransactionDB
	err := sqlx.SelectContext(ctx, ex, &rows, query, profileID)

	logQuery(query, []any{profileID}, len(rows), err)

	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.TransactionID
	}

	tags, err := r.tagsByTransactionID(ctx, ex, ids)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = toTransaction(row, tags[row.TransactionID])
	}
	return transactions, nil
}

// GetStatsByProfileID aggregates the transactions of a profile in the database.
func (r *TransactionReadRepository) GetStatsByProfileID(ctx context.Context, profileID string) (*models.TransactionStats, error) {
	query := r.db.Rebind(`
		SELECT
			CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS sum,
			CAST(COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS BIGINT) AS in_sum,
			CAST(COALESCE(SUM(CASE WHEN amount <= 0 THEN amount ELSE 0 END), 0) AS BIGINT) AS out_sum,
			COUNT(*) AS count
		FROM transactions
		WHERE profile_id = ?
	`)

	var stats models.TransactionStats
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &stats, query, profileID)

	logQuery(query, []any{profileID}, stats, err)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// tagsByTransactionID loads the tags of many transactions with a single query.
func (r *TransactionReadRepository) tagsByTransactionID(ctx context.Context, ex sqlx.ExtContext, ids []string) (map[string][]string, error) {
	res := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(`
		SELECT transaction_id, tag
		FROM transaction_tags
		WHERE transaction_id IN (?)
		ORDER BY transaction_id, position
	`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []models.TransactionTagDB
	err = sqlx.SelectContext(ctx, ex, &rows, query, args...)

	logQuery(query, args, len(rows), err)

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		res[row.TransactionID] = append(res[row.TransactionID], row.Tag)
	}
	return res, nil
}

func toTransaction(row models.TransactionDB, tags []string) models.Transaction {
	if tags == nil {
		tags = []string{}
	}
	return models.Transaction{
		TransactionID: row.TransactionID,
		ProfileID:     row.ProfileID,
		Label:         row.Label,
		Amount:        row.Amount,
		Tags:          tags,
	}
}

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new transaction row and its tags.
func (r *TransactionWriteRepository) Save(ctx context.Context, t models.Transaction, createdAt int64) error {
	query := r.db.Rebind(`
		INSERT INTO transactions (id, profile_id, label, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	args := []any{t.TransactionID, t.ProfileID, t.Label, t.Amount, createdAt}

	ex := executor(ctx, r.db, r.txGetter)

	_, err := ex.ExecContext(ctx, query, args...)

	logQuery(query, args, t.TransactionID, err)

	if err != nil {
		return err
	}

	return r.insertTags(ctx, ex, t.TransactionID, t.Tags)
}

// Update overwrites label and amount and replaces all tags of the transaction.
func (r *TransactionWriteRepository) Update(ctx context.Context, t models.Transaction) error {
	query := r.db.Rebind(`
		UPDATE transactions
		SET label = ?, amount = ?
		WHERE id = ? AND profile_id = ?
	`)
	args := []any{t.Label, t.Amount, t.TransactionID, t.ProfileID}

	ex := executor(ctx, r.db, r.txGetter)

	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}

	deleteQuery := r.db.Rebind(`DELETE FROM transaction_tags WHERE transaction_id = ?`)
	_, err = ex.ExecContext(ctx, deleteQuery, t.TransactionID)

	logQuery(deleteQuery, []any{t.TransactionID}, nil, err)

	if err != nil {
		return err
	}

	return r.insertTags(ctx, ex, t.TransactionID, t.Tags)
}

func (r *TransactionWriteRepository) insertTags(ctx context.Context, ex sqlx.ExtContext, transactionID string, tags []string) error {
	query := r.db.Rebind(`
		INSERT INTO transaction_tags (transaction_id, tag, position)
		VALUES (?, ?, ?)
	`)

	for i, tag := range tags {
		args := []any{transactionID, tag, i}
		_, err := ex.ExecContext(ctx, query, args...)

		logQuery(query, args, nil, err)

		if err != nil {
			return err
		}
	}
	return nil
}
