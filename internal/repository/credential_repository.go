package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

// Combines all needed interfaces
type Queryable interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

type DB interface {
	Queryable
	Begin(ctx context.Context) (pgx.Tx, error)
}

type CredentialRepository struct {
	db DB
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: pool}
}

func (r *CredentialRepository) Create(ctx context.Context, credential *model.StoredCredential) error {
	// Initialize builder
	var (
		fields []string
		values []interface{}
		params []string
		pos    = 1 // PostgreSQL parameter position counter
	)

	fields = append(fields, "customer_id")
	values = append(values, credential.OwnerID)
	params = append(params, fmt.Sprintf("$%d", pos))
	pos++

	fields = append(fields, "token")
	values = append(values, credential.Token)
	params = append(params, fmt.Sprintf("$%d", pos))
	pos++

	fields = append(fields, "masked_card_number")
	values = append(values, credential.MaskedCardNumber)
	params = append(params, fmt.Sprintf("$%d", pos))
	pos++

	// Conditionally add optional fields
	if credential.CardType != "" {
		fields = append(fields, "card_type")
		values = append(values, credential.CardType)
		params = append(params, fmt.Sprintf("$%d", pos))
		pos++
	}

	// Build the query
	query := fmt.Sprintf(`
        INSERT INTO payment_methods (%s)
        VALUES (%s)
        RETURNING id, created_at`,
		strings.Join(fields, ", "),
		strings.Join(params, ", "),
	)

	err := r.db.QueryRow(ctx, query, values...).Scan(&credential.ID, &credential.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating stored credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.StoredCredential, error) {
	const rawsql = `
        SELECT id, customer_id, token, masked_card_number, card_type, created_at
        FROM payment_methods
        WHERE customer_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, rawsql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying credentials by owner: %w", err)
	}
	defer rows.Close()

	var credentials []model.StoredCredential
	for rows.Next() {
		var c model.StoredCredential
		if err := rows.Scan(
			&c.ID,
			&c.OwnerID,
			&c.Token,
			&c.MaskedCardNumber,
			&c.CardType,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning stored credential: %w", err)
		}
		credentials = append(credentials, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return credentials, nil
}

func (r *CredentialRepository) FindByToken(ctx context.Context, token string) (*model.StoredCredential, error) {
	const rawsql = `
        SELECT id, customer_id, token, masked_card_number, card_type, created_at
        FROM payment_methods WHERE token = $1`

	var c model.StoredCredential
	err := r.db.QueryRow(ctx, rawsql, token).Scan(
		&c.ID,
		&c.OwnerID,
		&c.Token,
		&c.MaskedCardNumber,
		&c.CardType,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting stored credential: %w", err)
	}
	return &c, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stored credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no matching stored credential found")
	}
	return nil
}

func (r *CredentialRepository) WithTransaction(ctx context.Context,
	fn func(*CredentialRepository) error,
) error {
	// Begin a transaction (default options)
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Create a transaction-scoped repository
	txRepo := &CredentialRepository{db: tx}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p) // Re-throw panic after cleanup
		}
	}()

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback failed: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
