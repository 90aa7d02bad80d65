package subscriberrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/diveplanner/internal/domain/subscription"
)

const schema = `
CREATE TABLE IF NOT EXISTS subscribers (
	id         BIGSERIAL PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	source     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresRepository persists subscribers in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the subscribers table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Create inserts the subscriber; an existing e-mail returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, email, source string) (subscription.Subscriber, bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscribers (email, source)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, source, created_at
	`, email, source)
	sub, err := scanSubscriber(row)
	if err == nil {
		return sub, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return subscription.Subscriber{}, false, err
	}
	row = r.pool.QueryRow(ctx, `
		SELECT id, email, source, created_at
		FROM subscribers
		WHERE email = $1
	`, email)
	sub, err = scanSubscriber(row)
	if err != nil {
		return subscription.Subscriber{}, false, err
	}
	return sub, false, nil
}

// Delete removes the subscriber by e-mail.
func (r *PostgresRepository) Delete(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE email = $1`, email)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanSubscriber(row pgx.Row) (subscription.Subscriber, error) {
	var sub subscription.Subscriber
	if err := row.Scan(&sub.ID, &sub.Email, &sub.Source, &sub.CreatedAt); err != nil {
		return subscription.Subscriber{}, err
	}
	return sub, nil
}

var _ subscription.Repository = (*PostgresRepository)(nil)
