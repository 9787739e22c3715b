package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/auth"
)

// PostgresAccountStore implements auth.AccountRepository.
type PostgresAccountStore struct {
	db *sql.DB
}

func NewPostgresAccountStore(db *sql.DB) *PostgresAccountStore {
	return &PostgresAccountStore{db: db}
}

func (as *PostgresAccountStore) Create(ctx context.Context, a *auth.Account) error {
	_, err := as.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, professional, discount_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Email, a.PasswordHash, a.Name, a.Role, a.Professional, a.DiscountPercent.String(), a.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (as *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return as.scan(as.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, professional, discount_percent, created_at
		FROM users WHERE email = $1
	`, email))
}

func (as *PostgresAccountStore) GetByID(ctx context.Context, id string) (*auth.Account, error) {
	return as.scan(as.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, professional, discount_percent, created_at
		FROM users WHERE id = $1
	`, id))
}

func (as *PostgresAccountStore) scan(row rowScanner) (*auth.Account, error) {
	var (
		a   auth.Account
		pct string
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Professional, &pct, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	if a.DiscountPercent, err = decimal.NewFromString(pct); err != nil {
		return nil, fmt.Errorf("bad discount percent for account %s: %w", a.ID, err)
	}
	return &a, nil
}
