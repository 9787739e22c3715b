package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront/internal/payment"
)

// PostgresSettingsStore keeps one row per payment provider with the typed
// configuration as JSONB. A provider with no row is simply disabled.
type PostgresSettingsStore struct {
	db *sql.DB
}

func NewPostgresSettingsStore(db *sql.DB) *PostgresSettingsStore {
	return &PostgresSettingsStore{db: db}
}

func (ss *PostgresSettingsStore) Load(ctx context.Context) (*payment.Settings, error) {
	rows, err := ss.db.QueryContext(ctx, `SELECT provider, settings FROM payment_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment settings: %w", err)
	}
	defer rows.Close()

	s := &payment.Settings{}
	for rows.Next() {
		var (
			provider string
			raw      []byte
		)
		if err := rows.Scan(&provider, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan payment settings: %w", err)
		}

		switch payment.Method(provider) {
		case payment.MethodCard:
			if err := json.Unmarshal(raw, &s.Card); err != nil {
				return nil, fmt.Errorf("bad card settings: %w", err)
			}
		case payment.MethodWallet:
			if err := json.Unmarshal(raw, &s.Wallet); err != nil {
				return nil, fmt.Errorf("bad wallet settings: %w", err)
			}
		case payment.MethodTransfer:
			if err := json.Unmarshal(raw, &s.Transfer); err != nil {
				return nil, fmt.Errorf("bad transfer settings: %w", err)
			}
		}
	}
	return s, rows.Err()
}

func (ss *PostgresSettingsStore) Save(ctx context.Context, s *payment.Settings) error {
	configs := map[payment.Method]any{
		payment.MethodCard:     s.Card,
		payment.MethodWallet:   s.Wallet,
		payment.MethodTransfer: s.Transfer,
	}

	for provider, cfg := range configs {
		raw, err := json.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = ss.db.ExecContext(ctx, `
			INSERT INTO payment_settings (provider, settings, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (provider) DO UPDATE SET
				settings = EXCLUDED.settings,
				updated_at = EXCLUDED.updated_at
		`, string(provider), raw, time.Now())
		if err != nil {
			return fmt.Errorf("failed to save %s settings: %w", provider, err)
		}
	}
	return nil
}
