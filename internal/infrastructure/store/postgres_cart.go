package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/storefront/internal/domain/cart"
)

// PostgresCartStore keeps one row per cart slot with the lines as JSONB,
// mirroring the single durable "cart" slot each shopper owns. Corrupt
// stored state degrades to an empty cart instead of an error.
type PostgresCartStore struct {
	db *sql.DB
}

func NewPostgresCartStore(db *sql.DB) *PostgresCartStore {
	return &PostgresCartStore{db: db}
}

func (cs *PostgresCartStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	c := &cart.Cart{ID: cartID}

	var itemsJSON []byte
	err := cs.db.QueryRowContext(ctx,
		`SELECT user_id, items, updated_at FROM carts WHERE id = $1`, cartID,
	).Scan(&c.UserID, &itemsJSON, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &c.Lines); err != nil {
			log.Printf("[CartStore] Corrupt cart state for %s, starting empty: %v", cartID, err)
			c.Lines = nil
		}
	}
	return c, nil
}

func (cs *PostgresCartStore) Save(ctx context.Context, c *cart.Cart) error {
	itemsJSON, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}

	_, err = cs.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, items, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			items = EXCLUDED.items,
			updated_at = EXCLUDED.updated_at
	`, c.ID, c.UserID, itemsJSON, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", c.ID, err)
	}
	return nil
}

func (cs *PostgresCartStore) Delete(ctx context.Context, cartID string) error {
	_, err := cs.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}
