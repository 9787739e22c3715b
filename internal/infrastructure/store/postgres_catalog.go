package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/catalog"
)

// PostgresCatalogStore implements catalog.Repository over the products
// table. Legacy attribute shapes normalize on scan via
// catalog.Attributes.UnmarshalJSON.
type PostgresCatalogStore struct {
	db *sql.DB
}

func NewPostgresCatalogStore(db *sql.DB) *PostgresCatalogStore {
	return &PostgresCatalogStore{db: db}
}

const productColumns = `id, name, slug, description, price, discount_price, stock,
	COALESCE(parent_id, ''), attributes, image, images, created_at, updated_at`

func (cs *PostgresCatalogStore) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	row := cs.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (cs *PostgresCatalogStore) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	row := cs.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

// List returns parent products only, newest first.
func (cs *PostgresCatalogStore) List(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := cs.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE parent_id IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Variants returns a parent's children in insertion order, which keeps
// variant selection deterministic when several candidates match.
func (cs *PostgresCatalogStore) Variants(ctx context.Context, parentID string) ([]*catalog.Product, error) {
	rows, err := cs.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE parent_id = $1 ORDER BY created_at, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (cs *PostgresCatalogStore) Upsert(ctx context.Context, p *catalog.Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return err
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}

	var parent any
	if p.ParentID != "" {
		parent = p.ParentID
	}
	var discount any
	if p.DiscountPrice != nil {
		discount = p.DiscountPrice.String()
	}

	_, err = cs.db.ExecContext(ctx, `
		INSERT INTO products (id, name, slug, description, price, discount_price, stock,
			parent_id, attributes, image, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			discount_price = EXCLUDED.discount_price,
			stock = EXCLUDED.stock,
			parent_id = EXCLUDED.parent_id,
			attributes = EXCLUDED.attributes,
			image = EXCLUDED.image,
			images = EXCLUDED.images,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Name, p.Slug, p.Description, p.Price.String(), discount, p.Stock,
		parent, attrs, p.Image, images, p.CreatedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p             catalog.Product
		price         string
		discountPrice sql.NullString
		attrsJSON     []byte
		imagesJSON    []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &price, &discountPrice,
		&p.Stock, &p.ParentID, &attrsJSON, &p.Image, &imagesJSON, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("bad price for product %s: %w", p.ID, err)
	}
	if discountPrice.Valid {
		d, err := decimal.NewFromString(discountPrice.String)
		if err != nil {
			return nil, fmt.Errorf("bad discount price for product %s: %w", p.ID, err)
		}
		p.DiscountPrice = &d
	}
	if len(attrsJSON) > 0 {
		if err := json.Unmarshal(attrsJSON, &p.Attributes); err != nil {
			// Malformed legacy attributes degrade to "no options".
			log.Printf("[CatalogStore] Dropping unparseable attributes for product %s: %v", p.ID, err)
			p.Attributes = nil
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			p.Images = nil
		}
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*catalog.Product, error) {
	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
