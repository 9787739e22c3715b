package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. A record with a non-empty ParentID is a
// variant of the referenced parent and carries the specific option
// combination it represents; a parentless record advertises the selectable
// option axes for all of its variants.
//
// Stock may be zero or negative, meaning "order on demand". Placing an order
// never decrements it; fulfillment reconciles stock manually.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Stock         int              `json:"stock"`
	ParentID      string           `json:"parent_id,omitempty"`
	Attributes    Attributes       `json:"attributes,omitempty"`
	Image         string           `json:"image,omitempty"`
	Images        []string         `json:"images,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (p *Product) IsVariant() bool {
	return p.ParentID != ""
}

// Repository is the catalog slice of the relational data service.
// Implementations must return variants in insertion order so that variant
// selection stays deterministic.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Variants(ctx context.Context, parentID string) ([]*Product, error)
	Upsert(ctx context.Context, p *Product) error
}
