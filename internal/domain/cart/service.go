package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/pricing"
)

var ErrInvalidProduct = errors.New("product_id is required")

// Repository persists one cart per slot. Load must return an empty cart
// (not an error) when the slot is missing or holds unparseable state.
type Repository interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, cartID string) error
}

// Service mutates a shopper's cart and persists it after every mutation.
// The unit price written into a line is resolved here, once, at add time.
type Service struct {
	carts   Repository
	catalog catalog.Repository
}

func NewService(carts Repository, cat catalog.Repository) *Service {
	return &Service{carts: carts, catalog: cat}
}

// Get loads the shopper's cart, rehydrating an empty one if nothing usable
// is stored.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.carts.Load(ctx, GetCartID(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	c.ID = GetCartID(userID)
	c.UserID = userID
	return c, nil
}

// AddItem resolves the concrete purchasable item (a variant when the
// selection pins one down, the parent otherwise), resolves its price for
// the viewer and merges it into the cart.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int, sel catalog.Selection, viewer *pricing.Profile) (*Cart, error) {
	if productID == "" {
		return nil, ErrInvalidProduct
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.catalog.Variants(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	item := catalog.ResolveItem(product, variants, sel)
	facts := pricing.Resolve(item, viewer)

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Add(Line{
		ProductID:         item.ID,
		Name:              product.Name,
		UnitPrice:         facts.FinalPrice,
		OriginalUnitPrice: facts.OriginalPrice,
		Options:           sel.Label(catalog.AvailableOptions(product, variants)),
	}, quantity)

	return c, s.save(ctx, c)
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	return c, s.save(ctx, c)
}

// SetQuantity updates a line's quantity; values below 1 leave it untouched.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	return c, s.save(ctx, c)
}

// Clear empties and persists the cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	c.Clear()
	return s.save(ctx, c)
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now()
	if err := s.carts.Save(ctx, c); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
