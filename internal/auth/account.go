package auth

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/storefront/internal/domain/pricing"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is a registered shopper or administrator. Professional accounts
// carry a personal discount percentage that competes with catalog discounts
// at price resolution.
type Account struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	Name            string          `json:"name"`
	Role            string          `json:"role"`
	Professional    bool            `json:"professional"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Profile is the pricing view of the account.
func (a *Account) Profile() *pricing.Profile {
	return &pricing.Profile{
		Professional:    a.Professional,
		DiscountPercent: a.DiscountPercent,
	}
}

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
