package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
)

// AuthHandlers expose the identity surface: register, login, refresh. The
// issued access token carries the viewer profile (professional flag and
// discount percent) so storefront reads can resolve prices without a
// profile lookup.
type AuthHandlers struct {
	accounts   auth.AccountRepository
	jwtService *auth.JWTService
}

func NewAuthHandlers(accounts auth.AccountRepository, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{accounts: accounts, jwtService: jwtService}
}

type authResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
	Account      *auth.Account `json:"account"`
}

func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string  `json:"email"`
		Password        string  `json:"password"`
		Name            string  `json:"name"`
		Professional    bool    `json:"professional"`
		DiscountPercent float64 `json:"discount_percent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	account := &auth.Account{
		ID:              uuid.New().String(),
		Email:           req.Email,
		PasswordHash:    hash,
		Name:            req.Name,
		Role:            auth.RoleCustomer,
		Professional:    req.Professional,
		DiscountPercent: decimal.NewFromFloat(req.DiscountPercent),
		CreatedAt:       time.Now(),
	}
	if err := h.accounts.Create(r.Context(), account); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.respondWithTokens(w, account)
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, auth.ErrAccountNotFound) || (err == nil && !auth.CheckPassword(req.Password, account.PasswordHash)) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.respondWithTokens(w, account)
}

func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	account, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	h.respondWithTokens(w, account)
}

// Me returns the current account, the concrete form of the identity
// collaborator's "{userId, profile} or null".
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	account, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *AuthHandlers) respondWithTokens(w http.ResponseWriter, account *auth.Account) {
	accessToken, expiresAt, err := h.jwtService.GenerateAccessToken(account)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	refreshToken, _, err := h.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, authResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Account:      account,
	})
}
