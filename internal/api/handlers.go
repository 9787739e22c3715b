package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/checkout"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/pricing"
	"github.com/example/storefront/internal/payment"
)

type Handlers struct {
	catalog   catalog.Repository
	carts     *cart.Service
	orders    order.Repository
	directory *payment.Directory
	checkout  *checkout.Orchestrator
}

func NewHandlers(
	cat catalog.Repository,
	carts *cart.Service,
	orders order.Repository,
	directory *payment.Directory,
	orchestrator *checkout.Orchestrator,
) *Handlers {
	return &Handlers{
		catalog:   cat,
		carts:     carts,
		orders:    orders,
		directory: directory,
		checkout:  orchestrator,
	}
}

// productView is a catalog entry with the price resolved for the viewer.
type productView struct {
	*catalog.Product
	PriceFacts pricing.Facts `json:"price_facts"`
}

// productDetail adds variants and the merged option axes.
type productDetail struct {
	productView
	Variants []productView      `json:"variants,omitempty"`
	Options  catalog.Attributes `json:"options,omitempty"`
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetProfile(r.Context())

	products, err := h.catalog.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, PriceFacts: pricing.Resolve(p, viewer)})
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetProfile(r.Context())
	key := extractPathParam(r.URL.Path, "/products/")

	p, err := h.catalog.GetBySlug(r.Context(), key)
	if errors.Is(err, catalog.ErrProductNotFound) {
		p, err = h.catalog.GetByID(r.Context(), key)
	}
	if errors.Is(err, catalog.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	variants, err := h.catalog.Variants(r.Context(), p.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	detail := productDetail{
		productView: productView{Product: p, PriceFacts: pricing.Resolve(p, viewer)},
		Options:     catalog.AvailableOptions(p, variants),
	}
	for _, v := range variants {
		detail.Variants = append(detail.Variants, productView{Product: v, PriceFacts: pricing.Resolve(v, viewer)})
	}
	respondJSON(w, http.StatusOK, detail)
}

// UpsertProduct is the minimal back-office write path (admin only).
func (h *Handlers) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
		p.CreatedAt = time.Now()
	}

	if err := h.catalog.Upsert(r.Context(), &p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, &p)
}

// Cart Handlers

// cartView is the cart plus its derived totals, recomputed on every read.
type cartView struct {
	*cart.Cart
	TotalItems    int             `json:"total_items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalOriginal decimal.Decimal `json:"total_original"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	NetTotal      decimal.Decimal `json:"net_total"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

func newCartView(c *cart.Cart) cartView {
	return cartView{
		Cart:          c,
		TotalItems:    c.TotalItems(),
		TotalPrice:    c.TotalPrice(),
		TotalOriginal: c.TotalOriginal(),
		TotalSavings:  c.TotalSavings(),
		NetTotal:      c.NetTotal(),
		VATAmount:     c.VATAmount(),
	}
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), getShopperID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string            `json:"product_id"`
		Quantity  int               `json:"quantity"`
		Options   map[string]string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.carts.AddItem(r.Context(), getShopperID(r), req.ProductID, req.Quantity,
		catalog.Selection(req.Options), middleware.GetProfile(r.Context()))
	if errors.Is(err, catalog.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, cart.ErrInvalidProduct) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.carts.SetQuantity(r.Context(), getShopperID(r), productID, req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	c, err := h.carts.RemoveItem(r.Context(), getShopperID(r), productID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newCartView(c))
}

// Payment Handlers

func (h *Handlers) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.directory.ActiveMethods(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		Methods []payment.Info `json:"methods"`
		Default payment.Method `json:"default,omitempty"`
	}{Methods: methods}
	if len(methods) > 0 {
		resp.Default = methods[0].ID
	}
	respondJSON(w, http.StatusOK, resp)
}

// Checkout Handlers

func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		checkout.CustomerDetails
		Method payment.Method `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.checkout.Submit(r.Context(), getShopperID(r), req.CustomerDetails, req.Method)
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, result)
	case errors.Is(err, checkout.ErrPaymentSession):
		// The PENDING order exists; the shopper must see a retryable
		// failure, not "no order happened".
		log.Printf("[API] Payment session failed for order %s: %v", result.Order.ID, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{
			"error":    "payment could not be started, please retry",
			"order_id": result.Order.ID,
		})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidDetails),
		errors.Is(err, checkout.ErrMethodUnavailable),
		errors.Is(err, order.ErrZeroTotal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[API] Checkout failed: %v", err)
		http.Error(w, "order could not be placed, please retry", http.StatusInternalServerError)
	}
}

// CheckoutReturn handles the shopper coming back from a gateway redirect.
func (h *Handlers) CheckoutReturn(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	success := r.URL.Query().Get("status") == "success"

	ord, err := h.checkout.ConfirmReturn(r.Context(), getShopperID(r), orderID, success)
	if errors.Is(err, order.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": ord, "paid": success})
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")

	ord, err := h.orders.GetByID(r.Context(), id)
	if errors.Is(err, order.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Shoppers can only read their own orders; admins can read all.
	if ord.UserID != middleware.GetUserID(r.Context()) && !isAdmin(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, ord)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// getShopperID identifies the cart owner: the authenticated user, or the
// anonymous session id supplied by the client.
func getShopperID(r *http.Request) string {
	if userID := middleware.GetUserID(r.Context()); userID != "" {
		return userID
	}
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		return sessionID
	}
	return "guest"
}

func isAdmin(r *http.Request) bool {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return false
	}
	return claims.Role == "admin"
}
