package api

import (
	"net/http"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	optional := middleware.OptionalAuthMiddleware(cfg.JWTService)
	required := middleware.AuthMiddleware(cfg.JWTService)
	admin := func(h http.Handler) http.Handler {
		return required(middleware.RequireRole(auth.RoleAdmin)(h))
	}

	// Auth
	mux.HandleFunc("/auth/register", methodHandler(http.MethodPost, cfg.AuthHandlers.Register))
	mux.HandleFunc("/auth/login", methodHandler(http.MethodPost, cfg.AuthHandlers.Login))
	mux.HandleFunc("/auth/refresh", methodHandler(http.MethodPost, cfg.AuthHandlers.Refresh))
	mux.Handle("/auth/me", required(methodHandler(http.MethodGet, cfg.AuthHandlers.Me)))

	// Products: public reads price against the optional viewer profile,
	// writes are the admin back-office path.
	mux.Handle("/products", optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Handlers.GetProducts(w, r)
		case http.MethodPost:
			admin(http.HandlerFunc(cfg.Handlers.UpsertProduct)).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/products/", optional(methodHandler(http.MethodGet, cfg.Handlers.GetProduct)))

	// Cart
	mux.Handle("/cart", optional(methodHandler(http.MethodGet, cfg.Handlers.GetCart)))
	mux.Handle("/cart/items", optional(methodHandler(http.MethodPost, cfg.Handlers.AddToCart)))
	mux.Handle("/cart/items/", optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			cfg.Handlers.UpdateCartItem(w, r)
		case http.MethodDelete:
			cfg.Handlers.RemoveFromCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Payment methods
	mux.Handle("/payment/methods", optional(methodHandler(http.MethodGet, cfg.Handlers.GetPaymentMethods)))

	// Checkout
	mux.Handle("/checkout", optional(methodHandler(http.MethodPost, cfg.Handlers.SubmitOrder)))
	mux.Handle("/checkout/return", optional(methodHandler(http.MethodGet, cfg.Handlers.CheckoutReturn)))

	// Orders
	mux.Handle("/orders", required(methodHandler(http.MethodGet, cfg.Handlers.GetOrders)))
	mux.Handle("/orders/", required(methodHandler(http.MethodGet, cfg.Handlers.GetOrder)))

	return withLogging(mux)
}

func methodHandler(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		println("[API]", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
