// Package web serves the storefront: catalog, cart drawer, checkout,
// favorites, orders, profile. Views read the session and cart stores and
// talk to the backend through the services wired in Deps.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Goga-Rid/pitza/internal/account"
	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/cart"
	"github.com/Goga-Rid/pitza/internal/catalog"
	"github.com/Goga-Rid/pitza/internal/checkout"
	"github.com/Goga-Rid/pitza/internal/favorites"
	"github.com/Goga-Rid/pitza/internal/orders"
	"github.com/Goga-Rid/pitza/internal/reviews"
	"github.com/Goga-Rid/pitza/internal/session"
)

type Deps struct {
	Session   *session.Store
	Cart      *cart.Store
	Catalog   *catalog.Service
	Favorites *favorites.Service
	Checkout  *checkout.Flow
	Orders    *orders.Service
	Reviews   *reviews.Service
	Account   *account.Service
	API       *backend.Client
	Timeout   time.Duration
}

type handlers struct {
	Deps
	templates *template.Template
}

func NewRouter(deps Deps) *chi.Mux {
	if deps.Timeout == 0 {
		deps.Timeout = 30 * time.Second
	}
	h := &handlers{Deps: deps, templates: parseTemplates()}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/", h.Home)
	r.Get("/products/{productID}", h.Product)

	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.CartDrawer)
		r.Post("/items", h.AddCartItem)
		r.Post("/items/{productID}/quantity", h.UpdateCartQuantity)
		r.Post("/items/{productID}/remove", h.RemoveCartItem)
		r.Post("/clear", h.ClearCart)
	})

	r.Post("/checkout", h.Checkout)
	r.Post("/checkout/address", h.CheckoutAddress)
	r.Post("/checkout/retry", h.CheckoutRetry)

	// Protected routes: rendered only for an authenticated session, and
	// never decided while session init is still resolving.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/favorites", h.FavoritesPage)
		r.Post("/favorites/{productID}/toggle", h.ToggleFavorite)
		r.Get("/profile", h.ProfilePage)
		r.Post("/profile", h.UpdateProfile)
		r.Post("/profile/password", h.ChangePassword)
		r.Get("/orders", h.OrdersPage)
		r.Get("/orders/{orderID}", h.OrderDetailsPage)
		r.Post("/products/{productID}/reviews", h.CreateReview)
	})

	return r
}

// Handler wraps the router with otel instrumentation for the server side.
func Handler(deps Deps) http.Handler {
	return otelhttp.NewHandler(NewRouter(deps), "storefront")
}
