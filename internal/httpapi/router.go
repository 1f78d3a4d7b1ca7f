// Package httpapi is the REST surface of the storefront backend.
package httpapi

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Cart    *CartHandler
	Order   *OrderHandler
	Product *ProductHandler
	User    *UserHandler
	Payment *PaymentHandler
}

// NewRouter assembles the API. Session state wraps everything; auth and admin
// guards are applied per route group.
func NewRouter(h Handlers, sessions *scs.SessionManager, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(sessions.LoadAndSave)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.User.Register)
			r.Post("/login", h.User.Login)
			r.Post("/logout", h.User.Logout)

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(sessions))
				r.Get("/profile", h.User.Profile)
				r.Put("/profile", h.User.UpdateProfile)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(sessions), RequireAdmin)
				r.Get("/", h.User.List)
				r.Get("/{user_id}", h.User.GetByID)
				r.Put("/{user_id}", h.User.Update)
				r.Delete("/{user_id}", h.User.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Post("/filter", h.Product.Filter)
			r.Get("/top", h.Product.TopRated)
			r.Get("/new", h.Product.Newest)
			r.Get("/{product_id}", h.Product.Get)

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(sessions))
				r.Post("/{product_id}/reviews", h.Product.AddReview)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(sessions), RequireAdmin)
				r.Get("/all", h.Product.ListAdmin)
				r.Post("/", h.Product.Create)
				r.Put("/{product_id}", h.Product.Update)
				r.Delete("/{product_id}", h.Product.Delete)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(RequireAuth(sessions))
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Put("/shipping-address", h.Cart.SetShippingAddress)
			r.Put("/payment-method", h.Cart.SetPaymentMethod)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(RequireAuth(sessions))
			r.Post("/", h.Order.PlaceOrder)
			r.Get("/mine", h.Order.ListMine)
			r.Get("/{order_id}", h.Order.GetOrder)
			r.Post("/{order_id}/gateway-order", h.Order.CreateGatewayOrder)
			r.Post("/{order_id}/pay", h.Order.ConfirmPayment)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/", h.Order.ListAll)
				r.Put("/{order_id}/deliver", h.Order.MarkDelivered)
			})
		})

		r.Get("/payments/config", h.Payment.Config)
	})

	return r
}
