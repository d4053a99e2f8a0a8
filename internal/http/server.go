package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/auth"
	"github.com/ghostshadow526/foodiesandstories/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server owns the HTTP surface: storefront routes, cart and checkout, and the
// admin back office behind RequireAdmin.
type Server struct {
	httpServer *http.Server
}

type ServerDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Catalog  *CatalogHandler
	Upload   *UploadHandler
	Auth     auth.Provider
	Metrics  *metrics.ServerMetrics
}

func NewServer(addr string, deps ServerDeps) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware(deps.Metrics))
	r.Use(AuthMiddleware(deps.Auth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", deps.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", deps.Catalog.ListProducts)
		r.Get("/products/featured", deps.Catalog.ListFeaturedProducts)
		r.Get("/products/{slug}", deps.Catalog.GetProduct)

		r.Get("/articles", deps.Catalog.ListArticles)
		r.Get("/articles/{slug}", deps.Catalog.GetArticle)
		r.Post("/articles/{id}/like", deps.Catalog.LikeArticle)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Get("/cart", deps.Cart.GetCart)
			r.Post("/cart/items", deps.Cart.AddItem)
			r.Put("/cart/items/{product_id}", deps.Cart.UpdateQuantity)
			r.Delete("/cart/items/{product_id}", deps.Cart.RemoveItem)
			r.Delete("/cart", deps.Cart.ClearCart)

			r.Post("/checkout", deps.Checkout.PlaceOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Get("/orders", deps.Orders.ListOrders)
			r.Get("/orders/{id}", deps.Orders.GetOrder)
			r.Put("/orders/{id}/status", deps.Orders.ChangeStatus)
			r.Delete("/orders/{id}", deps.Orders.DeleteOrder)
			r.Post("/orders/{id}/compliance-check", deps.Orders.CheckCompliance)

			r.Post("/products", deps.Catalog.CreateProduct)
			r.Put("/products/{id}", deps.Catalog.UpdateProduct)
			r.Put("/products/{id}/featured", deps.Catalog.SetFeatured)
			r.Delete("/products/{id}", deps.Catalog.DeleteProduct)

			r.Post("/articles", deps.Catalog.CreateArticle)
			r.Put("/articles/{id}", deps.Catalog.UpdateArticle)
			r.Delete("/articles/{id}", deps.Catalog.DeleteArticle)

			r.Post("/uploads", deps.Upload.Upload)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
