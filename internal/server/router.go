package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/buyers"
	"tnrsteel/internal/chat"
	"tnrsteel/internal/materials"
	"tnrsteel/internal/requests"
	salescontroller "tnrsteel/internal/sales/controller"
	"tnrsteel/internal/stock"
)

type Controllers struct {
	Sales     *salescontroller.SalesController
	Materials *materials.Controller
	Requests  *requests.Module
	Stock     *stock.Controller
	Buyers    *buyers.Controller
	Chat      *chat.Controller
}

func NewRouter(c Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))
	r.Use(auth.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/indirectsales", func(r chi.Router) {
			r.Post("/add", c.Sales.Checkout)
			r.Get("/", c.Sales.ListSales)
			r.Get("/{invoiceId}", c.Sales.GetSale)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Post("/", c.Materials.Add)
			r.Get("/", c.Materials.List)
			r.Get("/{id}", c.Materials.Get)
			r.Delete("/{id}", c.Materials.Remove)
		})

		r.Route("/materialrequest", func(r chi.Router) {
			r.Post("/", c.Requests.Material.Create)
			r.Get("/", c.Requests.Material.List)
			r.Patch("/{id}", c.Requests.Material.UpdateStatus)
			r.Delete("/{id}", c.Requests.Material.Delete)
		})

		r.Route("/productionrequest", func(r chi.Router) {
			r.Post("/", c.Requests.Production.Create)
			r.Get("/", c.Requests.Production.List)
			r.Patch("/{id}", c.Requests.Production.UpdateStatus)
			r.Delete("/{id}", c.Requests.Production.Delete)
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Post("/", c.Stock.Add)
			r.Get("/", c.Stock.List)
			r.Put("/issue", c.Stock.Issue)
			r.Get("/{id}", c.Stock.Get)
		})

		r.Route("/buyers", func(r chi.Router) {
			r.Post("/", c.Buyers.Add)
			r.Get("/", c.Buyers.List)
			r.Get("/{id}", c.Buyers.Get)
			r.Delete("/{id}", c.Buyers.Remove)
		})

		r.Post("/chat", c.Chat.Chat)
	})

	return r
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
