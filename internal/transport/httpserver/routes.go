package httpserver

import (
	"net/http"
	"time"

	"fintrack/internal/transport/httpserver/handler"
	authmw "fintrack/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers, auth *authmw.JWTAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:3000"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Post("/auth/signup", handlers.Auth.Signup)
		r.Post("/auth/login", handlers.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Auth.Me)

			r.Get("/transactions", handlers.Transactions.ListTransactions)
			r.Post("/transactions", handlers.Transactions.CreateTransaction)
			r.Put("/transactions/{id}", handlers.Transactions.UpdateTransaction)
			r.Delete("/transactions/{id}", handlers.Transactions.DeleteTransaction)
			r.Get("/transactions/categories", handlers.Transactions.ListCategoriesWithUsage)

			r.Get("/categories", handlers.Transactions.ListCategories)
			r.Post("/categories", handlers.Transactions.CreateCategory)
			r.Delete("/categories/{id}", handlers.Transactions.DeleteCategory)

			r.Get("/analytics/overview", handlers.Analytics.Overview)
			r.Get("/analytics/categories", handlers.Analytics.Categories)
			r.Get("/analytics/trends", handlers.Analytics.Trends)
			r.Get("/analytics/insights", handlers.Analytics.Insights)
			r.Get("/analytics/health-score", handlers.Analytics.HealthScore)

			r.Get("/reports/monthly", handlers.Analytics.MonthlyReport)
		})
	})

	return r
}
