package routes

import (
	"net/http"

	"github.com/e-n-s-o/enso/internal/handlers"
	appmw "github.com/e-n-s-o/enso/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Post("/auth/register", handlers.RegisterHandler)
	r.Post("/auth/login", handlers.LoginHandler)
	r.With(appmw.Authenticated).Get("/auth/me", handlers.MeHandler)

	// Public catalog
	r.Get("/cards", handlers.GetCardsHandler)
	r.Get("/cards/facets", handlers.CardFacetsHandler)
	r.Get("/cards/{id}", handlers.GetCardHandler)
	r.Get("/compare", handlers.CompareHandler)

	// Authed dashboard
	r.Group(func(r chi.Router) {
		r.Use(appmw.Authenticated)

		r.Get("/dashboard/summary", handlers.DashboardHandler)

		r.Get("/portfolio", handlers.ListMyCardsHandler)
		r.Post("/portfolio", handlers.AddMyCardHandler)
		r.Patch("/portfolio/{id}", handlers.UpdateMyCardHandler)
		r.Delete("/portfolio/{id}", handlers.RemoveMyCardHandler)

		r.Get("/rewards", handlers.ListRewardsHandler)
		r.Post("/rewards", handlers.LogRewardHandler)
		r.Delete("/rewards/{id}", handlers.DeleteRewardHandler)
	})

	// Admin back-office
	r.Group(func(r chi.Router) {
		r.Use(appmw.Authenticated, appmw.RequireAdmin)

		r.Get("/admin/cards", handlers.AdminListCardsHandler)
		r.Post("/admin/cards", handlers.AdminCreateCardHandler)
		r.Get("/admin/cards/{id}", handlers.AdminGetCardHandler)
		r.Put("/admin/cards/{id}", handlers.AdminUpdateCardHandler)
		r.Delete("/admin/cards/{id}", handlers.AdminDeleteCardHandler)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
