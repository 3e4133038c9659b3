/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests from the dashboard origins in config

ROUTE GROUPS:
  /api/jobs/*           Job records + applying a standard list
  /api/rentals/*        Rental records
  /api/inventory/*      Inventory records + availability
  /api/crew/*           Crew records + rest compliance + week plan
  /api/standard-lists/* Material kits
  /api/rest-report      Monthly compliance of internal crew
  /api/notifications/*  Dashboard alerts
  /api/scenarios/*      Demo scenarios
  /api/health           Liveness

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
			r.Get("/{id}", h.GetJob)
			r.Put("/{id}", h.UpdateJob)
			r.Delete("/{id}", h.DeleteJob)
			r.Post("/{id}/apply-list", h.ApplyStandardList)
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", h.ListRentals)
			r.Post("/", h.CreateRental)
			r.Get("/{id}", h.GetRental)
			r.Put("/{id}", h.UpdateRental)
			r.Delete("/{id}", h.DeleteRental)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.ListInventory)
			r.Post("/", h.CreateInventoryItem)
			r.Get("/{id}", h.GetInventoryItem)
			r.Put("/{id}", h.UpdateInventoryItem)
			r.Delete("/{id}", h.DeleteInventoryItem)
			r.Get("/{id}/availability", h.GetAvailability)
		})

		r.Route("/crew", func(r chi.Router) {
			r.Get("/", h.ListCrew)
			r.Post("/", h.CreateCrewMember)
			r.Get("/{id}", h.GetCrewMember)
			r.Put("/{id}", h.UpdateCrewMember)
			r.Delete("/{id}", h.DeleteCrewMember)
			r.Get("/{id}/rest", h.GetRestCompliance)
			r.Get("/{id}/plan", h.GetWeekPlan)
		})

		r.Route("/standard-lists", func(r chi.Router) {
			r.Get("/", h.ListStandardLists)
			r.Post("/", h.CreateStandardList)
			r.Get("/{id}", h.GetStandardList)
			r.Put("/{id}", h.UpdateStandardList)
			r.Delete("/{id}", h.DeleteStandardList)
		})

		r.Get("/rest-report", h.GetRestReport)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Production Back Office</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Production Back Office API</h1>
<ul>
<li><a href="/api/jobs">/api/jobs</a> - Jobs</li>
<li><a href="/api/inventory">/api/inventory</a> - Inventory</li>
<li><a href="/api/crew">/api/crew</a> - Crew</li>
<li><a href="/api/standard-lists">/api/standard-lists</a> - Material kits</li>
<li><a href="/api/rest-report">/api/rest-report</a> - Rest report (current month)</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
