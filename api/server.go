/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/inventory/*      Stock snapshots and expiring stock
  /api/forecast/*       Per-ingredient demand forecasts
  /api/reports/*        Waste, risk, reorder, cost, viability reports
  /api/simulate         What-if scenario runs
  /api/ledger/*         Row ingestion (purchases, usage, sales, shipments)
  /api/scenarios/*      Demo scenarios
  /*                    Static files (frontend)

STATIC FILE SERVING:
  In production, serves the built React app from web/dist/.
  Falls back to index.html for client-side routing.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Inventory routes
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.GetInventory)
			r.Get("/expiring", h.GetExpiringStock)
		})

		// Forecast routes
		r.Route("/forecast", func(r chi.Router) {
			r.Get("/{ingredient}", h.GetForecast)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/waste", h.GetWasteReport)
			r.Get("/risks", h.GetRiskReport)
			r.Get("/reorders", h.GetReorderReport)
			r.Get("/costs", h.GetCostReport)
			r.Get("/viability", h.GetMenuViability)
			r.Get("/trends", h.GetUsageTrends)
			r.Get("/suppliers", h.GetSupplierReport)
			r.Get("/suppliers/delayed", h.GetDelayedShipments)
		})

		// Simulation routes
		r.Post("/simulate", h.RunSimulation)

		// Ledger ingestion routes
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/purchases", h.AppendPurchases)
			r.Post("/usage", h.AppendUsage)
			r.Post("/sales", h.AppendSales)
			r.Post("/shipments", h.AppendShipments)
			r.Put("/master", h.ReplaceMaster)
		})

		// Recipe routes
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.GetRecipes)
			r.Put("/", h.ReplaceRecipes)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetStore)
		})
	})

	// Serve static files (React app)
	// First try ./web/dist (development), then fall back to message
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		// Try relative to executable
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			fullPath := filepath.Join(staticDir, path)

			// Check if file exists
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Inventory Analytics Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Inventory Analytics Engine API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/inventory">/api/inventory</a> - Current stock levels</li>
<li><a href="/api/reports/waste">/api/reports/waste</a> - Waste analysis</li>
<li><a href="/api/reports/risks">/api/reports/risks</a> - Risk alerts</li>
<li><a href="/api/reports/reorders">/api/reports/reorders</a> - Reorder recommendations</li>
<li><a href="/api/reports/viability">/api/reports/viability</a> - Menu viability</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
