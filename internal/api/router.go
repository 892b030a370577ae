package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/sirtis/backoffice/internal/api/handlers"
	mw "github.com/sirtis/backoffice/internal/api/middleware"
	"github.com/sirtis/backoffice/internal/api/ws"
)

type Dependencies struct {
	HMACSecret []byte

	RateLimitRPS   float64
	RateLimitBurst int

	AuthHandler       *handlers.AuthHandler
	NodesHandler      *handlers.NodesHandler
	ResourcesHandler  *handlers.ResourcesHandler
	DocumentsHandler  *handlers.DocumentsHandler
	CasesHandler      *handlers.CasesHandler
	RisksHandler      *handlers.RisksHandler
	LeaveHandler      *handlers.LeaveHandler
	AppraisalsHandler *handlers.AppraisalsHandler
	AdminUsersHandler *handlers.AdminUsersHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	Hub               *ws.Hub
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", dep.AuthHandler.Login)
			ar.Post("/logout", dep.AuthHandler.Logout)
		})

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			// Work breakdown structure
			protected.Route("/wbs", func(wr chi.Router) {
				wr.Get("/nodes", dep.NodesHandler.List)
				wr.Post("/nodes", dep.NodesHandler.Create)
				wr.Get("/nodes/{id}", dep.NodesHandler.Get)
				wr.Put("/nodes/{id}", dep.NodesHandler.Update)
				wr.Delete("/nodes/{id}", dep.NodesHandler.Delete)
				wr.Post("/nodes/{id}/dependencies/{dep}", dep.NodesHandler.AddDependency)
				wr.Delete("/nodes/{id}/dependencies/{dep}", dep.NodesHandler.RemoveDependency)
				wr.Post("/nodes/{id}/toggle-expand", dep.NodesHandler.ToggleExpand)
				wr.Post("/nodes/{id}/toggle-select", dep.NodesHandler.ToggleSelect)
				wr.Get("/rows", dep.NodesHandler.Rows)
				wr.Get("/gantt", dep.NodesHandler.Gantt)
			})

			// Resources
			protected.Route("/resources", func(rr chi.Router) {
				rr.Get("/", dep.ResourcesHandler.List)
				rr.Post("/", dep.ResourcesHandler.Create)
				rr.Get("/{id}", dep.ResourcesHandler.Get)
				rr.Put("/{id}", dep.ResourcesHandler.Update)
				rr.Delete("/{id}", dep.ResourcesHandler.Delete)
			})

			// Document library
			protected.Route("/documents", func(dr chi.Router) {
				dr.Get("/", dep.DocumentsHandler.List)
				dr.Post("/", dep.DocumentsHandler.Create)
				dr.Get("/export", dep.DocumentsHandler.Export)
				dr.Get("/{id}", dep.DocumentsHandler.Get)
				dr.Put("/{id}", dep.DocumentsHandler.Update)
				dr.Delete("/{id}", dep.DocumentsHandler.Delete)
			})

			// Call-centre cases
			protected.Route("/cases", func(cr chi.Router) {
				cr.Get("/", dep.CasesHandler.List)
				cr.Post("/", dep.CasesHandler.Create)
				cr.Get("/export", dep.CasesHandler.Export)
				cr.Get("/{id}", dep.CasesHandler.Get)
				cr.Put("/{id}", dep.CasesHandler.Update)
				cr.Delete("/{id}", dep.CasesHandler.Delete)
			})

			// Risk register
			protected.Route("/risks", func(rr chi.Router) {
				rr.Get("/", dep.RisksHandler.List)
				rr.Post("/", dep.RisksHandler.Create)
				rr.Get("/{id}", dep.RisksHandler.Get)
				rr.Put("/{id}", dep.RisksHandler.Update)
				rr.Delete("/{id}", dep.RisksHandler.Delete)
			})

			// Leave approvals
			protected.Route("/leave", func(lr chi.Router) {
				lr.Get("/", dep.LeaveHandler.List)
				lr.Post("/", dep.LeaveHandler.Create)
				lr.Get("/{id}", dep.LeaveHandler.Get)
				lr.Post("/{id}/approve", dep.LeaveHandler.Approve)
				lr.Post("/{id}/reject", dep.LeaveHandler.Reject)
			})

			// Performance appraisals
			protected.Route("/appraisals", func(ar chi.Router) {
				ar.Get("/", dep.AppraisalsHandler.List)
				ar.Post("/", dep.AppraisalsHandler.Create)
				ar.Get("/{id}", dep.AppraisalsHandler.Get)
				ar.Put("/{id}", dep.AppraisalsHandler.Update)
				ar.Delete("/{id}", dep.AppraisalsHandler.Delete)
			})

			// Admin user management (action-discriminated POST)
			protected.Route("/admin/users", func(ur chi.Router) {
				ur.Use(mw.RequireRole("admin"))
				ur.Get("/", dep.AdminUsersHandler.List)
				ur.Post("/", dep.AdminUsersHandler.Act)
			})

			// Analytics dashboards
			protected.Get("/analytics/dashboard", dep.AnalyticsHandler.Dashboard)

			// Store change feed
			protected.Get("/events", dep.Hub.ServeHTTP)
		})
	})

	return r
}
