package handlers

import (
	"net/http"

	"mindcoach/internal/metrics"
)

// Router wires every handler onto one ServeMux
type Router struct {
	Middleware *Middleware
	Users      *UserHandler
	Assessment *AssessmentHandler
	State      *StateHandler
	Practice   *PracticeHandler
	Catalog    *CatalogHandler
	Admin      *AdminHandler
	Health     http.HandlerFunc
	Metrics    *metrics.Metrics
}

// Handler returns the routed handler wrapped in request logging
func (rt *Router) Handler() http.Handler {
	mw := rt.Middleware
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/users", mw.RateLimit(rt.Users.Register))
	mux.HandleFunc("POST /api/quiz/score", mw.RateLimit(mw.OptionalUser(rt.Assessment.ScoreQuiz)))
	mux.HandleFunc("POST /api/coach/match", mw.RateLimit(mw.OptionalUser(rt.Assessment.MatchCoach)))
	mux.HandleFunc("GET /api/catalog/{kind}", rt.Catalog.List)

	// Per-user routes
	mux.HandleFunc("GET /api/state", mw.RequireUser(rt.State.GetState))
	mux.HandleFunc("DELETE /api/state", mw.RequireUser(rt.State.ResetState))
	mux.HandleFunc("GET /api/state/export", mw.RequireUser(rt.State.ExportState))
	mux.HandleFunc("POST /api/onboarding", mw.RequireUser(rt.Assessment.Onboard))
	mux.HandleFunc("POST /api/quiz/complete", mw.RequireUser(mw.RateLimit(rt.Assessment.CompleteQuiz)))
	mux.HandleFunc("POST /api/mind-gym/sessions", mw.RequireUser(rt.Practice.RecordSession))
	mux.HandleFunc("POST /api/happiness", mw.RequireUser(rt.Practice.RecordCheckIn))
	mux.HandleFunc("POST /api/coach/feedback", mw.RequireUser(rt.Practice.RecordFeedback))
	mux.HandleFunc("POST /api/settings/notifications/toggle", mw.RequireUser(rt.Practice.ToggleNotifications))
	mux.HandleFunc("PUT /api/settings/email", mw.RequireUser(rt.Practice.SetContactEmail))
	mux.HandleFunc("GET /api/progress", mw.RequireUser(rt.Practice.Progress))

	// Admin routes
	mux.HandleFunc("GET /api/admin/export", mw.RequireAdmin(rt.Admin.Export))
	mux.HandleFunc("POST /api/admin/digest", mw.RequireAdmin(rt.Admin.RunDigest))

	// Operations
	mux.Handle("GET /metrics", rt.Metrics.Handler())
	mux.HandleFunc("GET /healthz", rt.Health)

	return Logging(rt.Metrics, mux)
}
