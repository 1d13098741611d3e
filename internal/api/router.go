package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// vaultRoot is used to resolve the assets directory.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler, vaultRoot string) chi.Router {
	h := NewHandler(svc)
	ah := NewAssetHandler(vaultRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Snapshot + reload.
	r.Get("/vault", h.GetVault)
	r.Post("/vault/reload", h.ReloadVault)

	// Day note.
	r.Get("/today", h.GetToday)
	r.Put("/today", h.SaveToday)

	// Habit checkins.
	r.Post("/habits/{id}/checkin", h.ToggleHabit)

	// Menu + settings.
	r.Get("/menu", h.GetMenu)
	r.Put("/menu", h.SaveMenu)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.SaveSettings)

	// Raw notes CRUD.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/*", h.GetNote)
	r.Put("/notes/*", h.UpdateNote)
	r.Delete("/notes/*", h.DeleteNote)

	// Search.
	r.Get("/search", h.Search)

	// Asset upload + serving.
	r.Post("/assets", ah.Upload)
	r.Get("/assets/{filename}", ah.ServeFile)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
