package api

import (
	"net/http"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/config"
	"github.com/lucas/colonysim/internal/ws"
)

// NewRouter creates the HTTP router for the colony's control surface.
func NewRouter(engine *colony.Engine, hub *ws.Hub, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	handler := NewHandler(engine, hub, cfg)

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("GET /api/colony/state", handler.GetState)
	mux.HandleFunc("POST /api/colony/place_building", handler.PlaceBuilding)
	mux.HandleFunc("POST /api/colony/designate", handler.Designate)
	mux.HandleFunc("POST /api/colony/zones", handler.CreateStockpileZone)
	mux.HandleFunc("POST /api/colony/zones/filter", handler.SetZoneFilter)
	mux.HandleFunc("POST /api/colony/zones/remove_tile", handler.RemoveZoneTile)
	mux.HandleFunc("POST /api/colony/orders", handler.AddOrder)
	mux.HandleFunc("POST /api/colony/orders/cancel", handler.CancelOrder)
	mux.HandleFunc("POST /api/colony/workstation/recipe", handler.SetWorkstationRecipe)
	mux.HandleFunc("POST /api/colony/colonists/{id}/command", handler.CommandColonist)

	mux.HandleFunc("GET /ws/colony", handler.WebSocket)

	if cfg.Dev.Enabled {
		mux.HandleFunc("POST /api/dev/tick", handler.ForceTick)
		mux.HandleFunc("POST /api/dev/pause", handler.PauseColony)
		mux.HandleFunc("POST /api/dev/resume", handler.ResumeColony)
	}

	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
