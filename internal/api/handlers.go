package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/config"
	"github.com/lucas/colonysim/internal/ws"
)

// Handler contains HTTP handler methods for the colony control surface.
type Handler struct {
	engine    *colony.Engine
	hub       *ws.Hub
	wsHandler *ws.Handler
	cfg       *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(engine *colony.Engine, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		hub:       hub,
		wsHandler: ws.NewHandler(hub, engine),
		cfg:       cfg,
	}
}

// Health returns server health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState returns the full current colony snapshot.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// WebSocket upgrades a connection to stream tick broadcasts.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsHandler.ServeWS(w, r)
}

// PlaceBuilding designates a construction site.
func (h *Handler) PlaceBuilding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position     `json:"position"`
		Type     colony.BuildingType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	site, err := h.engine.PlaceBuilding(req.Position, req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

// Designate marks a harvestable node for a gathering job.
func (h *Handler) Designate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.Designate(req.Position); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "designated"})
}

// CreateStockpileZone registers a new zone over a set of tiles.
func (h *Handler) CreateStockpileZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tiles []colony.Position `json:"tiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	zoneID, err := h.engine.CreateStockpileZone(req.Tiles)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"zone_id": zoneID})
}

// SetZoneFilter allows or disallows a resource type in a zone.
func (h *Handler) SetZoneFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ZoneID uuid.UUID            `json:"zone_id"`
		Type   colony.ResourceType  `json:"resource_type"`
		Allow  bool                 `json:"allow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.SetZoneFilter(req.ZoneID, req.Type, req.Allow); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveZoneTile marks a tile for removal from its zone.
func (h *Handler) RemoveZoneTile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.RemoveZoneTile(req.Position); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pending removal"})
}

// AddOrder queues a production order at a workstation.
func (h *Handler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position      `json:"position"`
		RecipeID string               `json:"recipe_id"`
		Quantity colony.QuantityType  `json:"quantity_type"`
		Target   int                  `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.AddOrder(req.Position, req.RecipeID, req.Quantity, req.Target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "queued"})
}

// CancelOrder removes a queued order by index.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position `json:"position"`
		Index    int             `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.CancelOrder(req.Position, req.Index); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// SetWorkstationRecipe pins a workstation's active recipe.
func (h *Handler) SetWorkstationRecipe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position colony.Position `json:"position"`
		RecipeID string          `json:"recipe_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.SetWorkstationRecipe(req.Position, req.RecipeID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CommandColonist forces a colonist back to idle for immediate reassignment.
func (h *Handler) CommandColonist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid colonist id")
		return
	}

	if err := h.engine.CommandColonist(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reassigning"})
}

// ForceTick manually triggers a tick (dev only).
func (h *Handler) ForceTick(w http.ResponseWriter, r *http.Request) {
	h.engine.Tick()
	writeJSON(w, http.StatusOK, map[string]string{"status": "tick processed"})
}

// PauseColony pauses the tick loop (dev only).
func (h *Handler) PauseColony(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

// ResumeColony resumes the tick loop (dev only).
func (h *Handler) ResumeColony(w http.ResponseWriter, r *http.Request) {
	h.engine.Resume()
	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
