package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ryanap7/diwan-print-agent/internal/prefs"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/dto/request"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/dto/response"
)

// PreferencesHandler exposes the stored printing preferences.
type PreferencesHandler struct {
	store *prefs.Store
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(store *prefs.Store) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// Get returns the current preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	response.OK(c, "Preferences retrieved", h.store.Get())
}

// Update replaces the stored preferences.
func (h *PreferencesHandler) Update(c *gin.Context) {
	var req request.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p := prefs.Preferences{
		PreferThermer:   req.PreferThermer,
		PreferredMethod: req.PreferredMethod,
	}
	if err := h.store.Update(p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Preferences updated", p)
}
