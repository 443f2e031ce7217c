package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type ViewHandler struct {
	store *services.TrackingStore
}

func NewViewHandler(store *services.TrackingStore) *ViewHandler {
	return &ViewHandler{store: store}
}

type updatePreferencesRequest struct {
	NotificationsEnabled  *bool `json:"notificationsEnabled"`
	EmailRemindersEnabled *bool `json:"emailRemindersEnabled"`
	DarkMode              *bool `json:"darkMode"`
}

func (h *ViewHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/view", h.View)
	r.GET("/preferences", h.GetPreferences)
	r.PATCH("/preferences", h.UpdatePreferences)
}

func (h *ViewHandler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.View())
}

func (h *ViewHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Preferences())
}

// UpdatePreferences applies only the fields present in the body.
func (h *ViewHandler) UpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NotificationsEnabled != nil {
		h.store.SetNotificationsEnabled(*req.NotificationsEnabled)
	}
	if req.EmailRemindersEnabled != nil {
		h.store.SetEmailRemindersEnabled(*req.EmailRemindersEnabled)
	}
	if req.DarkMode != nil {
		h.store.SetDarkMode(*req.DarkMode)
	}

	c.JSON(http.StatusOK, h.store.Preferences())
}
