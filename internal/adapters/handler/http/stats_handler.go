package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type StatsHandler struct {
	svc *services.AnalyticsService
}

func NewStatsHandler(svc *services.AnalyticsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Get)
}

// Get summarizes ?period=week|month|year, defaulting to the current week.
func (h *StatsHandler) Get(c *gin.Context) {
	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.svc.Summarize(period))
}
