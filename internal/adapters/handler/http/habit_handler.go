package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type HabitHandler struct {
	store *services.TrackingStore
}

func NewHabitHandler(store *services.TrackingStore) *HabitHandler {
	return &HabitHandler{store: store}
}

type createHabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	TargetDays  []int  `json:"targetDays"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", h.Create)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/toggle", h.Toggle)
	}
}

func (h *HabitHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Habits())
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.store.AddHabit(services.CreateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Category:    req.Category,
		TargetDays:  req.TargetDays,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	h.store.DeleteHabit(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Toggle flips today, or the day given as ?date=YYYY-MM-DD.
func (h *HabitHandler) Toggle(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := domain.ParseDateKey(raw)
		if err != nil {
			handleError(c, err)
			return
		}
		date = parsed
	}

	habit, ok := h.store.ToggleHabitComplete(c.Param("id"), date)
	if !ok {
		notFound(c, "habit")
		return
	}
	c.JSON(http.StatusOK, habit)
}
