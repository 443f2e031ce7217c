package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type RoutineHandler struct {
	store *services.TrackingStore
}

func NewRoutineHandler(store *services.TrackingStore) *RoutineHandler {
	return &RoutineHandler{store: store}
}

type createRoutineRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	ScheduledTime string   `json:"scheduledTime"`
	Tasks         []string `json:"tasks"`
}

type addTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *RoutineHandler) RegisterRoutes(router *gin.RouterGroup) {
	routines := router.Group("/routines")
	{
		routines.GET("", h.List)
		routines.POST("", h.Create)
		routines.DELETE("/:id", h.Delete)
		routines.POST("/:id/toggle", h.Toggle)
		routines.POST("/:id/tasks", h.AddTask)
		routines.DELETE("/:id/tasks/:taskId", h.DeleteTask)
		routines.POST("/:id/tasks/:taskId/toggle", h.ToggleTask)
	}
}

func (h *RoutineHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Routines())
}

func (h *RoutineHandler) Create(c *gin.Context) {
	var req createRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine, err := h.store.AddRoutine(services.CreateRoutineInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ScheduledTime: req.ScheduledTime,
		Tasks:         req.Tasks,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, routine)
}

func (h *RoutineHandler) Delete(c *gin.Context) {
	h.store.DeleteRoutine(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *RoutineHandler) Toggle(c *gin.Context) {
	routine, ok := h.store.ToggleRoutineComplete(c.Param("id"))
	if !ok {
		notFound(c, "routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) AddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok, err := h.store.AddTask(c.Param("id"), req.Title)
	if !ok {
		notFound(c, "routine")
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *RoutineHandler) DeleteTask(c *gin.Context) {
	h.store.DeleteTask(c.Param("id"), c.Param("taskId"))
	c.Status(http.StatusNoContent)
}

func (h *RoutineHandler) ToggleTask(c *gin.Context) {
	routine, ok := h.store.ToggleTaskComplete(c.Param("id"), c.Param("taskId"))
	if !ok {
		notFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, routine)
}
