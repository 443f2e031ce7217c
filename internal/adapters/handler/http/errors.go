package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/codec"
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
)

var validationErrors = []error{
	domain.ErrRoutineTitleEmpty,
	domain.ErrRoutineTitleTooLong,
	domain.ErrRoutineDescTooLong,
	domain.ErrTaskTitleEmpty,
	domain.ErrHabitTitleEmpty,
	domain.ErrHabitTitleTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitNoTargetDays,
	domain.ErrInvalidColor,
	domain.ErrInvalidWeekdays,
	domain.ErrInvalidDateKey,
	domain.ErrInvalidPeriod,
	domain.ErrDataIntegrity,
	codec.ErrUnsupportedFormat,
}

func handleError(c *gin.Context, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	logger.Error("Unhandled request error", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
