package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/codec"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

const maxSnapshotBytes = 10 << 20

type SnapshotHandler struct {
	store *services.TrackingStore
}

func NewSnapshotHandler(store *services.TrackingStore) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

func (h *SnapshotHandler) RegisterRoutes(r *gin.RouterGroup) {
	snapshot := r.Group("/snapshot")
	{
		snapshot.GET("", h.Export)
		snapshot.PUT("", h.Import)
		snapshot.DELETE("", h.Reset)
	}
}

func requestFormat(c *gin.Context) (codec.Format, error) {
	if q := c.Query("format"); q != "" {
		return codec.ParseFormat(q)
	}
	if strings.Contains(c.ContentType(), "yaml") {
		return codec.FormatYAML, nil
	}
	return codec.FormatJSON, nil
}

func (h *SnapshotHandler) Export(c *gin.Context) {
	format, err := requestFormat(c)
	if err != nil {
		handleError(c, err)
		return
	}

	snap := h.store.Export()
	data, err := codec.Marshal(&snap, format)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="kanso-%s.%s"`, h.store.Today().Format("2006-01-02"), format))
	c.Data(http.StatusOK, format.ContentType(), data)
}

// Import replaces all data with the request body. Nothing changes when the body is invalid.
func (h *SnapshotHandler) Import(c *gin.Context) {
	format, err := requestFormat(c)
	if err != nil {
		handleError(c, err)
		return
	}

	snap, err := codec.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotBytes), format)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.store.Import(*snap); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.store.View())
}

func (h *SnapshotHandler) Reset(c *gin.Context) {
	h.store.Reset()
	c.Status(http.StatusNoContent)
}
