package admin

import (
	"errors"
	"io"
	"net/http"

	"tablebook/internal/live"
	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in the admin middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *live.Hub
	logger  *zap.Logger
}

func NewHandler(service *Service, hub *live.Hub, logger *zap.Logger) *Handler {
	return &Handler{service: service, hub: hub, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListForDate)
	rg.GET("/summary", h.Summary)
	rg.POST("/reservations/:id/cancel", h.ForceCancel)
	rg.POST("/reservations/:id/complete", h.MarkCompleted)
	rg.GET("/live", h.Live)
}

func (h *Handler) ListForDate(c *gin.Context) {
	reservations, err := h.service.ListForDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeError(c, err, "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": reservations})
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeError(c, err, "Failed to summarize reservations")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) ForceCancel(c *gin.Context) {
	var req ForceCancelRequest
	// An empty body is fine: it means the default cancelled status.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ForceCancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) MarkCompleted(c *gin.Context) {
	res, err := h.service.MarkCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to complete reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

// Live upgrades to a websocket that streams reservation events to the
// dashboard.
func (h *Handler) Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(conn)

	// Reader loop only drains control frames; the hub writes events.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Reservation is not in a cancellable status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
