package availability

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.ForDate)
	rg.GET("/availability/range", h.ForRange)
}

func (h *Handler) ForDate(c *gin.Context) {
	day, err := h.service.ForDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeCacheable(c, day)
}

func (h *Handler) ForRange(c *gin.Context) {
	result, err := h.service.ForRange(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeCacheable(c, result)
}

// writeCacheable attaches caching metadata: a content fingerprint as ETag and
// the snapshot freshness window as Cache-Control. Availability is derivable
// from committed state as of read time, so conditional requests are safe.
func (h *Handler) writeCacheable(c *gin.Context, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability")
		return
	}

	etag := fmt.Sprintf("%q", fmt.Sprintf("%x", sha256.Sum256(body)))
	c.Header("ETag", etag)
	if ttl := h.service.snapshots.TTL(); ttl > 0 {
		c.Header("Cache-Control", fmt.Sprintf("max-age=%d", int(ttl.Seconds())))
	}

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	response.Success(c, http.StatusOK, data)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability")
}
