package schedule

import (
	"errors"
	"net/http"

	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type UpdateBusinessHoursRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/business-hours", h.List)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/business-hours", h.Update)
}

func (h *Handler) List(c *gin.Context) {
	hours, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load business hours")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"business_hours": hours})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hours, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update business hours")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"business_hours": hours})
}
