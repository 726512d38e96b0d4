package reservation

import (
	"errors"
	"net/http"

	"tablebook/internal/capacity"
	"tablebook/internal/pkg/response"
	"tablebook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.List)
	rg.DELETE("/reservations/:id", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request fields", details)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var conflict *capacity.Conflict
		switch {
		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, "CAPACITY_CONFLICT", conflict.Error(), gin.H{
				"time_slot":       conflict.Slot,
				"time":            conflict.TimeLabel,
				"available_seats": conflict.Available,
			})
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"reservation":       result.Reservation,
		"notification_sent": result.Notified,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func (h *Handler) List(c *gin.Context) {
	req := ListReservationsRequest{
		Phone:  c.Query("phone"),
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}

	reservations, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhoneRequired):
			response.Error(c, http.StatusForbidden, "PHONE_REQUIRED", "A phone number filter is required to list reservations")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": reservations})
}
