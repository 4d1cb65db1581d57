package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/middleware"
	"github.com/sharpcut/booking-api/internal/models"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

// AppointmentHandler is the authenticated admin surface over the request
// lifecycle: listing, approval, rejection, completion, cancellation and
// direct booking.
type AppointmentHandler struct {
	db  *gorm.DB
	svc *schedule.Service
}

func NewAppointmentHandler(db *gorm.DB, svc *schedule.Service) *AppointmentHandler {
	return &AppointmentHandler{db: db, svc: svc}
}

// --------- Listing ---------

// List returns requests for one day (?date=) or one month (?month=YYYY-MM),
// optionally filtered by barber and status.
func (h *AppointmentHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	q := h.db.Where("barbershop_id = ?", shopID)

	date := c.Query("date")
	month := c.Query("month")
	switch {
	case date != "":
		q = q.Where("date = ?", date)
	case month != "":
		q = q.Where("date LIKE ?", month+"-%")
	default:
		httperr.BadRequest(c, "missing_period", "Informe date ou month.")
		return
	}

	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var reqs []models.AppointmentRequest
	if err := q.Order("date ASC, start_time ASC").Find(&reqs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  reqs,
		"total": len(reqs),
	})
}

// --------- Lifecycle transitions ---------

type ApproveRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required"`
}

func (h *AppointmentHandler) Approve(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Agendamento inválido.")
		return
	}

	var body ApproveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	req, err := h.svc.Approve(c.Request.Context(), shopID, uint(requestID), body.DurationMinutes, &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Agendamento inválido.")
		return
	}

	req, err := h.svc.Reject(c.Request.Context(), shopID, uint(requestID), &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Agendamento inválido.")
		return
	}

	req, err := h.svc.Complete(c.Request.Context(), shopID, uint(requestID), &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Agendamento inválido.")
		return
	}

	req, err := h.svc.Cancel(c.Request.Context(), shopID, uint(requestID), domain.ActorAdmin, &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

// --------- Direct booking ---------

type AdminBookRequest struct {
	BarberID        uint   `json:"barber_id" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	ServiceType     string `json:"service_type"`
}

func (h *AppointmentHandler) AdminBook(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	var body AdminBookRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	req, err := h.svc.AdminBook(c.Request.Context(), schedule.AdminBookInput{
		BarbershopID:    shopID,
		BarberID:        body.BarberID,
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		Date:            body.Date,
		StartTime:       body.StartTime,
		DurationMinutes: body.DurationMinutes,
		ServiceType:     body.ServiceType,
	}, &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}
