package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/models"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
	"github.com/sharpcut/booking-api/internal/validators"
)

// PublicHandler is the unauthenticated, slug-addressed surface used by the
// customer-facing booking page.
type PublicHandler struct {
	db  *gorm.DB
	svc *schedule.Service
}

func NewPublicHandler(db *gorm.DB, svc *schedule.Service) *PublicHandler {
	return &PublicHandler{db: db, svc: svc}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

// --------- Barbers ---------

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"barbers":    barbers,
	})
}

// --------- Availability ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barberID, err := strconv.ParseUint(c.Param("barberId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), shop.ID, uint(barberID), date)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// TimeButtons serves the dual-duration candidate view. The duration query
// parameter only matters when the shop has service selection enabled.
func (h *PublicHandler) TimeButtons(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barberID, err := strconv.ParseUint(c.Param("barberId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	duration := 30
	if v := c.Query("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
	}

	serviceSelection := c.Query("service_selection") != "false"

	buttons, err := h.svc.TimeButtons(c.Request.Context(), shop.ID, uint(barberID), date, duration, serviceSelection)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"buttons": buttons,
	})
}

// --------- Booking requests ---------

type PublicCreateRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Date          string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime     string `json:"start_time" binding:"required"` // HH:mm
	ServiceType   string `json:"service_type"`
}

func (h *PublicHandler) CreateRequest(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.svc.CreateRequest(c.Request.Context(), schedule.CreateRequestInput{
		BarbershopID:  shop.ID,
		BarberID:      req.BarberID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		StartTime:     req.StartTime,
		ServiceType:   req.ServiceType,
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

type PublicCancelRequest struct {
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

// CancelRequest lets a customer cancel their own booking. The phone number
// in the payload must match the one on the request.
func (h *PublicHandler) CancelRequest(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Agendamento inválido.")
		return
	}

	var body PublicCancelRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone, okPhone := validators.NormalizePhone(body.CustomerPhone)
	if !okPhone {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	var req models.AppointmentRequest
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", requestID, shop.ID).
		First(&req).Error; err != nil {

		httperr.NotFound(c, "request_not_found", "Agendamento não encontrado.")
		return
	}

	if req.CustomerPhone != phone {
		httperr.Write(c, http.StatusForbidden, "phone_mismatch", "Telefone não confere com o agendamento.")
		return
	}

	cancelled, err := h.svc.Cancel(c.Request.Context(), shop.ID, uint(requestID), domain.ActorCustomer, nil)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, cancelled)
}

// --------- Waitlist ---------

type PublicJoinWaitlist struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Date          string `json:"date" binding:"required"`
	TimeRange     string `json:"time_range" binding:"required"` // morning | evening
}

func (h *PublicHandler) JoinWaitlist(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicJoinWaitlist
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.svc.JoinWaitlist(
		c.Request.Context(),
		shop.ID, req.CustomerPhone, req.BarberID, req.Date, req.TimeRange,
	)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
