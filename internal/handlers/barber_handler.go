package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/middleware"
	"github.com/sharpcut/booking-api/internal/models"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

type BarberHandler struct {
	db  *gorm.DB
	svc *schedule.Service
}

func NewBarberHandler(db *gorm.DB, svc *schedule.Service) *BarberHandler {
	return &BarberHandler{db: db, svc: svc}
}

func (h *BarberHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var barbers []models.Barber
	if err := h.db.
		Where("barbershop_id = ?", shopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": barbers})
}

type CreateBarberRequest struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
	SlotDurationMin int    `json:"slot_duration_min"`
}

func (h *BarberHandler) Create(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var body CreateBarberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	duration := body.SlotDurationMin
	if duration == 0 {
		duration = 30
	}
	if duration != 30 && duration != 60 {
		httperr.BadRequest(c, "invalid_duration", "Duração do slot deve ser 30 ou 60 minutos.")
		return
	}

	barber := models.Barber{
		BarbershopID:    shopID,
		Name:            body.Name,
		Phone:           body.Phone,
		SlotDurationMin: duration,
		Active:          true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

type UpdateBarberRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	SlotDurationMin *int    `json:"slot_duration_min"`
}

func (h *BarberHandler) Update(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", barberID, shopID).
		First(&barber).Error; err != nil {

		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var body UpdateBarberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if body.Name != nil {
		barber.Name = *body.Name
	}
	if body.Phone != nil {
		barber.Phone = *body.Phone
	}
	if body.SlotDurationMin != nil {
		if *body.SlotDurationMin != 30 && *body.SlotDurationMin != 60 {
			httperr.BadRequest(c, "invalid_duration", "Duração do slot deve ser 30 ou 60 minutos.")
			return
		}
		barber.SlotDurationMin = *body.SlotDurationMin
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// Deactivate removes the barber from the roster and cancels every future
// appointment through the scheduling engine.
func (h *BarberHandler) Deactivate(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	if err := h.svc.DeactivateBarber(c.Request.Context(), shopID, uint(barberID), &adminID); err != nil {
		httperr.Domain(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
