package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/middleware"
	"github.com/sharpcut/booking-api/internal/models"
)

type WaitlistHandler struct {
	db *gorm.DB
}

func NewWaitlistHandler(db *gorm.DB) *WaitlistHandler {
	return &WaitlistHandler{db: db}
}

func (h *WaitlistHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	q := h.db.Where("barbershop_id = ?", shopID)
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("preferred_date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var entries []models.AppointmentWaitlist
	if err := q.Order("preferred_date ASC, id ASC").Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_waitlist", "Erro ao listar fila de espera.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"total": len(entries),
	})
}
