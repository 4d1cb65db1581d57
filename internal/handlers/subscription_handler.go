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

type SubscriptionHandler struct {
	db  *gorm.DB
	svc *schedule.Service
}

func NewSubscriptionHandler(db *gorm.DB, svc *schedule.Service) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, svc: svc}
}

type CreateSubscriptionRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`

	RecurrenceType string `json:"recurrence_type" binding:"required"` // weekly | biweekly | monthly
	DayOfWeek      int    `json:"day_of_week" binding:"required"`     // 1 = Monday .. 7 = Sunday
	WeekOfMonth    int    `json:"week_of_month"`

	StartTime       string  `json:"start_time" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         *string `json:"end_date"`
	ServiceType     string  `json:"service_type"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	var body CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sub, created, err := h.svc.CreateSubscription(c.Request.Context(), schedule.CreateSubscriptionInput{
		BarbershopID:    shopID,
		BarberID:        body.BarberID,
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		RecurrenceType:  body.RecurrenceType,
		DayOfWeek:       body.DayOfWeek,
		WeekOfMonth:     body.WeekOfMonth,
		StartTime:       body.StartTime,
		DurationMinutes: body.DurationMinutes,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		ServiceType:     body.ServiceType,
	}, &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"subscription": sub,
		"materialized": created,
	})
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	q := h.db.Where("barbershop_id = ?", shopID)
	if c.Query("active") == "true" {
		q = q.Where("is_active = true")
	}
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var subs []models.Subscription
	if err := q.Order("id ASC").Find(&subs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_subscriptions", "Erro ao listar assinaturas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  subs,
		"total": len(subs),
	})
}

func (h *SubscriptionHandler) TopUp(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	subID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_subscription_id", "Assinatura inválida.")
		return
	}

	created, err := h.svc.TopUpSubscription(c.Request.Context(), shopID, uint(subID), &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materialized": created})
}

func (h *SubscriptionHandler) Deactivate(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	subID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_subscription_id", "Assinatura inválida.")
		return
	}

	if err := h.svc.DeactivateSubscription(c.Request.Context(), shopID, uint(subID), &adminID); err != nil {
		httperr.Domain(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
