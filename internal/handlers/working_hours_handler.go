package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/middleware"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/timeutil"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

// WorkingHoursHandler manages the weekly base hours and the per-date
// closure overrides for a barber.
type WorkingHoursHandler struct {
	db  *gorm.DB
	svc *schedule.Service
}

func NewWorkingHoursHandler(db *gorm.DB, svc *schedule.Service) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, svc: svc}
}

func barberParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("barberId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return 0, false
	}
	return uint(id), true
}

// --------- Weekly hours ---------

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, ok := barberParam(c)
	if !ok {
		return
	}

	var hours []models.WorkingHour
	if err := h.db.
		Where("barbershop_id = ? AND barber_id = ?", shopID, barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_list_hours", "Erro ao listar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hours})
}

type WorkingDayRequest struct {
	Weekday   int    `json:"weekday"`
	IsWorking bool   `json:"is_working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *WorkingHoursHandler) Upsert(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	barberID, ok := barberParam(c)
	if !ok {
		return
	}

	var body struct {
		Days []WorkingDayRequest `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	days := make([]schedule.WorkingDayInput, len(body.Days))
	for i, d := range body.Days {
		days[i] = schedule.WorkingDayInput{
			Weekday:   d.Weekday,
			IsWorking: d.IsWorking,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		}
	}

	if err := h.svc.UpsertWorkingHours(c.Request.Context(), shopID, barberID, days, &adminID); err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(days)})
}

// ResolvedDay returns the effective open window for one date, with the
// date's closure windows alongside.
func (h *WorkingHoursHandler) ResolvedDay(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, ok := barberParam(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	hours, overrides, err := h.svc.ResolveHours(c.Request.Context(), shopID, barberID, date)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	resp := gin.H{
		"date":      date,
		"open":      hours.Open,
		"overrides": overrides,
	}
	if hours.Open {
		resp["start_time"] = timeutil.FormatClock(hours.Start)
		resp["end_time"] = timeutil.FormatClock(hours.End)
	}

	c.JSON(http.StatusOK, resp)
}

// --------- Overrides ---------

type CreateOverrideRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *WorkingHoursHandler) CreateOverride(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	barberID, ok := barberParam(c)
	if !ok {
		return
	}

	var body CreateOverrideRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	override, err := h.svc.CreateOverride(c.Request.Context(), schedule.CreateOverrideInput{
		BarbershopID: shopID,
		BarberID:     barberID,
		Date:         body.Date,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Reason:       body.Reason,
	}, &adminID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusCreated, override)
}

func (h *WorkingHoursHandler) ListOverrides(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, ok := barberParam(c)
	if !ok {
		return
	}

	q := h.db.Where("barbershop_id = ? AND barber_id = ?", shopID, barberID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var overrides []models.WorkingHourOverride
	if err := q.Order("date ASC, start_time ASC").Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overrides})
}

func (h *WorkingHoursHandler) DeleteOverride(c *gin.Context) {
	shopID := middleware.ShopID(c)
	adminID := middleware.UserID(c)

	overrideID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_override_id", "Bloqueio inválido.")
		return
	}

	if err := h.svc.DeleteOverride(c.Request.Context(), shopID, uint(overrideID), &adminID); err != nil {
		httperr.Domain(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
