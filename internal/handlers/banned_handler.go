package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut/booking-api/internal/httperr"
	"github.com/sharpcut/booking-api/internal/middleware"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/validators"
)

type BannedHandler struct {
	db *gorm.DB
}

func NewBannedHandler(db *gorm.DB) *BannedHandler {
	return &BannedHandler{db: db}
}

func (h *BannedHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var banned []models.BannedCustomer
	if err := h.db.
		Where("barbershop_id = ?", shopID).
		Order("id DESC").
		Find(&banned).Error; err != nil {

		httperr.Internal(c, "failed_to_list_banned", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": banned})
}

type BanRequest struct {
	Phone   string `json:"phone" binding:"required"`
	BanType string `json:"ban_type"` // permanent | temporary
	Reason  string `json:"reason"`
	Days    int    `json:"days"` // temporary only
}

func (h *BannedHandler) Create(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var body BanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone, ok := validators.NormalizePhone(body.Phone)
	if !ok {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	banType := body.BanType
	if banType == "" {
		banType = "permanent"
	}
	if banType != "permanent" && banType != "temporary" {
		httperr.BadRequest(c, "invalid_ban_type", "Tipo de bloqueio deve ser permanent ou temporary.")
		return
	}

	entry := models.BannedCustomer{
		BarbershopID: shopID,
		Phone:        phone,
		BanType:      banType,
		Reason:       body.Reason,
	}

	if banType == "temporary" {
		if body.Days <= 0 {
			httperr.BadRequest(c, "invalid_ban_days", "Bloqueio temporário exige dias > 0.")
			return
		}
		expires := time.Now().AddDate(0, 0, body.Days)
		entry.ExpiresAt = &expires
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_ban", "Erro ao bloquear cliente.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *BannedHandler) Delete(c *gin.Context) {
	shopID := middleware.ShopID(c)

	banID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_ban_id", "Bloqueio inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND barbershop_id = ?", banID, shopID).
		Delete(&models.BannedCustomer{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_ban", "Erro ao remover bloqueio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "ban_not_found", "Bloqueio não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
