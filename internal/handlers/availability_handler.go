package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type WindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type WindowsUpdateRequest struct {
	Windows []WindowConfig `json:"windows" binding:"required"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	var windows []models.AvailabilityWindow
	if err := h.db.
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_windows"})
		return
	}

	c.JSON(http.StatusOK, windows)
}

// Update substitui a grade inteira. Duas janelas no mesmo weekday
// representam pausa no meio do dia.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req WindowsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, w := range req.Windows {
		start, err := domain.ParseLocalTime(w.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time", "window": w})
			return
		}
		end, err := domain.ParseLocalTime(w.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time", "window": w})
			return
		}
		if !start.Before(end) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window_start_after_end", "window": w})
			return
		}
	}

	if err := h.db.Where("1 = 1").Delete(&models.AvailabilityWindow{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_windows"})
		return
	}

	var toCreate []models.AvailabilityWindow
	for _, w := range req.Windows {
		toCreate = append(toCreate, models.AvailabilityWindow{
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Active:    w.Active,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_windows"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
