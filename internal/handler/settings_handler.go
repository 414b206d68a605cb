package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// SettingsRequest defines the structure for WiFi settings saves
type SettingsRequest struct {
	WifiName     string `json:"wifi_name"`
	WifiPassword string `json:"wifi_password"`
}

// GetSettings retrieves the tenant's settings row. A tenant that has never
// saved settings gets an empty row, not an error, so stale values from a
// previously viewed tenant can never leak through.
func (h *Handler) GetSettings(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var settings model.RestaurantSettings
	result := h.db.Where("restaurant_id = ?", restaurant.ID).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, model.RestaurantSettings{RestaurantID: restaurant.ID})
		}
		log.Error("Failed to retrieve settings",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve settings",
		})
	}

	return c.JSON(http.StatusOK, settings)
}

// SaveSettings creates or updates the tenant's single settings row. The
// upsert is keyed on the restaurant_id uniqueness constraint, so repeated
// saves never produce a second row and no row id needs to be remembered
// across tenant switches.
func (h *Handler) SaveSettings(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("upsert")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	settings := model.RestaurantSettings{
		RestaurantID: restaurant.ID,
		WifiName:     req.WifiName,
		WifiPassword: req.WifiPassword,
	}

	result := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"wifi_name", "wifi_password", "updated_at"}),
	}).Create(&settings)
	if result.Error != nil {
		log.Error("Failed to save settings",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save settings"})
	}

	// Re-read so the response carries the canonical row id and timestamps.
	var saved model.RestaurantSettings
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).First(&saved).Error; err != nil {
		log.Error("Failed to reload settings after save",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save settings"})
	}

	prometheus.RecordSettingsOperation("save")
	log.Info("Settings saved successfully",
		zap.Uint("settings_id", saved.ID),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, saved)
}
