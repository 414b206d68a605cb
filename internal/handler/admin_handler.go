package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// AdminContext resolves and returns the restaurant an admin session operates
// on. The client calls it once after login to decide between rendering the
// panel and the terminal "no tenant" state.
func (h *Handler) AdminContext(c echo.Context) error {
	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	return c.JSON(http.StatusOK, restaurant)
}

// AdminBootstrap resolves the tenant and returns all three admin collections
// in one response: products newest first, categories in display order and the
// settings row. Clients reload it after every successful mutation; the full
// reload is the consistency mechanism, there are no partial updates.
func (h *Handler) AdminBootstrap(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var products []model.Product
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {
		log.Error("Failed to load products",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load admin data"})
	}

	var categories []model.Category
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		log.Error("Failed to load categories",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load admin data"})
	}

	// A tenant without a settings row gets empty WiFi fields, never values
	// left over from another tenant.
	settings := model.RestaurantSettings{RestaurantID: restaurant.ID}
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to load settings",
				zap.Uint("restaurant_id", restaurant.ID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load admin data"})
		}
		settings = model.RestaurantSettings{RestaurantID: restaurant.ID}
	}

	log.Info("Admin data loaded",
		zap.Uint("restaurant_id", restaurant.ID),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)))

	return c.JSON(http.StatusOK, echo.Map{
		"restaurant": restaurant,
		"products":   products,
		"categories": categories,
		"settings":   settings,
	})
}
