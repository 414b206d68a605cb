package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// PublicMenu serves the customer-facing menu for a restaurant slug: the
// categories in display order and only the active products, cheapest first.
func (h *Handler) PublicMenu(c echo.Context) error {
	log := logger.FromEcho(c)
	slug := c.Param("slug")
	defer prometheus.TrackDBOperation("query")(time.Now())

	var restaurant model.Restaurant
	if err := h.db.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		log.Warn("Restaurant not found for public menu", zap.String("slug", slug))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}

	var categories []model.Category
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		log.Error("Failed to load categories", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load menu"})
	}

	var products []model.Product
	if err := h.db.Where("restaurant_id = ? AND is_active = ?", restaurant.ID, true).
		Order("price ASC").
		Find(&products).Error; err != nil {
		log.Error("Failed to load products", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load menu"})
	}

	response := echo.Map{
		"restaurant": map[string]interface{}{
			"id":   restaurant.ID,
			"name": restaurant.Name,
			"slug": restaurant.Slug,
		},
		"categories": categories,
		"products":   products,
	}

	// WiFi details are public by design; they are printed on the table card.
	var settings model.RestaurantSettings
	err := h.db.Where("restaurant_id = ?", restaurant.ID).First(&settings).Error
	switch {
	case err == nil:
		response["wifi"] = map[string]string{
			"name":     settings.WifiName,
			"password": settings.WifiPassword,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("Failed to load settings", zap.String("slug", slug), zap.Error(err))
	}

	prometheus.RecordMenuView(slug)
	log.Info("Public menu served",
		zap.String("slug", slug),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)))
	return c.JSON(http.StatusOK, response)
}

// MenuQR renders a scannable PNG pointing at the restaurant's public menu URL
func (h *Handler) MenuQR(c echo.Context) error {
	log := logger.FromEcho(c)
	slug := c.Param("slug")
	defer prometheus.TrackDBOperation("query")(time.Now())

	var restaurant model.Restaurant
	if err := h.db.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		log.Warn("Restaurant not found for QR code", zap.String("slug", slug))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}

	size := 256
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if parsed, err := strconv.Atoi(sizeParam); err == nil {
			size = parsed
		}
	}
	if size < 64 {
		size = 64
	}
	if size > 1024 {
		size = 1024
	}

	target := strings.TrimRight(h.cfg.Server.PublicBaseURL, "/") + "/" + restaurant.Slug
	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		log.Error("Failed to encode QR code", zap.String("target", target), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate QR code"})
	}

	c.Response().Header().Set("Content-Disposition", `inline; filename="`+restaurant.Slug+`-menu.png"`)
	return c.Blob(http.StatusOK, "image/png", png)
}
