package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// CategoryRequest defines the structure for category creation requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories retrieves the resolved tenant's categories in display order
func (h *Handler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var categories []model.Category
	result := h.db.Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order ASC").
		Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	log.Info("Categories retrieved successfully",
		zap.Int("count", len(categories)),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory appends a category to the end of the tenant's display order.
// Categories are insert-only; there is no update or delete.
func (h *Handler) CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("insert")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" {
		log.Warn("Category name is required")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	// Reject duplicates within the tenant so slugs stay unambiguous.
	var count int64
	h.db.Model(&model.Category{}).
		Where("name = ? AND restaurant_id = ?", req.Name, restaurant.ID).
		Count(&count)
	if count > 0 {
		log.Warn("Category with this name already exists for this restaurant",
			zap.String("name", req.Name),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Category with this name already exists for this restaurant",
		})
	}

	var existing int64
	h.db.Model(&model.Category{}).
		Where("restaurant_id = ?", restaurant.ID).
		Count(&existing)

	category := model.Category{
		Name:         req.Name,
		Slug:         model.Slugify(req.Name),
		SortOrder:    int(existing) + 1,
		RestaurantID: restaurant.ID,
	}

	if result := h.db.Create(&category); result.Error != nil {
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create category"})
	}

	prometheus.RecordCategoryOperation("create")
	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.Int("sort_order", category.SortOrder),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusCreated, category)
}
