package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// ProductRequest defines the structure for product creation/update requests.
// Price and price_without_tax are pointers so an omitted field is
// distinguishable from zero.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	// PriceWithoutTax is a full-replace field: omitting it means "recompute
	// from price", even when the price is unchanged. Clients that let users
	// override the tax split must echo the stored value back on every save.
	PriceWithoutTax *decimal.Decimal `json:"price_without_tax"`
	ImageURL        string           `json:"image_url"`
	CategoryID      uint             `json:"category_id"`
}

// validate checks the request constraints shared by create and update.
// Returns an empty string when valid.
func (r *ProductRequest) validate() string {
	if r.Name == "" || r.Price == nil {
		return "name and price are required"
	}
	if !r.Price.IsPositive() {
		return "price must be a positive amount"
	}
	if r.CategoryID == 0 {
		return "category_id is required"
	}
	return ""
}

// ListProducts retrieves the resolved tenant's products, newest first, with
// optional category, active-state and search filters.
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	query := h.db.Where("restaurant_id = ?", restaurant.ID)

	if isActive := c.QueryParam("is_active"); isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if q := c.QueryParam("q"); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var products []model.Product
	result := query.Order("created_at DESC, id DESC").Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products",
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully",
		zap.Int("count", len(products)),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product to the resolved tenant. New products default
// to active; a missing image falls back to the placeholder and a missing
// price_without_tax is derived from the price.
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("insert")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if !h.categoryInTenant(req.CategoryID, restaurant.ID) {
		log.Warn("Category does not belong to restaurant",
			zap.Uint("category_id", req.CategoryID),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "category does not belong to this restaurant",
		})
	}

	priceWithoutTax := req.PriceWithoutTax
	if priceWithoutTax == nil {
		derived := model.PriceWithoutTax(*req.Price)
		priceWithoutTax = &derived
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultProductImageURL
	}

	product := model.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		PriceWithoutTax: *priceWithoutTax,
		ImageURL:        imageURL,
		CategoryID:      req.CategoryID,
		RestaurantID:    restaurant.ID,
		IsActive:        true,
	}

	if result := h.db.Create(&product); result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Uint("restaurant_id", restaurant.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product within the resolved tenant's scope
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")
	defer prometheus.TrackDBOperation("update")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed", zap.String("product_id", id), zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var product model.Product
	result := h.db.Where("id = ? AND restaurant_id = ?", id, restaurant.ID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found or does not belong to restaurant",
			zap.String("product_id", id),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	if !h.categoryInTenant(req.CategoryID, restaurant.ID) {
		log.Warn("Category does not belong to restaurant",
			zap.Uint("category_id", req.CategoryID),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "category does not belong to this restaurant",
		})
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = *req.Price
	if req.PriceWithoutTax != nil {
		product.PriceWithoutTax = *req.PriceWithoutTax
	} else {
		product.PriceWithoutTax = model.PriceWithoutTax(*req.Price)
	}
	// Keep the stored image when the client sends none.
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	} else if product.ImageURL == "" {
		product.ImageURL = model.DefaultProductImageURL
	}
	product.CategoryID = req.CategoryID

	if result := h.db.Save(&product); result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, product)
}

// ToggleProductActive flips a product's public visibility without deleting it
func (h *Handler) ToggleProductActive(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")
	defer prometheus.TrackDBOperation("update")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var product model.Product
	result := h.db.Where("id = ? AND restaurant_id = ?", id, restaurant.ID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found or does not belong to restaurant",
			zap.String("product_id", id),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product.IsActive = !product.IsActive
	if result := h.db.Save(&product); result.Error != nil {
		log.Error("Failed to toggle product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	prometheus.RecordProductOperation("toggle")
	log.Info("Product visibility toggled",
		zap.Uint("product_id", product.ID),
		zap.Bool("is_active", product.IsActive),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct permanently removes a product. There is no soft delete; the
// client confirms with the user before calling.
func (h *Handler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")
	defer prometheus.TrackDBOperation("delete")(time.Now())

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	var product model.Product
	result := h.db.Where("id = ? AND restaurant_id = ?", id, restaurant.ID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found for deletion",
			zap.String("product_id", id),
			zap.Uint("restaurant_id", restaurant.ID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	if result := h.db.Delete(&product); result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully",
		zap.Uint("product_id", product.ID),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// categoryInTenant reports whether the category exists and belongs to the
// restaurant. A product may only reference a category of its own tenant.
func (h *Handler) categoryInTenant(categoryID, restaurantID uint) bool {
	var count int64
	h.db.Model(&model.Category{}).
		Where("id = ? AND restaurant_id = ?", categoryID, restaurantID).
		Count(&count)
	return count > 0
}
