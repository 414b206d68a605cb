package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devoys/menu-service/internal/middleware"
	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// RestaurantRequest defines the structure for reseller onboarding requests
type RestaurantRequest struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	OwnerEmail string `json:"owner_email"`
}

// requireReseller rejects non-reseller callers. Returns nil claims when the
// 403 response has already been written.
func (h *Handler) requireReseller(c echo.Context) (uint, bool) {
	claims := middleware.CurrentClaims(c)
	if claims == nil || claims.Role != model.RoleReseller {
		return 0, false
	}
	return claims.UserID, true
}

// ListRestaurants returns the full client portfolio, newest first
func (h *Handler) ListRestaurants(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	if _, ok := h.requireReseller(c); !ok {
		log.Warn("Non-reseller attempted to list restaurants")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "reseller role required"})
	}

	var restaurants []model.Restaurant
	result := h.db.Order("created_at DESC, id DESC").Find(&restaurants)
	if result.Error != nil {
		log.Error("Failed to list restaurants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve restaurants",
		})
	}

	log.Info("Restaurants retrieved successfully", zap.Int("count", len(restaurants)))
	return c.JSON(http.StatusOK, restaurants)
}

// CreateRestaurant onboards a new client: the owner account and the
// restaurant row are created together in one transaction, so a failed
// restaurant insert never leaves an orphaned owner behind.
func (h *Handler) CreateRestaurant(c echo.Context) error {
	log := logger.FromEcho(c)
	defer prometheus.TrackDBOperation("insert")(time.Now())

	resellerID, ok := h.requireReseller(c)
	if !ok {
		log.Warn("Non-reseller attempted onboarding")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "reseller role required"})
	}

	var req RestaurantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse onboarding request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Slug == "" || req.OwnerEmail == "" {
		log.Warn("Incomplete onboarding request",
			zap.String("name", req.Name),
			zap.String("slug", req.Slug))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, slug and owner_email are required"})
	}

	slug := model.Slugify(req.Slug)

	var count int64
	h.db.Model(&model.User{}).Where("email = ?", req.OwnerEmail).Count(&count)
	if count > 0 {
		log.Warn("Owner email already registered", zap.String("email", req.OwnerEmail))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	h.db.Model(&model.Restaurant{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		log.Warn("Slug already taken", zap.String("slug", slug))
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already taken"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(h.cfg.Onboarding.TempOwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash temporary password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "onboarding failed"})
	}

	owner := model.User{
		Email:    req.OwnerEmail,
		Password: string(hashed),
		Role:     model.RoleOwner,
	}
	restaurant := model.Restaurant{
		Name: req.Name,
		Slug: slug,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&owner); result.Error != nil {
			return result.Error
		}
		restaurant.OwnerID = &owner.ID
		if result := tx.Create(&restaurant); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		log.Error("Onboarding transaction failed",
			zap.String("slug", slug),
			zap.String("email", req.OwnerEmail),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "onboarding failed"})
	}

	log.Info("Restaurant onboarded",
		zap.Uint("restaurant_id", restaurant.ID),
		zap.String("slug", restaurant.Slug),
		zap.Uint("owner_id", owner.ID),
		zap.Uint("reseller_id", resellerID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Restaurant created successfully",
		"restaurant": restaurant,
		"owner": map[string]interface{}{
			"id":    owner.ID,
			"email": owner.Email,
		},
		"temporary_password": h.cfg.Onboarding.TempOwnerPassword,
	})
}
