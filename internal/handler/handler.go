package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devoys/menu-service/internal/middleware"
	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/config"
	"github.com/devoys/menu-service/pkg/jwtutil"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/pkg/storage"
	"github.com/devoys/menu-service/prometheus"
)

// Handler carries the dependencies shared by all HTTP handlers. The database
// handle, token util and object store are injected at startup; handlers hold
// no global state.
type Handler struct {
	db    *gorm.DB
	jwt   *jwtutil.JWTUtil
	store *storage.Store
	cfg   *config.Config
}

// New creates a Handler with its dependencies
func New(db *gorm.DB, jwt *jwtutil.JWTUtil, store *storage.Store, cfg *config.Config) *Handler {
	return &Handler{db: db, jwt: jwt, store: store, cfg: cfg}
}

// resolveRestaurant determines which restaurant an admin request operates on.
// An explicit "id" query parameter wins (the reseller managing a client);
// otherwise the restaurant owned by the authenticated user is looked up.
// Owners passing an explicit id can only reach their own restaurant.
//
// On failure the "no tenant" response has already been written and the
// returned restaurant is nil; handlers return the accompanying error as-is.
func (h *Handler) resolveRestaurant(c echo.Context) (*model.Restaurant, error) {
	log := logger.FromEcho(c)

	claims := middleware.CurrentClaims(c)
	if claims == nil {
		log.Error("Missing authenticated claims in admin request")
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	idParam := c.QueryParam("id")
	if idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 32)
		if err != nil {
			log.Warn("Invalid restaurant id parameter", zap.String("id", idParam))
			prometheus.RecordTenantResolution("explicit", "no_tenant")
			return nil, h.noTenant(c)
		}

		query := h.db.Where("id = ?", uint(id))
		if claims.Role != model.RoleReseller {
			query = query.Where("owner_id = ?", claims.UserID)
		}

		var restaurant model.Restaurant
		if err := query.First(&restaurant).Error; err != nil {
			log.Warn("Restaurant not found for explicit id",
				zap.String("id", idParam),
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role))
			prometheus.RecordTenantResolution("explicit", "no_tenant")
			return nil, h.noTenant(c)
		}

		prometheus.RecordTenantResolution("explicit", "ok")
		return &restaurant, nil
	}

	var restaurant model.Restaurant
	if err := h.db.Where("owner_id = ?", claims.UserID).First(&restaurant).Error; err != nil {
		log.Warn("No restaurant owned by user", zap.Uint("user_id", claims.UserID))
		prometheus.RecordTenantResolution("owner", "no_tenant")
		return nil, h.noTenant(c)
	}

	prometheus.RecordTenantResolution("owner", "ok")
	return &restaurant, nil
}

// noTenant writes the terminal "no tenant" state. The client renders it as a
// message with a sign-out action, not as an error page.
func (h *Handler) noTenant(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"state": "no_tenant",
		"error": "no restaurant is associated with this account",
	})
}
