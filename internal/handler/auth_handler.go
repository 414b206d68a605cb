package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devoys/menu-service/internal/middleware"
	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/prometheus"
)

// Login authenticates a user and returns a JWT plus the post-login landing
// route for the user's role.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()
	defer prometheus.TrackDBOperation("query")(time.Now())

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var user model.User
	result := h.db.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Role decides the landing route. An unrecognized role is routed to the
	// owner destination, counted so misrouted resellers are visible.
	route, known := user.LandingRoute()
	if !known {
		log.Warn("Unknown role, falling back to owner destination",
			zap.String("email", user.Email),
			zap.String("role", user.Role))
		prometheus.RoleFallbackCounter.Inc()
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
		zap.String("redirect", route))

	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"redirect": route,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Session returns the authenticated identity. A missing or expired token is
// rejected by the auth middleware with 401; clients treat that as a hard
// precondition failure and return to the login flow.
func (h *Handler) Session(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}

// Logout acknowledges sign-out. Tokens are stateless; discarding the token is
// the client's side of the operation.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}
