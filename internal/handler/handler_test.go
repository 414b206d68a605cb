package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/config"
	"github.com/devoys/menu-service/pkg/jwtutil"
	"github.com/devoys/menu-service/pkg/storage"
	"github.com/devoys/menu-service/prometheus"
)

var metricsOnce sync.Once

// newTestHandler builds a Handler backed by an isolated in-memory database
// and a temporary image store.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	metricsOnce.Do(func() {
		prometheus.InitMetrics(&config.Config{
			Metrics: config.MetricsConfig{Prefix: "menu_service_test"},
		})
	})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.Category{},
		&model.Product{},
		&model.RestaurantSettings{},
	))

	cfg := &config.Config{
		ServiceName: "menu-service",
		Server: config.ServerConfig{
			Port:          "0",
			Env:           "test",
			PublicBaseURL: "https://menus.example.com",
		},
		JWT: config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1},
		Storage: config.StorageConfig{
			Dir:            t.TempDir(),
			PublicPath:     "/images",
			MaxUploadBytes: 10 << 20,
		},
		Onboarding: config.OnboardingConfig{TempOwnerPassword: "123456"},
	}

	store, err := storage.New(cfg.Storage.Dir, "https://menus.example.com/images")
	require.NoError(t, err)

	return New(db, jwtutil.New(&cfg.JWT), store, cfg)
}

// newContext wraps a request in an echo context and authenticates it with
// the given user's claims. Pass nil for an anonymous request.
func newContext(t *testing.T, req *http.Request, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if user != nil {
		c.Set("user", &jwtutil.UserClaims{
			Email:  user.Email,
			UserID: user.ID,
			Role:   user.Role,
		})
	}
	return c, rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func seedUser(t *testing.T, h *Handler, email, password, role string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Email: email, Password: string(hashed), Role: role}
	require.NoError(t, h.db.Create(user).Error)
	return user
}

func seedRestaurant(t *testing.T, h *Handler, name, slug string, ownerID *uint) *model.Restaurant {
	t.Helper()

	restaurant := &model.Restaurant{Name: name, Slug: slug, OwnerID: ownerID}
	require.NoError(t, h.db.Create(restaurant).Error)
	return restaurant
}

func seedCategory(t *testing.T, h *Handler, restaurantID uint, name string, sortOrder int) *model.Category {
	t.Helper()

	category := &model.Category{
		Name:         name,
		Slug:         model.Slugify(name),
		SortOrder:    sortOrder,
		RestaurantID: restaurantID,
	}
	require.NoError(t, h.db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, h *Handler, restaurantID, categoryID uint, name, price string, active bool) *model.Product {
	t.Helper()

	amount := decimal.RequireFromString(price)
	product := &model.Product{
		Name:            name,
		Price:           amount,
		PriceWithoutTax: model.PriceWithoutTax(amount),
		ImageURL:        model.DefaultProductImageURL,
		CategoryID:      categoryID,
		RestaurantID:    restaurantID,
		IsActive:        active,
	}
	require.NoError(t, h.db.Create(product).Error)
	return product
}
