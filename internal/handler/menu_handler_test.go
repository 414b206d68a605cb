package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devoys/menu-service/internal/model"
)

// The canonical scenario: a tenant with 2 categories and 3 products, one
// inactive. Admin sees all 3, the public menu exactly the 2 active ones.
func TestPublicMenuExcludesInactiveProducts(t *testing.T) {
	h := newTestHandler(t)
	owner := seedUser(t, h, "owner@burgerking.test", "secret", model.RoleOwner)
	restaurant := seedRestaurant(t, h, "Burger King", "burger-king", &owner.ID)
	burgers := seedCategory(t, h, restaurant.ID, "Burgers", 1)
	drinks := seedCategory(t, h, restaurant.ID, "Drinks", 2)
	seedProduct(t, h, restaurant.ID, burgers.ID, "Whopper", "9000", true)
	seedProduct(t, h, restaurant.ID, burgers.ID, "Cheese Royale", "8000", false)
	seedProduct(t, h, restaurant.ID, drinks.ID, "Cola", "2500", true)

	// Unfiltered admin list: all 3.
	c, rec := newContext(t, jsonRequest(http.MethodGet, "/api/admin/products", ""), owner)
	require.NoError(t, h.ListProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var adminProducts []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adminProducts))
	assert.Len(t, adminProducts, 3)

	// Public menu: only the active 2, cheapest first.
	req := jsonRequest(http.MethodGet, "/api/menu/burger-king", "")
	c, rec = newContext(t, req, nil)
	c.SetParamNames("slug")
	c.SetParamValues("burger-king")
	require.NoError(t, h.PublicMenu(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Restaurant map[string]interface{} `json:"restaurant"`
		Categories []model.Category       `json:"categories"`
		Products   []model.Product        `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Burger King", body.Restaurant["name"])
	require.Len(t, body.Categories, 2)
	require.Len(t, body.Products, 2)
	assert.Equal(t, "Cola", body.Products[0].Name)
	assert.Equal(t, "Whopper", body.Products[1].Name)
	for _, p := range body.Products {
		assert.True(t, p.IsActive)
	}
}

func TestPublicMenuIncludesWifiWhenConfigured(t *testing.T) {
	h := newTestHandler(t)
	restaurant := seedRestaurant(t, h, "Burger King", "burger-king", nil)
	require.NoError(t, h.db.Create(&model.RestaurantSettings{
		RestaurantID: restaurant.ID,
		WifiName:     "BK-Guest",
		WifiPassword: "whopper123",
	}).Error)

	req := jsonRequest(http.MethodGet, "/api/menu/burger-king", "")
	c, rec := newContext(t, req, nil)
	c.SetParamNames("slug")
	c.SetParamValues("burger-king")
	require.NoError(t, h.PublicMenu(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Wifi map[string]string `json:"wifi"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Wifi)
	assert.Equal(t, "BK-Guest", body.Wifi["name"])
	assert.Equal(t, "whopper123", body.Wifi["password"])
}

func TestPublicMenuUnknownSlugIsNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := jsonRequest(http.MethodGet, "/api/menu/nowhere", "")
	c, rec := newContext(t, req, nil)
	c.SetParamNames("slug")
	c.SetParamValues("nowhere")
	require.NoError(t, h.PublicMenu(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuQRReturnsScannablePNG(t *testing.T) {
	h := newTestHandler(t)
	seedRestaurant(t, h, "Burger King", "burger-king", nil)

	req := jsonRequest(http.MethodGet, "/api/menu/burger-king/qr.png", "")
	c, rec := newContext(t, req, nil)
	c.SetParamNames("slug")
	c.SetParamValues("burger-king")
	require.NoError(t, h.MenuQR(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	require.GreaterOrEqual(t, rec.Body.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, rec.Body.Bytes()[:len(pngMagic)])
}

func TestMenuQRUnknownSlugIsNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := jsonRequest(http.MethodGet, "/api/menu/nowhere/qr.png", "")
	c, rec := newContext(t, req, nil)
	c.SetParamNames("slug")
	c.SetParamValues("nowhere")
	require.NoError(t, h.MenuQR(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
