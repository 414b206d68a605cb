package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devoys/menu-service/internal/model"
)

func TestLoginOwnerRedirectsToAdmin(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, h, "owner@burgerking.test", "secret", model.RoleOwner)

	c, rec := newContext(t, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"owner@burgerking.test","password":"secret"}`), nil)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/admin", body["redirect"])
	assert.NotEmpty(t, body["token"])

	// The token must carry the identity the middleware will extract.
	claims, err := h.jwt.ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "owner@burgerking.test", claims.Email)
	assert.Equal(t, model.RoleOwner, claims.Role)
}

func TestLoginResellerRedirectsToReseller(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, h, "partner@devoys.test", "secret", model.RoleReseller)

	c, rec := newContext(t, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"partner@devoys.test","password":"secret"}`), nil)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/reseller", body["redirect"])
}

func TestLoginUnknownRoleFallsBackToOwnerDestination(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, h, "odd@devoys.test", "secret", "superadmin")

	c, rec := newContext(t, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"odd@devoys.test","password":"secret"}`), nil)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/admin", body["redirect"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, h, "owner@burgerking.test", "secret", model.RoleOwner)

	c, rec := newContext(t, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"owner@burgerking.test","password":"wrong"}`), nil)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newContext(t, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"nobody@burgerking.test","password":"secret"}`), nil)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionReturnsAuthenticatedIdentity(t *testing.T) {
	h := newTestHandler(t)
	user := seedUser(t, h, "owner@burgerking.test", "secret", model.RoleOwner)

	c, rec := newContext(t, jsonRequest(http.MethodGet, "/api/auth/session", ""), user)
	require.NoError(t, h.Session(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "owner@burgerking.test", body["email"])
	assert.Equal(t, model.RoleOwner, body["role"])
}

func TestSessionWithoutClaimsIsUnauthorized(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newContext(t, jsonRequest(http.MethodGet, "/api/auth/session", ""), nil)
	require.NoError(t, h.Session(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
