package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/dto"
	"github.com/ignatzorin/chainlance-backend/internal/http/middleware"
	"github.com/ignatzorin/chainlance-backend/internal/service"
	"github.com/ignatzorin/chainlance-backend/internal/wallet"
)

const installPage = "https://phantom.app/"

func newSessionRouter(t *testing.T, adapter *wallet.Adapter) (*gin.Engine, *service.SessionTokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := service.NewSessionTokenManager("test-secret", time.Hour)
	handler := NewSessionHandler(adapter, sessions, installPage)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/session/connect", handler.Connect)
	r.POST("/api/session/disconnect", handler.Disconnect)

	protected := r.Group("/api")
	protected.Use(middleware.SessionMiddleware(sessions))
	protected.PUT("/session/role", handler.SwitchRole)

	return r, sessions
}

func TestConnectWithoutWallet(t *testing.T) {
	adapter := wallet.NewAdapter(nil)
	r, _ := newSessionRouter(t, adapter)

	w := doJSON(r, http.MethodPost, "/api/session/connect", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.WalletMissingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, installPage, resp.WalletURL)
	assert.NotEmpty(t, resp.Error)
}

func TestConnectIssuesClientSession(t *testing.T) {
	provider, err := wallet.NewStubProvider(t.TempDir())
	require.NoError(t, err)
	adapter := wallet.NewAdapter(provider)
	adapter.Start(context.Background())
	defer adapter.Close()

	r, sessions := newSessionRouter(t, adapter)

	w := doJSON(r, http.MethodPost, "/api/session/connect", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Address)
	assert.Equal(t, "CLIENT", resp.Role)
	assert.Len(t, resp.ShortAddress, 11)

	address, role, err := sessions.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Address, address)
	assert.Equal(t, valueobject.RoleClient, role)
}

func TestSwitchRole(t *testing.T) {
	provider, err := wallet.NewStubProvider(t.TempDir())
	require.NoError(t, err)
	adapter := wallet.NewAdapter(provider)
	adapter.Start(context.Background())
	defer adapter.Close()

	r, sessions := newSessionRouter(t, adapter)

	w := doJSON(r, http.MethodPost, "/api/session/connect", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var connected dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &connected))

	w = doJSON(r, http.MethodPut, "/api/session/role", "Bearer "+connected.Token, map[string]string{"role": "FREELANCER"})
	require.Equal(t, http.StatusOK, w.Code)

	var switched dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &switched))
	assert.Equal(t, connected.Address, switched.Address)
	assert.Equal(t, "FREELANCER", switched.Role)

	_, role, err := sessions.Parse(switched.Token)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleFreelancer, role)
}

func TestSwitchRoleRejectsUnknownRole(t *testing.T) {
	provider, err := wallet.NewStubProvider(t.TempDir())
	require.NoError(t, err)
	adapter := wallet.NewAdapter(provider)
	defer adapter.Close()

	r, sessions := newSessionRouter(t, adapter)
	auth := bearerFor(t, sessions, testClientAddress, valueobject.RoleClient)

	w := doJSON(r, http.MethodPut, "/api/session/role", auth, map[string]string{"role": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDisconnect(t *testing.T) {
	provider, err := wallet.NewStubProvider(t.TempDir())
	require.NoError(t, err)
	adapter := wallet.NewAdapter(provider)
	adapter.Start(context.Background())
	defer adapter.Close()

	r, _ := newSessionRouter(t, adapter)

	w := doJSON(r, http.MethodPost, "/api/session/connect", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/session/disconnect", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, adapter.Address())
}
