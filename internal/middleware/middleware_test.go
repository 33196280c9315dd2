package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCompanies map[uint]models.Company

func (f fakeCompanies) FindOwned(_ context.Context, companyID, userID uint) (*models.Company, error) {
	c, ok := f[companyID]
	if !ok || c.UserID != userID {
		return nil, httperr.ErrNotFound
	}
	return &c, nil
}

var testCfg = &config.Config{JWTSecret: "secret"}

// bearer opens sid for userID in store and signs a token for it.
func bearer(t *testing.T, store session.Store, userID uint, sid string) string {
	t.Helper()
	require.NoError(t, session.Open(context.Background(), store, sid, userID))
	token, err := IssueToken(testCfg.JWTSecret, userID, sid, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	store := session.NewMemoryStore()
	r := gin.New()
	r.GET("/", AuthMiddleware(testCfg, store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "sid": SessionID(c)})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid", bearer(t, store, 7, "sid-1"), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, store, 7, "sid-1"))
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user":7,"sid":"sid-1"}`, w.Body.String())
}

func TestAuthMiddleware_RequiresOpenSession(t *testing.T) {
	store := session.NewMemoryStore()
	r := gin.New()
	r.GET("/", AuthMiddleware(testCfg, store), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		return w
	}

	header := bearer(t, store, 7, "sid-1")
	require.Equal(t, http.StatusOK, call(header).Code)

	// closed session
	require.NoError(t, store.Delete(context.Background(), "sid-1"))
	w := call(header)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session_expired")

	// selecting a company does not reopen it
	require.NoError(t, store.Set(context.Background(), "sid-1", session.FieldCompanyID, "1"))
	assert.Equal(t, http.StatusUnauthorized, call(header).Code)

	// session of another user
	require.NoError(t, session.Open(context.Background(), store, "sid-2", 8))
	token, err := IssueToken(testCfg.JWTSecret, 7, "sid-2", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+token).Code)

	// never opened
	token, err = IssueToken(testCfg.JWTSecret, 7, "sid-3", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+token).Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := IssueToken("other", 7, "sid", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", AuthMiddleware(testCfg, session.NewMemoryStore()), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func tenantRouter(store session.Store) *gin.Engine {
	resolver := tenant.NewResolver(store, fakeCompanies{
		1: {ID: 1, UserID: 10, TradeName: "Salão A"},
		2: {ID: 2, UserID: 20, TradeName: "Salão B"},
	})

	r := gin.New()
	r.GET("/", AuthMiddleware(testCfg, store), TenantMiddleware(resolver, zap.NewNop()), func(c *gin.Context) {
		company, ok := tenant.FromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"company": company.ID, "ctx": c.GetUint(ContextCompanyID)})
	})
	return r
}

func TestTenantMiddleware_NoActiveCompanyRedirects(t *testing.T) {
	store := session.NewMemoryStore()
	r := tenantRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, store, 10, "sid"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, CompanySelectionPath, w.Header().Get("Location"))

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no_active_company", body.Code)
}

func TestTenantMiddleware_ForeignCompanyIsNotFound(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sid", session.FieldCompanyID, "2"))
	r := tenantRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, store, 10, "sid"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantMiddleware_AttachesCompany(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sid", session.FieldCompanyID, "1"))
	r := tenantRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, store, 10, "sid"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"company":1,"ctx":1}`, w.Body.String())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		c.Set(ContextCompanyID, uint(3))
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["company_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
