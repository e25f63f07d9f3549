package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"health_tracker/internal/config"
	"health_tracker/internal/db"
	"health_tracker/internal/repository"
	"health_tracker/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *repository.Store
	token  string
}

func newTestServer(t *testing.T, withRedis bool, secret string) *testServer {
	t.Helper()
	database, err := db.Open(config.ResolveDatabaseURL(filepath.Join(t.TempDir(), "api.db"), ""), db.Options{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	t.Cleanup(func() { _ = db.Close(database) })

	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	store := repository.New(database)
	return &testServer{
		router: NewRouter(RouterConfig{Store: store, Redis: rdb, JWTSecret: secret}),
		store:  store,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestUserLifecycle(t *testing.T) {
	s := newTestServer(t, false, "")

	code, _ := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	assert.Equal(t, http.StatusCreated, code)

	code, body := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body["error"], "already exists")

	code, body = s.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["users"], 1)

	code, _ = s.do(t, http.MethodDelete, "/users/Alice", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodDelete, "/users/Alice?confirm=true", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/users/Alice?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFoodEntries(t *testing.T) {
	s := newTestServer(t, false, "")
	code, _ := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodPost, "/entries", gin.H{"user": "Alice", "food": "Apple", "calories": 95, "date": "2025-06-01"})
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodPost, "/entries", gin.H{"user": "Ghost", "food": "Apple", "calories": 95, "date": "2025-06-01"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/entries", gin.H{"user": "Alice", "food": "Apple", "calories": 95, "date": "06/01/2025"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/entries", gin.H{"user": "Alice", "food": "Apple", "date": "2025-06-01"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.do(t, http.MethodGet, "/entries?user=Alice&date=2025-06-01", nil)
	require.Equal(t, http.StatusOK, code)
	entries := body["entries"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Apple", entry["food_name"])
	assert.Equal(t, float64(95), entry["calories"])
	assert.Equal(t, "2025-06-01", entry["date"])
	assert.Equal(t, "Alice", entry["user"])

	code, _ = s.do(t, http.MethodGet, "/entries?user=Ghost", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGoalAndPlans(t *testing.T) {
	s := newTestServer(t, false, "")
	code, _ := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodGet, "/users/Alice/goal", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/users/Alice/goal", gin.H{"daily_calories": 2000, "weekly_calories": 14000})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(t, http.MethodPost, "/users/Alice/goal", gin.H{"daily_calories": 1800, "weekly_calories": 12600})
	assert.Equal(t, http.StatusConflict, code)

	code, body := s.do(t, http.MethodGet, "/users/Alice/goal", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2000), body["daily_calories"])

	code, _ = s.do(t, http.MethodPost, "/users/Alice/plans", gin.H{"week_number": 202523, "details": "salads"})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(t, http.MethodPost, "/users/Alice/plans", gin.H{"week_number": 202560})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodGet, "/users/Alice/plans", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["meal_plans"], 1)
}

func TestListsAreCachedAndInvalidated(t *testing.T) {
	s := newTestServer(t, true, "")
	code, _ := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, code)

	_, body := s.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, false, body["cached"])
	_, body = s.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, true, body["cached"])

	code, _ = s.do(t, http.MethodPost, "/users", gin.H{"name": "Bob"})
	require.Equal(t, http.StatusCreated, code)
	_, body = s.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, false, body["cached"])
	assert.Len(t, body["users"], 2)

	_, body = s.do(t, http.MethodGet, "/entries?user=Bob", nil)
	assert.Equal(t, false, body["cached"])
	_, body = s.do(t, http.MethodGet, "/entries?user=Bob", nil)
	assert.Equal(t, true, body["cached"])

	code, _ = s.do(t, http.MethodPost, "/entries", gin.H{"user": "Bob", "food": "Pear", "calories": 60, "date": "2025-06-01"})
	require.Equal(t, http.StatusCreated, code)
	_, body = s.do(t, http.MethodGet, "/entries?user=Bob", nil)
	assert.Equal(t, false, body["cached"])
	assert.Len(t, body["entries"], 1)
}

func TestTokenRequired(t *testing.T) {
	s := newTestServer(t, false, "s3cret")

	code, _ := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token, err := utils.GenerateJWT("Alice", "s3cret", time.Hour)
	require.NoError(t, err)
	s.token = token

	code, _ = s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice"})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(t, http.MethodPost, "/users", gin.H{"name": "Bob"})
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodGet, "/users/Alice/plans", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/users/Bob?confirm=true", nil)
	assert.Equal(t, http.StatusForbidden, code)
}
