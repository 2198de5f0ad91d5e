package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/internal/cache"
	"github.com/nidoham/Social-v2/internal/social"
	"github.com/nidoham/Social-v2/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := social.NewRepository(store.NewMemoryStore(), cache.NewProfileCache(cache.DefaultTTL), nil)
	router := gin.New()
	registerRoutes(router, repo, zap.NewNop())
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func createUser(router *gin.Engine, username string) *httptest.ResponseRecorder {
	return doJSON(router, "POST", "/api/users", map[string]interface{}{
		"profile": map[string]interface{}{
			"username": username,
			"name":     "Test User",
			"email":    username + "@example.com",
		},
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestCreateAndFetchUser(t *testing.T) {
	router := newTestRouter()

	w := createUser(router, "alice")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "GET", "/api/users/alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["id"])
}

func TestCreateUserRejectsInvalidUsername(t *testing.T) {
	router := newTestRouter()

	w := createUser(router, "a!")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusCreated, createUser(router, "alice").Code)
	assert.Equal(t, http.StatusConflict, createUser(router, "alice").Code)
}

func TestUnknownUserReturns404(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, "GET", "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowFlow(t *testing.T) {
	router := newTestRouter()

	createUser(router, "alice")
	createUser(router, "bob")

	w := doJSON(router, "POST", "/api/users/alice/follow/bob", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A repeated follow is a precondition failure, not a server error.
	w = doJSON(router, "POST", "/api/users/alice/follow/bob", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "GET", "/api/users/alice/relationship/bob", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var info map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &info)
	assert.Equal(t, true, info["is_following"])
	assert.Equal(t, "following", info["status"])

	w = doJSON(router, "GET", "/api/users/bob/followers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Equal(t, float64(1), page["total"])
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter()

	createUser(router, "alice")

	w := doJSON(router, "GET", "/api/availability/username/alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["available"])

	w = doJSON(router, "GET", "/api/availability/username/bob", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["available"])
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter()

	createUser(router, "alice")
	createUser(router, "alicia")
	createUser(router, "bob")

	w := doJSON(router, "GET", "/api/search?q=ali", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data  []map[string]interface{} `json:"data"`
		Total int                      `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Data, 2)
}

func TestSearchEndpointPaging(t *testing.T) {
	router := newTestRouter()

	for i := 0; i < 5; i++ {
		createUser(router, fmt.Sprintf("user%d", i))
	}

	w := doJSON(router, "GET", "/api/search?q=user&page=2&size=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data    []map[string]interface{} `json:"data"`
		Total   int                      `json:"total"`
		HasNext bool                     `json:"has_next"`
	}
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasNext)
}

func TestDiscoverEndpoint(t *testing.T) {
	router := newTestRouter()

	createUser(router, "alice")

	w := doJSON(router, "GET", "/api/discover/new", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Equal(t, float64(1), page["total"])
}
