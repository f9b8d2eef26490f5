package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"motomap-api/internal/core/auth"
	"motomap-api/internal/core/config"
	"motomap-api/internal/core/database"
)

func testEngine(t *testing.T) (*gin.Engine, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(database.Opts{
		Driver: "sqlite",
		DSN: fmt.Sprintf("file:%s?mode=memory&cache=shared",
			strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	jwter := &auth.JWTer{
		Secret:   []byte("router-test-secret"),
		Issuer:   "motomap-api",
		Audience: "motomap-clients",
		TTL:      time.Hour,
	}
	cfg := &config.Config{
		App: config.App{Name: "motomap-api", Env: "test"},
		RateLimit: config.RateLimit{
			RPS: 1000, Burst: 1000,
			PerIPRPS: 1000, PerIPBurst: 1000,
			Concurrency: 100,
		},
		Auth: config.Auth{MaxFailures: 10, WindowMinutes: 1},
	}

	return NewEngine(Deps{
		Log: zap.NewNop(),
		DB:  db,
		JWT: jwter,
		Cfg: cfg,
	}), jwter
}

func doJSON(t *testing.T, e *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, e *gin.Engine) string {
	t.Helper()
	w := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "admin", "password": "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginEndpoint(t *testing.T) {
	e, jwter := testEngine(t)

	token := adminToken(t, e)
	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", claims.Role)

	w := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, e, http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthzOnResourceRoutes(t *testing.T) {
	e, jwter := testEngine(t)

	w := doJSON(t, e, http.MethodGet, "/api/v1/yards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken, err := jwter.Issue("bob", "User")
	require.NoError(t, err)

	w = doJSON(t, e, http.MethodGet, "/api/v1/yards", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, http.MethodPost, "/api/v1/yards", userToken,
		gin.H{"name": "Yard A", "address": "1 First St"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Sightings write the motorcycle row, so they are Admin-gated too.
	w = doJSON(t, e, http.MethodPost, "/api/v1/readers/1/sightings", userToken,
		gin.H{"tagId": "TAG-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestYardLifecycle(t *testing.T) {
	e, _ := testEngine(t)
	token := adminToken(t, e)

	w := doJSON(t, e, http.MethodPost, "/api/v1/yards", token,
		gin.H{"name": "North Yard", "address": "1 Dock Rd"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var yard struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &yard))
	assert.Equal(t, fmt.Sprintf("/api/v1/yards/%d", yard.ID), w.Header().Get("Location"))

	// A reader in the yard blocks deletion.
	w = doJSON(t, e, http.MethodPost, "/api/v1/readers", token,
		gin.H{"serialNumber": "SN-001", "locationDescription": "gate A", "yardId": yard.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reader struct {
		ID       uint   `json:"id"`
		YardName string `json:"yardName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reader))
	assert.Equal(t, "North Yard", reader.YardName)

	w = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/yards/%d", yard.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/readers/%d", reader.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/yards/%d", yard.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/yards/%d", yard.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReaderCreateBadYardRef(t *testing.T) {
	e, _ := testEngine(t)
	token := adminToken(t, e)

	w := doJSON(t, e, http.MethodPost, "/api/v1/readers", token,
		gin.H{"serialNumber": "SN-001", "locationDescription": "gate A", "yardId": 999})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "yardId", body.Fields[0].Field)
}

func TestListPaginationHeaderAndLinks(t *testing.T) {
	e, _ := testEngine(t)
	token := adminToken(t, e)

	for i := 1; i <= 3; i++ {
		w := doJSON(t, e, http.MethodPost, "/api/v1/yards", token,
			gin.H{"name": fmt.Sprintf("Yard %d", i), "address": fmt.Sprintf("%d Main St", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, e, http.MethodGet, "/api/v1/yards?pageNumber=1&pageSize=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var meta struct {
		TotalItems int64 `json:"totalItems"`
		PageSize   int   `json:"pageSize"`
		PageNumber int   `json:"pageNumber"`
		TotalPages int   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Pagination")), &meta))
	assert.Equal(t, int64(3), meta.TotalItems)
	assert.Equal(t, 2, meta.TotalPages)

	var body struct {
		Data []struct {
			ID    uint `json:"id"`
			Links []struct {
				Rel string `json:"rel"`
			} `json:"links"`
		} `json:"data"`
		Links []struct {
			Rel  string `json:"rel"`
			Href string `json:"href"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Len(t, body.Data[0].Links, 3)

	rels := make([]string, 0, len(body.Links))
	for _, l := range body.Links {
		rels = append(rels, l.Rel)
	}
	assert.Equal(t, []string{"self", "next"}, rels)
}

func TestValidationListsEveryFailedField(t *testing.T) {
	e, _ := testEngine(t)
	token := adminToken(t, e)

	w := doJSON(t, e, http.MethodPost, "/api/v1/yards", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
		Fields  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Message)
	require.Len(t, body.Fields, 2)
	names := []string{body.Fields[0].Field, body.Fields[1].Field}
	assert.ElementsMatch(t, []string{"name", "address"}, names)
}

func TestSightingFlow(t *testing.T) {
	e, _ := testEngine(t)
	token := adminToken(t, e)

	w := doJSON(t, e, http.MethodPost, "/api/v1/yards", token,
		gin.H{"name": "Yard A", "address": "1 First St"})
	require.Equal(t, http.StatusCreated, w.Code)
	var yard struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &yard))

	w = doJSON(t, e, http.MethodPost, "/api/v1/readers", token,
		gin.H{"serialNumber": "SN-001", "locationDescription": "gate A", "yardId": yard.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var reader struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reader))

	w = doJSON(t, e, http.MethodPost, "/api/v1/motorcycles", token,
		gin.H{"plate": "ABC-1234", "model": "CG 160", "tagId": "TAG-1", "yardId": yard.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var moto struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moto))

	path := fmt.Sprintf("/api/v1/readers/%d/sightings", reader.ID)
	w = doJSON(t, e, http.MethodPost, path, token, gin.H{"tagId": "TAG-UNKNOWN"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, e, http.MethodPost, path, token, gin.H{"tagId": "TAG-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/motorcycles/%d", moto.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		LastSeenAt       *time.Time `json:"lastSeenAt"`
		LastSeenReaderID *uint      `json:"lastSeenReaderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.LastSeenAt)
	require.NotNil(t, got.LastSeenReaderID)
	assert.Equal(t, reader.ID, *got.LastSeenReaderID)
}

func TestPredictEndpointIsPublic(t *testing.T) {
	e, _ := testEngine(t)

	w := doJSON(t, e, http.MethodPost, "/api/v1/ml/predict", "",
		gin.H{"rssi": -40, "secondsSinceLastSeen": 30})
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Predicted bool    `json:"predicted"`
		Score     float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Predicted)
	assert.Greater(t, out.Score, 0.5)
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := testEngine(t)

	w := doJSON(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	e, jwter := testEngine(t)
	token, err := jwter.Issue("bob", "User")
	require.NoError(t, err)

	w := doJSON(t, e, http.MethodGet, "/api/v1/yards/not-a-number", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
