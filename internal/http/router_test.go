package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/supportgen/go-helpdesk-backend/internal/config"
	"github.com/supportgen/go-helpdesk-backend/internal/repo"
)

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repo.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.Config{
		RequestTimeout: 2 * time.Second,
		RateRPS:        1000,
		RateBurst:      1000,
		OTEL:           config.OTELConfig{ServiceName: "helpdesk-test"},
	}
	r := gin.New()
	if err := RegisterRoutes(r, db, cfg); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return r, db
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSeededListEndpoints(t *testing.T) {
	r, _ := newTestApp(t)

	for _, path := range []string{"/users", "/dept", "/tickets"} {
		w := get(r, path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
			continue
		}
		var rows []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
			t.Errorf("%s: decode %q: %v", path, w.Body.String(), err)
		}
	}
}

func TestUnknownRouteJSON(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMethodNotAllowedJSON(t *testing.T) {
	r, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPatch, "/tickets", nil)
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"method_not_allowed"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestDashboardPageServed(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}
