package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := newTestRegistry(t, 8)
	r := gin.New()
	r.Use(middleware.SessionID(), Attach(reg))
	NewHandler().RegisterRoutes(r.Group("/api/v1"))
	return r, reg
}

const sessionA = "4f1c2a9e-7b1d-4c61-9f0e-3d2b8a6c5e10"

func TestGetSessionMintsID(t *testing.T) {
	router, reg := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	id := resp.Header().Get(middleware.SessionHeader)
	if id == "" {
		t.Fatalf("expected session header")
	}
	var snap Snapshot
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.SessionID != id || snap.View != ViewDashboard || snap.Dashboard == nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one session, got %d", reg.Len())
	}
}

func TestNavigatePersistsAcrossRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/view", strings.NewReader(`{"view":"community"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, sessionA)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set(middleware.SessionHeader, sessionA)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var snap Snapshot
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.View != ViewCommunity || snap.Community == nil {
		t.Fatalf("expected community view, got %+v", snap)
	}
}

func TestNavigateUnknownView(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/view", strings.NewReader(`{"view":"settings"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"validation_error"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var dash Dashboard
	if err := json.Unmarshal(resp.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dash.Tools) != 2 || dash.Tools[0].View != ViewAssistant {
		t.Fatalf("unexpected tools: %+v", dash.Tools)
	}
}
