package assistant

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

func newTestRouter(ctrl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(func(*gin.Context) *Controller { return ctrl }).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartImage(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "tejido.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write(content)
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestAnalyzeEndpoint(t *testing.T) {
	ctrl := NewController(mediation.New(&llm.StaticClient{Reply: `{"tension":"a","density":"b","errors":["x"],"suggestions":["y"]}`}))
	router := newTestRouter(ctrl)

	body, contentType := multipartImage(t, []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var res viewstate.AnalysisResult
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != viewstate.StatusSuccess || res.TechnicalData == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAnalyzeEndpointRequiresImage(t *testing.T) {
	router := newTestRouter(NewController(mediation.New(&llm.StaticClient{})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeEndpointMalformedReply(t *testing.T) {
	router := newTestRouter(NewController(mediation.New(&llm.StaticClient{Reply: "not json"})))

	body, contentType := multipartImage(t, []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/analyze", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	router := newTestRouter(NewController(mediation.New(&llm.StaticClient{})))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assistant", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
