package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-management/internal/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), Recovery(logger), CORS([]string{"http://localhost:5173"}), ErrorHandler(logger))
	r.NoRoute(NotFound)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestErrorHandler_Kinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantName   string
		wantMsg    string
	}{
		{"validation", apperror.NewValidation("All required fields must be provided"), 400, "ValidationError", "All required fields must be provided"},
		{"not found", apperror.NewNotFound("Employee not found"), 404, "NotFoundError", "Employee not found"},
		{"unauthorized", apperror.NewUnauthorized(""), 401, "UnauthorizedError", "Unauthorized access"},
		{"internal", apperror.NewInternal("", errors.New("db down")), 500, "InternalServerError", "Internal server error"},
		{"unclassified", errors.New("socket closed"), 500, "InternalServerError", apperror.FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(zap.NewNop())
			r.GET("/fail", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeError(t, w)
			if body.Name != tt.wantName || body.Message != tt.wantMsg {
				t.Fatalf("body = %+v, want name %q message %q", body, tt.wantName, tt.wantMsg)
			}
		})
	}
}

func TestErrorHandler_DoesNotLeakCause(t *testing.T) {
	r := newEngine(zap.NewNop())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperror.NewInternal("", errors.New("password=hunter2")))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if got := w.Body.String(); strings.Contains(got, "hunter2") {
		t.Fatalf("cause leaked into response: %s", got)
	}
}

func TestErrorHandler_LogsLevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core))
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apperror.NewNotFound("")) })
	r.GET("/broken", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	if n := logs.FilterMessage("request rejected").FilterField(zap.Int("status", 404)).Len(); n != 1 {
		t.Fatalf("expected one warn entry for 404, got %d", n)
	}
	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error entry for 500, got %+v", entries)
	}
	if n := logs.FilterMessage("Incoming Request").Len(); n != 2 {
		t.Fatalf("expected two request log entries, got %d", n)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := newEngine(zap.New(core))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeError(t, w)
	if body.Name != "InternalServerError" || body.Message != apperror.FallbackMessage {
		t.Fatalf("unexpected body %+v", body)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected panic log entry")
	}
}

func TestNotFoundRoute(t *testing.T) {
	r := newEngine(zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeError(t, w); body.Name != "NotFoundError" || body.Message != "Route not found" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestCORS_AllowsDashboardOrigin(t *testing.T) {
	r := newEngine(zap.NewNop())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Access-Control-Allow-Credentials = %q", got)
	}
}
