package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/whisper-asr-mcp/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func checker(statuses ...component.HealthStatus) HealthChecker {
	return func(context.Context) []component.Health {
		reports := make([]component.Health, 0, len(statuses))
		for i, s := range statuses {
			reports = append(reports, component.Health{Name: string(rune('a' + i)), Status: s})
		}
		return reports
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantCode   int
		wantStatus string
	}{
		{"no checker", nil, http.StatusOK, "healthy"},
		{"all healthy", checker(component.StatusHealthy, component.StatusHealthy), http.StatusOK, "healthy"},
		{"degraded", checker(component.StatusHealthy, component.StatusDegraded), http.StatusOK, "degraded"},
		{"unhealthy", checker(component.StatusDegraded, component.StatusUnhealthy), http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := serve(t, Health("whisper-mcp", tt.checker))
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %s", body["status"], tt.wantStatus)
			}
			if body["service"] != "whisper-mcp" {
				t.Errorf("service = %v", body["service"])
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	code, body := serve(t, Readiness("svc", checker(component.StatusDegraded)))
	if code != http.StatusOK || body["status"] != "ready" {
		t.Errorf("degraded: code=%d status=%v", code, body["status"])
	}

	code, body = serve(t, Readiness("svc", checker(component.StatusUnhealthy)))
	if code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Errorf("unhealthy: code=%d status=%v", code, body["status"])
	}
}

func TestLiveness(t *testing.T) {
	code, body := serve(t, Liveness("svc"))
	if code != http.StatusOK || body["status"] != "alive" {
		t.Errorf("code=%d status=%v", code, body["status"])
	}
	if _, ok := body["uptime_seconds"].(float64); !ok {
		t.Errorf("uptime_seconds = %v", body["uptime_seconds"])
	}
}

func TestInfo(t *testing.T) {
	code, body := serve(t, Info("svc", ToolInfo{Name: "transcribe", Formats: []string{"text", "json"}}))
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	tools, ok := body["tools"].([]any)
	if !ok || len(tools) != 1 {
		t.Fatalf("tools = %v", body["tools"])
	}
	if tools[0].(map[string]any)["name"] != "transcribe" {
		t.Errorf("tool = %v", tools[0])
	}
	if _, ok := body["version"]; !ok {
		t.Error("missing version")
	}
}

func TestVersion(t *testing.T) {
	code, body := serve(t, Version())
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if body["version"] == "" || body["version"] == nil {
		t.Errorf("version = %v", body["version"])
	}
}

func TestMetrics(t *testing.T) {
	code, body := serve(t, Metrics(map[string]Gauge{"transcriptions_in_flight": func() int { return 3 }}))
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	gauges, ok := body["gauges"].(map[string]any)
	if !ok {
		t.Fatalf("gauges = %v", body["gauges"])
	}
	if gauges["transcriptions_in_flight"] != float64(3) {
		t.Errorf("in flight = %v", gauges["transcriptions_in_flight"])
	}

	_, body = serve(t, Metrics(nil))
	if _, ok := body["gauges"]; ok {
		t.Error("expected no gauges section")
	}
}
