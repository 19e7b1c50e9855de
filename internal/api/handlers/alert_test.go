package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/validator"
	"github.com/bundleguard/bundleguard/internal/services"
	"github.com/bundleguard/bundleguard/internal/testutil"
)

const mb = int64(1024 * 1024)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type analyzePayload struct {
	Alerts []struct {
		Type     string `json:"type"`
		Severity string `json:"severity"`
	} `json:"alerts"`
	Analyzed bool `json:"analyzed"`
}

func newTestAlertHandler(usageRepo *testutil.MockUsageRepository, deviceRepo *testutil.MockDeviceRepository) *AlertHandler {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	alertSvc := services.NewAlertService(testutil.NewMockAlertRepository(), log)
	analysisSvc := services.NewAnalysisService(usageRepo, "medium", log)
	deviceSvc := services.NewDeviceService(deviceRepo, log)
	return NewAlertHandler(alertSvc, analysisSvc, deviceSvc, log, validator.New())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestAlertHandler_Spikes(t *testing.T) {
	usageRepo := testutil.NewMockUsageRepository()
	usageRepo.Records = []*usage.Record{
		{ID: 1, DeviceID: "d1", Timestamp: time.Now(), RxBytes: 1536 * mb, TxBytes: 0},
	}
	deviceRepo := testutil.NewMockDeviceRepository()
	h := newTestAlertHandler(usageRepo, deviceRepo)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantAlerts int
	}{
		{
			name:       "missing device and user",
			query:      "",
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "non-numeric threshold",
			query:      "?deviceId=d1&threshold=abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "negative threshold",
			query:      "?deviceId=d1&threshold=-5",
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "threshold breach for device",
			query:      "?deviceId=d1",
			wantStatus: http.StatusOK,
			wantAlerts: 1,
		},
		{
			name:       "user with no devices",
			query:      "?userId=nobody",
			wantStatus: http.StatusOK,
			wantAlerts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/alerts/spikes"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.Spikes(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)

			if tt.wantCode != "" {
				if env.Success {
					t.Fatalf("success = true, want error response")
				}
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
				return
			}

			if !env.Success {
				t.Fatalf("success = false: %s", rec.Body.String())
			}
			var payload analyzePayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			if !payload.Analyzed {
				t.Errorf("analyzed = false, want true")
			}
			if len(payload.Alerts) != tt.wantAlerts {
				t.Fatalf("alerts = %d, want %d", len(payload.Alerts), tt.wantAlerts)
			}
			if tt.wantAlerts > 0 {
				if payload.Alerts[0].Type != "threshold" || payload.Alerts[0].Severity != "critical" {
					t.Errorf("alert = %+v, want critical threshold", payload.Alerts[0])
				}
			}
		})
	}
}

func TestAlertHandler_Analyze(t *testing.T) {
	h := newTestAlertHandler(testutil.NewMockUsageRepository(), testutil.NewMockDeviceRepository())
	now := time.Now().Format(time.RFC3339)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantAlerts int
	}{
		{
			name:       "malformed body",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "missing samples",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "unknown sensitivity",
			body:       `{"samples":[{"timestamp":"` + now + `","bytesUsed":1000}],"config":{"sensitivity":"extreme"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "daily ceiling breached",
			body:       `{"samples":[{"timestamp":"` + now + `","bytesUsed":1610612736}]}`,
			wantStatus: http.StatusOK,
			wantAlerts: 1,
		},
		{
			name:       "quiet day",
			body:       `{"samples":[{"timestamp":"` + now + `","bytesUsed":1000}]}`,
			wantStatus: http.StatusOK,
			wantAlerts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/alerts/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.Analyze(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)

			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
				return
			}

			var payload analyzePayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			if len(payload.Alerts) != tt.wantAlerts {
				t.Fatalf("alerts = %d, want %d", len(payload.Alerts), tt.wantAlerts)
			}
			if tt.wantAlerts > 0 && payload.Alerts[0].Severity != "critical" {
				t.Errorf("severity = %s, want critical", payload.Alerts[0].Severity)
			}
		})
	}
}
