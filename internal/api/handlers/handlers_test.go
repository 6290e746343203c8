package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/alerts"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	catalog, err := detection.NewCatalog(detection.DefaultCategories())
	require.NoError(t, err)

	log := logger.NewDefault()
	detector := detection.NewService(log, catalog, alerts.NewStore(0), nil)

	return NewHandlers(Dependencies{
		Detection: detector,
		Config:    &config.Config{},
		Logger:    log,
	})
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeMessage(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.Messages.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{
		Message: "I need emergency money, send $200 on cashapp",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.RiskLevelCritical, result.RiskLevel)
	assert.NotEmpty(t, result.RedFlags)
	assert.NotEmpty(t, result.Recommendations)

	// Analyze must not record anything.
	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	listRec := httptest.NewRecorder()
	h.Alerts.List(listRec, listReq)

	var listed AlertsResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Count)
}

func TestAnalyzeCleanMessageHasEmptyFlagsArray(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.Messages.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{
		Message: "Hi! How's your day going?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	// The wire shape keeps red_flags as [] rather than null.
	assert.Contains(t, rec.Body.String(), `"red_flags":[]`)
}

func TestAnalyzeRejectsEmptyMessage(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.Messages.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/analyze", strings.NewReader("{not json"))
	rec2 := httptest.NewRecorder()
	h.Messages.Analyze(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestReportRecordsAlert(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.Messages.Report, "/api/v1/messages/report", AnalyzeRequest{
		Sender:    "@scammer",
		Message:   "What's your address? Give me your phone number.",
		Timestamp: time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Alert)
	assert.Equal(t, models.RiskLevelHigh, resp.Result.RiskLevel)
	assert.Equal(t, "@scammer", resp.Alert.Sender)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?limit=10", nil)
	listRec := httptest.NewRecorder()
	h.Alerts.List(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var listed AlertsResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, resp.Alert.ID, listed.Alerts[0].ID)
}

func TestReportCleanMessageRecordsNothing(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.Messages.Report, "/api/v1/messages/report", AnalyzeRequest{
		Sender:  "@nice",
		Message: "Want to grab coffee this weekend?",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Alert)
	assert.Equal(t, models.RiskLevelLow, resp.Result.RiskLevel)
}

func TestAlertsListInvalidLimit(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?limit=banana", nil)
	rec := httptest.NewRecorder()
	h.Alerts.List(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/alerts?limit=-1", nil)
	rec = httptest.NewRecorder()
	h.Alerts.List(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsReflectRecordedAlerts(t *testing.T) {
	h := newTestHandlers(t)

	postJSON(t, h.Messages.Report, "/api/v1/messages/report", AnalyzeRequest{
		Sender:  "@scam",
		Message: "send me money on zelle, I'll pay you back",
	})
	postJSON(t, h.Messages.Report, "/api/v1/messages/report", AnalyzeRequest{
		Sender:  "@nice",
		Message: "good morning!",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats.Get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.StatsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalAlerts)
	assert.Equal(t, int64(1), stats.CriticalCount)
	assert.Equal(t, int64(2), stats.MessagesScanned)
}

func TestDemoGenerateSeedsAlerts(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo/generate", nil)
	rec := httptest.NewRecorder()
	h.Demo.Generate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Generated)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	listRec := httptest.NewRecorder()
	h.Alerts.List(listRec, listReq)

	var listed AlertsResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	assert.Equal(t, 3, listed.Count)

	levels := make(map[models.RiskLevel]int)
	for _, a := range listed.Alerts {
		levels[a.RiskLevel]++
	}
	assert.Equal(t, 1, levels[models.RiskLevelCritical])
	assert.Equal(t, 1, levels[models.RiskLevelHigh])
	assert.Equal(t, 1, levels[models.RiskLevelMedium])
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Health.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = httptest.NewRecorder()
	h.Health.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"not configured"`)
}
