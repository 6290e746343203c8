package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postBody(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTestMessageDoesNotRecordAlert(t *testing.T) {
	srv, err := newDashboardServer()
	require.NoError(t, err)

	rec := postBody(t, srv.handleTestMessage, testMessageRequest{
		Sender:  "Test User",
		Message: "I need emergency money, can you send $500 on Venmo?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	// Ad-hoc probes classify only; the alert history and counters stay untouched.
	assert.Empty(t, srv.detector.Alerts(0))
	stats := srv.detector.Stats()
	assert.Zero(t, stats.TotalAlerts)
	assert.Zero(t, stats.MessagesScanned)
}

func TestTestMessageRejectsEmptyMessage(t *testing.T) {
	srv, err := newDashboardServer()
	require.NoError(t, err)

	rec := postBody(t, srv.handleTestMessage, testMessageRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDemoDataRecordsAlerts(t *testing.T) {
	srv, err := newDashboardServer()
	require.NoError(t, err)

	rec := postBody(t, srv.handleGenerateDemoData, struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	alerts := srv.detector.Alerts(0)
	assert.Len(t, alerts, 3)
	assert.EqualValues(t, 3, srv.detector.Stats().TotalAlerts)
}
