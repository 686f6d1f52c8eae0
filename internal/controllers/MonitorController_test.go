package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"skinwatch/internal/models"
	"skinwatch/internal/monitor"
	"skinwatch/internal/storage"
	"skinwatch/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(svc *mockService, store *testutil.MockStore) *MonitorController {
	session := storage.NewSession(store)
	sched := &mockScheduler{tasks: map[string]time.Duration{"high-risk-check": 15 * time.Minute}}
	return NewMonitorController(&testutil.MockLogger{}, svc, storage.NewSessionProvider(session), storage.NewMarkerStore(session), sched)
}

func TestStatus_Unauthenticated(t *testing.T) {
	svc := &mockService{snapshot: monitor.StatusSnapshot{
		Runs:      2,
		Alerts:    1,
		ByOutcome: map[models.Outcome]int64{models.OutcomeAlerted: 1, models.OutcomeNoRisk: 1},
	}}
	mc := newTestController(svc, testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	mc.Status(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Equal(t, "15m0s", resp.Tasks["high-risk-check"])
	assert.Equal(t, int64(2), resp.Monitor.Runs)
	assert.Equal(t, int64(1), resp.Monitor.Alerts)
	assert.Equal(t, int64(1), resp.Monitor.ByOutcome[models.OutcomeNoRisk])
	assert.Contains(t, rr.Body.String(), `"by_outcome":{`)
}

func TestStatus_DoesNotLeakToken(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data[storage.KeyAuthToken] = "secret-token"
	mc := newTestController(&mockService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	mc.Status(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-token")

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
}

func TestStatus_StoreError(t *testing.T) {
	store := testutil.NewMockStore()
	store.GetErr = errors.New("disk gone")
	mc := newTestController(&mockService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	mc.Status(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRun_ReturnsOutcome(t *testing.T) {
	svc := &mockService{outcome: models.OutcomeAlreadyAlerted}
	mc := newTestController(svc, testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rr := httptest.NewRecorder()
	mc.Run(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, svc.runs)
	assert.JSONEq(t, `{"outcome":"already_alerted"}`, rr.Body.String())
}

func TestResetMarker_ClearsMarker(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data[storage.KeyLastAlert] = "2024-01-01T00:00:00Z"
	mc := newTestController(&mockService{}, store)

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	rr := httptest.NewRecorder()
	mc.ResetMarker(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	_, ok := store.Data[storage.KeyLastAlert]
	assert.False(t, ok)
}

func TestResetMarker_StoreError(t *testing.T) {
	store := testutil.NewMockStore()
	store.SetErr = errors.New("read-only")
	mc := newTestController(&mockService{}, store)

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	rr := httptest.NewRecorder()
	mc.ResetMarker(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
