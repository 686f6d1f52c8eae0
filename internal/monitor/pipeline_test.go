package monitor

import (
	"context"
	"errors"
	"skinwatch/internal/models"
	"skinwatch/internal/storage"
	"skinwatch/internal/testutil"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	store   *testutil.MockStore
	fetcher *fakeFetcher
	emitter *fakeEmitter
	dir     *fakeDirectory
	relay   *fakeRelay
	metrics *testutil.MockMetrics
	svc     MonitorServiceInterface
}

func newPipeline(t *testing.T, withRelay bool) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		store:   testutil.NewMockStore(),
		fetcher: &fakeFetcher{},
		emitter: &fakeEmitter{},
		dir:     &fakeDirectory{email: "a@example.com"},
		relay:   &fakeRelay{},
		metrics: testutil.NewMockMetrics(),
	}
	logger := &testutil.MockLogger{}
	session := storage.NewSession(f.store)

	channels := []ChannelInterface{NewLocalChannel(f.emitter)}
	if withRelay {
		channels = append(channels, NewRelayChannel(f.dir, f.relay, testutil.NewMockCache(), logger))
	}
	notifier := NewNotifier(logger, f.metrics, channels...)

	f.svc = NewMonitorService(session, f.fetcher, NewDeduplicator(session), notifier, NewStatusTracker(), logger, f.metrics)
	return f
}

func (f *pipelineFixture) login() {
	f.store.Data[storage.KeyAuthToken] = "tok"
}

func acneResult() *models.ScanResult {
	return &models.ScanResult{
		OverallSkinHealth: "Oily",
		Results:           models.Probabilities{{Condition: "Acne", Probability: 0.75}},
		Timestamp:         "t1",
		UserId:            "u1",
	}
}

func TestRun_NoSessionMakesNoCalls(t *testing.T) {
	f := newPipeline(t, true)

	outcome := f.svc.Run(context.Background())
	assert.Equal(t, models.OutcomeNotAuthenticated, outcome)
	assert.Zero(t, f.fetcher.calls)
	assert.Zero(t, f.dir.calls)
	assert.Empty(t, f.emitter.sent)
	assert.Empty(t, f.relay.sent)
}

func TestRun_AlertsOnceThenSuppresses(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = acneResult()

	assert.Equal(t, models.OutcomeAlerted, f.svc.Run(context.Background()))
	require.Len(t, f.emitter.sent, 1)
	assert.Equal(t, "High probability (75.00%) of Acne. Consult a doctor.", f.emitter.sent[0].Message)
	assert.Equal(t, "t1", f.store.Data[storage.KeyLastAlert])

	assert.Equal(t, models.OutcomeAlreadyAlerted, f.svc.Run(context.Background()))
	assert.Len(t, f.emitter.sent, 1)
	assert.Equal(t, 1, f.store.SetCalls, "one marker write")
}

func TestRun_NewIdentityAlertsAgain(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = acneResult()
	f.svc.Run(context.Background())

	next := acneResult()
	next.Timestamp = "t2"
	f.fetcher.result = next

	assert.Equal(t, models.OutcomeAlerted, f.svc.Run(context.Background()))
	assert.Len(t, f.emitter.sent, 2)
	assert.Equal(t, "t2", f.store.Data[storage.KeyLastAlert])
}

func TestRun_FailedDeliveryLeavesMarkerAndRetries(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = acneResult()
	f.emitter.err = errBoom

	assert.Equal(t, models.OutcomeDeliveryFailed, f.svc.Run(context.Background()))
	_, marked := f.store.Data[storage.KeyLastAlert]
	assert.False(t, marked)

	f.emitter.err = nil
	assert.Equal(t, models.OutcomeAlerted, f.svc.Run(context.Background()))
	assert.Len(t, f.emitter.sent, 1)
	assert.Equal(t, "t1", f.store.Data[storage.KeyLastAlert])
}

func TestRun_RelayLookupFailureWithLocalDelivered(t *testing.T) {
	f := newPipeline(t, true)
	f.login()
	f.fetcher.result = acneResult()
	f.dir.err = models.ErrLookupFailed

	assert.Equal(t, models.OutcomeAlerted, f.svc.Run(context.Background()))
	assert.Empty(t, f.relay.sent)
	assert.Len(t, f.emitter.sent, 1)
	assert.Equal(t, "t1", f.store.Data[storage.KeyLastAlert])
}

func TestRun_AllChannelsFailed(t *testing.T) {
	f := newPipeline(t, true)
	f.login()
	f.fetcher.result = acneResult()
	f.emitter.err = errBoom
	f.dir.err = models.ErrLookupFailed

	assert.Equal(t, models.OutcomeDeliveryFailed, f.svc.Run(context.Background()))
	_, marked := f.store.Data[storage.KeyLastAlert]
	assert.False(t, marked)
}

func TestRun_RelayDeliversWithOwner(t *testing.T) {
	f := newPipeline(t, true)
	f.login()
	f.fetcher.result = acneResult()

	assert.Equal(t, models.OutcomeAlerted, f.svc.Run(context.Background()))
	require.Len(t, f.relay.sent, 1)
	assert.Equal(t, "a@example.com", f.relay.sent[0].Email)
}

func TestRun_NoRisk(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = &models.ScanResult{
		Timestamp: "t1",
		Results:   models.Probabilities{{Condition: "Acne", Probability: 0.5}, {Condition: "Eczema", Probability: 0.2}},
	}

	assert.Equal(t, models.OutcomeNoRisk, f.svc.Run(context.Background()))
	assert.Empty(t, f.emitter.sent)
	assert.Zero(t, f.store.SetCalls)
}

func TestRun_MissingResults(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = &models.ScanResult{Timestamp: "t1"}

	assert.Equal(t, models.OutcomeNoRisk, f.svc.Run(context.Background()))
}

func TestRun_Unavailable(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.err = models.ErrUnavailable

	assert.Equal(t, models.OutcomeUnavailable, f.svc.Run(context.Background()))
	assert.Equal(t, 1, f.fetcher.calls)
}

func TestRun_StoreReadError(t *testing.T) {
	f := newPipeline(t, false)
	f.store.GetErr = errors.New("io")

	assert.Equal(t, models.OutcomeStoreError, f.svc.Run(context.Background()))
	assert.Zero(t, f.fetcher.calls)
}

func TestRun_MarkerWriteErrorAfterDelivery(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = acneResult()
	f.store.SetErr = errors.New("disk full")

	assert.Equal(t, models.OutcomeStoreError, f.svc.Run(context.Background()))
	assert.Len(t, f.emitter.sent, 1)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.panic = true

	var outcome models.Outcome
	assert.NotPanics(t, func() { outcome = f.svc.Run(context.Background()) })
	assert.Equal(t, models.OutcomeFailed, outcome)
	assert.Equal(t, 1, f.metrics.Runs[string(models.OutcomeFailed)])
	assert.False(t, f.svc.Status().Running)
}

func TestRun_ConcurrentRunsAlertOnce(t *testing.T) {
	f := newPipeline(t, false)
	f.login()
	f.fetcher.result = acneResult()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.svc.Run(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, f.emitter.sent, 1)
	assert.Equal(t, 1, f.metrics.Runs[string(models.OutcomeAlerted)])
	assert.Equal(t, 7, f.metrics.Runs[string(models.OutcomeAlreadyAlerted)])
}

func TestRun_StatusTracksOutcomes(t *testing.T) {
	f := newPipeline(t, false)
	f.svc.Run(context.Background())
	f.login()
	f.fetcher.result = acneResult()
	f.svc.Run(context.Background())

	st := f.svc.Status()
	assert.Equal(t, int64(2), st.Runs)
	assert.Equal(t, int64(1), st.Alerts)
	assert.Equal(t, models.OutcomeAlerted, st.LastOutcome)
	assert.False(t, st.LastRunAt.IsZero())
}
