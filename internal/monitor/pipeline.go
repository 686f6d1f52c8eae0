package monitor

import (
	"context"
	"errors"
	"skinwatch/internal/models"
	"skinwatch/internal/providers"
	"skinwatch/internal/remote"
	"skinwatch/internal/storage"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MonitorServiceInterface interface {
	Run(ctx context.Context) models.Outcome
	Status() StatusSnapshot
}

// MonitorService is the unattended high-risk check: fetch the latest scan,
// evaluate it, and alert at most once per result identity.
type MonitorService struct {
	session  storage.SessionProviderInterface
	fetcher  remote.ScanFetcherInterface
	dedup    *Deduplicator
	notifier NotifierInterface
	status   *StatusTracker
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	// marker read-check-write must not interleave between scheduled and manual runs
	mu sync.Mutex
}

func NewMonitorService(session storage.SessionProviderInterface, fetcher remote.ScanFetcherInterface, dedup *Deduplicator, notifier NotifierInterface, status *StatusTracker, logger providers.Logger, metrics providers.MetricsProviderInterface) MonitorServiceInterface {
	return &MonitorService{
		session:  session,
		fetcher:  fetcher,
		dedup:    dedup,
		notifier: notifier,
		status:   status,
		logger:   logger,
		metrics:  metrics,
	}
}

func (m *MonitorService) Status() StatusSnapshot {
	return m.status.Snapshot()
}

// Run never panics and never returns an error: every failure becomes an
// Outcome and the next scheduled run is the retry.
func (m *MonitorService) Run(ctx context.Context) (outcome models.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runId := uuid.NewString()
	start := time.Now()
	m.status.begin()

	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf(providers.TypeMonitor, "[%s] run panicked: %v", runId, r)
			outcome = models.OutcomeFailed
		}
		m.metrics.IncRunsTotal(string(outcome))
		m.metrics.ObserveRunDuration(time.Since(start))
		m.status.finish(outcome, start)
		m.logger.Infof(providers.TypeMonitor, "[%s] run finished: %s in %s", runId, outcome, time.Since(start))
	}()

	return m.run(ctx, runId)
}

func (m *MonitorService) run(ctx context.Context, runId string) models.Outcome {
	token, ok, err := m.session.Token()
	if err != nil {
		m.logger.Errorf(providers.TypeMonitor, "[%s] unable to read session: %s", runId, err)
		return models.OutcomeStoreError
	}
	if !ok {
		m.logger.Debugf(providers.TypeMonitor, "[%s] no session, skipping", runId)
		return models.OutcomeNotAuthenticated
	}

	result, err := m.fetcher.FetchRecentScan(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotAuthenticated) {
			return models.OutcomeNotAuthenticated
		}
		m.logger.Warnf(providers.TypeMonitor, "[%s] recent scan unavailable: %s", runId, err)
		return models.OutcomeUnavailable
	}

	finding, ok := Evaluate(result)
	if !ok {
		m.logger.Debugf(providers.TypeMonitor, "[%s] result %s has no condition above %.2f", runId, result.Identity(), RiskThreshold)
		return models.OutcomeNoRisk
	}

	identity := result.Identity()
	should, err := m.dedup.ShouldAlert(identity)
	if err != nil {
		m.logger.Errorf(providers.TypeMonitor, "[%s] unable to read alert marker: %s", runId, err)
		return models.OutcomeStoreError
	}
	if !should {
		m.logger.Debugf(providers.TypeMonitor, "[%s] result %s already alerted", runId, identity)
		return models.OutcomeAlreadyAlerted
	}

	m.logger.Infof(providers.TypeMonitor, "[%s] result %s: %s at %.4f", runId, identity, finding.Condition, finding.Probability)
	report := m.notifier.Notify(ctx, Alert{
		Finding:     finding,
		ResultId:    identity,
		Token:       token,
		OwnerUserId: result.UserId,
	})
	if !report.Delivered() {
		m.logger.Warnf(providers.TypeMonitor, "[%s] alert for %s not delivered, will retry next run", runId, identity)
		return models.OutcomeDeliveryFailed
	}

	if err := m.dedup.RecordAlerted(identity); err != nil {
		m.logger.Errorf(providers.TypeMonitor, "[%s] alert for %s delivered but marker not saved: %s", runId, identity, err)
		return models.OutcomeStoreError
	}
	m.metrics.SetLastAlertTime(time.Now())
	return models.OutcomeAlerted
}
