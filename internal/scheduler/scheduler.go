package scheduler

import (
	"context"
	"fmt"
	"skinwatch/internal/models"
	"skinwatch/internal/providers"
	"skinwatch/internal/scheduler/interfaces"
	"skinwatch/internal/storage"
	storageInterfaces "skinwatch/internal/storage/interfaces"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/roylee0704/gron"
	"github.com/spf13/cast"
	"go.uber.org/atomic"
)

// Task is one unattended invocation. It must always return.
type Task func(ctx context.Context) models.Outcome

// TaskCatalog maps registration names to the code they run, so that
// registrations persisted by an earlier process can be restored.
type TaskCatalog map[string]Task

type intervalSchedule struct {
	interval atomic.Duration
}

func (s *intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.interval.Load())
}

type scheduledTask struct {
	name     string
	task     Task
	schedule *intervalSchedule
	running  atomic.Bool
	logger   providers.Logger
}

// Run skips the tick if the previous invocation of the same task is still in flight.
func (st *scheduledTask) Run() {
	if !st.running.CompareAndSwap(false, true) {
		st.logger.Warnf(providers.TypeScheduler, "Task %s still running, skipping tick", st.name)
		return
	}
	defer st.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			st.logger.Errorf(providers.TypeScheduler, "Task %s panicked: %v", st.name, r)
		}
	}()

	outcome := st.task(context.Background())
	st.logger.Debugf(providers.TypeScheduler, "Task %s completed: %s", st.name, outcome)
}

type Scheduler struct {
	logger  providers.Logger
	store   storageInterfaces.KeyValueStoreInterface
	policy  HostPolicyInterface
	catalog TaskCatalog
	cron    *gron.Cron
	opsMu   sync.Mutex
	tasks   map[string]*scheduledTask
}

func NewScheduler(logger providers.Logger, store storageInterfaces.KeyValueStoreInterface, policy HostPolicyInterface, catalog TaskCatalog) interfaces.SchedulerInterface {
	return &Scheduler{
		logger:  logger,
		store:   store,
		policy:  policy,
		catalog: catalog,
		cron:    gron.New(),
		tasks:   make(map[string]*scheduledTask),
	}
}

// Register is idempotent. The same name with a new interval reschedules the
// existing entry instead of adding a second one. When the host restricts
// background work nothing is registered and nil is returned.
func (s *Scheduler) Register(name string, interval time.Duration) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.policy.BackgroundAllowed() {
		s.logger.Infof(providers.TypeScheduler, "Background execution restricted, %s not registered", name)
		return nil
	}
	if interval <= 0 {
		return fmt.Errorf("task %s: interval must be positive", name)
	}
	task, ok := s.catalog[name]
	if !ok {
		return fmt.Errorf("task %s: unknown task", name)
	}

	if existing, ok := s.tasks[name]; ok {
		if existing.schedule.interval.Load() == interval {
			return nil
		}
		existing.schedule.interval.Store(interval)
		s.logger.Infof(providers.TypeScheduler, "Task %s rescheduled every %s", name, interval)
		return s.persistLocked()
	}

	st := &scheduledTask{
		name:     name,
		task:     task,
		schedule: &intervalSchedule{},
		logger:   s.logger,
	}
	st.schedule.interval.Store(interval)
	s.tasks[name] = st
	s.cron.Add(st.schedule, st)
	s.logger.Infof(providers.TypeScheduler, "Task %s registered every %s", name, interval)

	return s.persistLocked()
}

func (s *Scheduler) Registered() map[string]time.Duration {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	out := make(map[string]time.Duration, len(s.tasks))
	for name, st := range s.tasks {
		out[name] = st.schedule.interval.Load()
	}
	return out
}

// Restore re-registers tasks persisted by a previous process.
func (s *Scheduler) Restore() error {
	saved, dropped, err := readRegistry(s.store)
	if err != nil {
		return err
	}
	for name, value := range dropped {
		s.logger.Warnf(providers.TypeScheduler, "Dropping task %s with bad interval %v", name, value)
	}
	for name, interval := range saved {
		if _, known := s.catalog[name]; !known {
			s.logger.Warnf(providers.TypeScheduler, "Dropping unknown persisted task %s", name)
			continue
		}
		if err := s.Register(name, interval); err != nil {
			return err
		}
	}
	return nil
}

// SavedTasks reads the persisted registrations without registering or
// rewriting them. Entries with a bad interval are left out.
func SavedTasks(store storageInterfaces.KeyValueStoreInterface) (map[string]time.Duration, error) {
	saved, _, err := readRegistry(store)
	return saved, err
}

func readRegistry(store storageInterfaces.KeyValueStoreInterface) (map[string]time.Duration, map[string]any, error) {
	saved := make(map[string]time.Duration)
	raw, ok, err := store.Get(storage.KeyScheduledTasks)
	if err != nil {
		return nil, nil, err
	}
	if !ok || raw == "" {
		return saved, nil, nil
	}

	var entries map[string]any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, nil, fmt.Errorf("corrupted task registry: %w", err)
	}

	// Values are duration strings, or nanoseconds when edited by hand.
	dropped := make(map[string]any)
	for name, value := range entries {
		interval, err := cast.ToDurationE(value)
		if err != nil || interval <= 0 {
			dropped[name] = value
			continue
		}
		saved[name] = interval
	}
	return saved, dropped, nil
}

func (s *Scheduler) Init() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) persistLocked() error {
	saved := make(map[string]string, len(s.tasks))
	for name, st := range s.tasks {
		saved[name] = st.schedule.interval.Load().String()
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return s.store.Set(storage.KeyScheduledTasks, string(data))
}
