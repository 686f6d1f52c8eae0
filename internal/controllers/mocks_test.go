package controllers

import (
	"context"
	"skinwatch/internal/models"
	"skinwatch/internal/monitor"
	"time"
)

type mockService struct {
	snapshot monitor.StatusSnapshot
	outcome  models.Outcome
	runs     int
}

func (m *mockService) Run(_ context.Context) models.Outcome {
	m.runs++
	return m.outcome
}

func (m *mockService) Status() monitor.StatusSnapshot {
	return m.snapshot
}

type mockScheduler struct {
	tasks map[string]time.Duration
}

func (m *mockScheduler) Register(name string, interval time.Duration) error {
	if m.tasks == nil {
		m.tasks = make(map[string]time.Duration)
	}
	m.tasks[name] = interval
	return nil
}
func (m *mockScheduler) Registered() map[string]time.Duration { return m.tasks }
func (m *mockScheduler) Restore() error                       { return nil }
func (m *mockScheduler) Init()                                {}
func (m *mockScheduler) Stop()                                {}
