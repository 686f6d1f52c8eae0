package monitor

import (
	"context"
	"errors"
	"skinwatch/internal/events"
	"skinwatch/internal/models"
	"skinwatch/internal/remote"
	"sync"
)

type fakeFetcher struct {
	mu     sync.Mutex
	result *models.ScanResult
	err    error
	calls  int
	panic  bool
}

func (f *fakeFetcher) FetchRecentScan(_ context.Context, token string) (*models.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic {
		panic("boom")
	}
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}
	return f.result, f.err
}

type fakeEmitter struct {
	mu   sync.Mutex
	sent []events.Notification
	err  error
}

func (f *fakeEmitter) Emit(_ context.Context, n events.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakeDirectory struct {
	email string
	err   error
	calls int
}

func (f *fakeDirectory) LookupEmail(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.email, nil
}

type fakeRelay struct {
	sent []remote.EmailMessage
	err  error
}

func (f *fakeRelay) SendEmail(_ context.Context, _ string, msg remote.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeChannel struct {
	name  string
	err   error
	calls int
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(_ context.Context, _ Alert) error {
	f.calls++
	return f.err
}

var errBoom = errors.New("boom")
