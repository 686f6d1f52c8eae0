package storage

import (
	"skinwatch/internal/models"
	"skinwatch/internal/storage/interfaces"
)

const (
	KeyAuthToken      = "authToken"
	KeyLastAlert      = "lastAlertTimestamp"
	KeyScheduledTasks = "scheduler.tasks"
)

type SessionProviderInterface interface {
	Token() (string, bool, error)
	SetToken(token string) error
	ClearToken() error
}

type MarkerStoreInterface interface {
	Marker() (*models.AlertMarker, error)
	SetMarker(identity string) error
	ClearMarker() error
}

// Session owns the bearer token and the last-alerted marker.
type Session struct {
	store interfaces.KeyValueStoreInterface
}

func NewSession(store interfaces.KeyValueStoreInterface) *Session {
	return &Session{store: store}
}

func NewSessionProvider(s *Session) SessionProviderInterface {
	return s
}

func NewMarkerStore(s *Session) MarkerStoreInterface {
	return s
}

// Token reports false for both a missing and an empty token.
func (s *Session) Token() (string, bool, error) {
	token, ok, err := s.store.Get(KeyAuthToken)
	if err != nil {
		return "", false, err
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *Session) SetToken(token string) error {
	return s.store.Set(KeyAuthToken, token)
}

func (s *Session) ClearToken() error {
	return s.store.Delete(KeyAuthToken)
}

// Marker returns nil when no alert has been recorded yet.
func (s *Session) Marker() (*models.AlertMarker, error) {
	ts, ok, err := s.store.Get(KeyLastAlert)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &models.AlertMarker{LastAlertedTimestamp: ts}, nil
}

func (s *Session) SetMarker(identity string) error {
	return s.store.Set(KeyLastAlert, identity)
}

func (s *Session) ClearMarker() error {
	return s.store.Delete(KeyLastAlert)
}
