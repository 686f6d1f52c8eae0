package monitor

import (
	"context"
	"fmt"
	"skinwatch/internal/events"
	"skinwatch/internal/models"
	"skinwatch/internal/providers"
	"skinwatch/internal/remote"
)

// Alert is everything a channel needs to notify about one finding.
type Alert struct {
	Finding     models.RiskFinding
	ResultId    string
	Token       string
	OwnerUserId string
}

type ChannelInterface interface {
	Name() string
	Send(ctx context.Context, alert Alert) error
}

type LocalChannel struct {
	emitter events.EmitterInterface
}

func NewLocalChannel(emitter events.EmitterInterface) *LocalChannel {
	return &LocalChannel{emitter: emitter}
}

func (lc *LocalChannel) Name() string { return "local" }

func (lc *LocalChannel) Send(ctx context.Context, alert Alert) error {
	err := lc.emitter.Emit(ctx, events.Notification{
		Title:       models.AlertTitle,
		Message:     alert.Finding.Message(),
		Condition:   alert.Finding.Condition,
		Probability: alert.Finding.Probability,
		ResultId:    alert.ResultId,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrDeliveryFailed, err)
	}
	return nil
}

// RelayChannel emails the owner of the scan through the backend. The owner
// address is resolved first; the send step never runs without it.
type RelayChannel struct {
	directory remote.UserDirectoryInterface
	relay     remote.MailRelayInterface
	cache     providers.CacheProviderInterface
	logger    providers.Logger
}

func NewRelayChannel(directory remote.UserDirectoryInterface, relay remote.MailRelayInterface, cache providers.CacheProviderInterface, logger providers.Logger) *RelayChannel {
	return &RelayChannel{
		directory: directory,
		relay:     relay,
		cache:     cache,
		logger:    logger,
	}
}

func (rc *RelayChannel) Name() string { return "relay" }

type relayState struct {
	alert   Alert
	address string
}

type relayStep struct {
	name string
	run  func(ctx context.Context, st *relayState) error
}

func (rc *RelayChannel) Send(ctx context.Context, alert Alert) error {
	if alert.OwnerUserId == "" {
		return models.ErrChannelSkipped
	}

	st := &relayState{alert: alert}
	steps := []relayStep{
		{name: "resolve address", run: rc.resolveAddress},
		{name: "send message", run: rc.sendMessage},
	}
	for _, step := range steps {
		if err := step.run(ctx, st); err != nil {
			return fmt.Errorf("relay %s: %w", step.name, err)
		}
	}
	return nil
}

func ownerCacheKey(userId string) string {
	return "owner-email:" + userId
}

func (rc *RelayChannel) resolveAddress(ctx context.Context, st *relayState) error {
	key := ownerCacheKey(st.alert.OwnerUserId)
	if cached, ok := rc.cache.Get(key); ok {
		st.address = cached
		return nil
	}

	address, err := rc.directory.LookupEmail(ctx, st.alert.Token, st.alert.OwnerUserId)
	if err != nil {
		return err
	}
	rc.cache.Set(key, address)
	st.address = address
	return nil
}

func (rc *RelayChannel) sendMessage(ctx context.Context, st *relayState) error {
	if st.address == "" {
		return fmt.Errorf("%w: no resolved address", models.ErrLookupFailed)
	}
	err := rc.relay.SendEmail(ctx, st.alert.Token, remote.EmailMessage{
		Email:   st.address,
		Subject: models.AlertSubject,
		Message: st.alert.Finding.Message(),
	})
	if err != nil {
		// the address may have changed since it was cached
		rc.cache.Del(ownerCacheKey(st.alert.OwnerUserId))
	}
	return err
}
