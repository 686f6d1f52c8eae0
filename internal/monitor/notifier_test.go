package monitor

import (
	"context"
	"skinwatch/internal/models"
	"skinwatch/internal/structures"
	"skinwatch/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNotifier(channels ...ChannelInterface) (*Notifier, *testutil.MockMetrics) {
	metrics := testutil.NewMockMetrics()
	return NewNotifier(&testutil.MockLogger{}, metrics, channels...), metrics
}

func TestNotifier_AllDelivered(t *testing.T) {
	n, metrics := newTestNotifier(&fakeChannel{name: "local"}, &fakeChannel{name: "relay"})
	report := n.Notify(context.Background(), testAlert("u1"))

	assert.Equal(t, models.Delivered, report.Status)
	assert.True(t, report.Delivered())
	assert.Equal(t, 1, metrics.Alerts["local:delivered"])
	assert.Equal(t, 1, metrics.Alerts["relay:delivered"])
}

func TestNotifier_PartialFailure(t *testing.T) {
	local := &fakeChannel{name: "local", err: models.ErrDeliveryFailed}
	relay := &fakeChannel{name: "relay"}
	n, _ := newTestNotifier(local, relay)

	report := n.Notify(context.Background(), testAlert("u1"))
	assert.Equal(t, models.PartialFailure, report.Status)
	assert.True(t, report.Delivered())
	assert.Equal(t, models.Failed, report.Channels["local"])
	assert.ErrorIs(t, report.Errors["local"], models.ErrDeliveryFailed)
	assert.Equal(t, 1, relay.calls, "a failing channel does not stop the next one")
}

func TestNotifier_AllFailed(t *testing.T) {
	n, _ := newTestNotifier(
		&fakeChannel{name: "local", err: errBoom},
		&fakeChannel{name: "relay", err: models.ErrLookupFailed},
	)

	report := n.Notify(context.Background(), testAlert("u1"))
	assert.Equal(t, models.Failed, report.Status)
	assert.False(t, report.Delivered())
}

func TestNotifier_SkippedIsNotFailure(t *testing.T) {
	n, _ := newTestNotifier(
		&fakeChannel{name: "local"},
		&fakeChannel{name: "relay", err: models.ErrChannelSkipped},
	)

	report := n.Notify(context.Background(), testAlert(""))
	assert.Equal(t, models.Delivered, report.Status)
	assert.Equal(t, models.Skipped, report.Channels["relay"])
	assert.NotContains(t, report.Errors, "relay")
}

func TestNotifier_OnlySkippedIsNotDelivered(t *testing.T) {
	n, _ := newTestNotifier(&fakeChannel{name: "relay", err: models.ErrChannelSkipped})

	report := n.Notify(context.Background(), testAlert(""))
	assert.False(t, report.Delivered())
	assert.Equal(t, models.Skipped, report.Status)
}

func TestNotifier_NoChannels(t *testing.T) {
	n, _ := newTestNotifier()
	assert.False(t, n.Notify(context.Background(), testAlert("")).Delivered())
}

func TestNewNotifierProvider_ChannelSelection(t *testing.T) {
	local := NewLocalChannel(&fakeEmitter{})
	relay := newRelay(&fakeDirectory{email: "a@example.com"}, &fakeRelay{}, testutil.NewMockCache())

	tests := []struct {
		name          string
		local, remote bool
		expected      []string
	}{
		{"local only", true, false, []string{"local"}},
		{"relay only", false, true, []string{"relay"}},
		{"both", true, true, []string{"local", "relay"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &structures.Config{Channels: structures.ChannelsConfig{
				Local: structures.LocalChannelConfig{Enabled: tt.local},
				Relay: structures.RelayChannelConfig{Enabled: tt.remote},
			}}
			n := NewNotifierProvider(conf, &testutil.MockLogger{}, testutil.NewMockMetrics(), local, relay).(*Notifier)

			var names []string
			for _, ch := range n.channels {
				names = append(names, ch.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
