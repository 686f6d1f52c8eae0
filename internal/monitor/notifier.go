package monitor

import (
	"context"
	"errors"
	"skinwatch/internal/models"
	"skinwatch/internal/providers"
	"skinwatch/internal/structures"
)

type NotifierInterface interface {
	Notify(ctx context.Context, alert Alert) Report
}

// Report is the per-channel and aggregated result of one Notify call.
type Report struct {
	Status   models.Delivery
	Channels map[string]models.Delivery
	Errors   map[string]error
}

// Delivered reports whether at least one channel got the alert out.
func (r Report) Delivered() bool {
	return r.Status == models.Delivered || r.Status == models.PartialFailure
}

type Notifier struct {
	channels []ChannelInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewNotifier(logger providers.Logger, metrics providers.MetricsProviderInterface, channels ...ChannelInterface) *Notifier {
	return &Notifier{
		channels: channels,
		logger:   logger,
		metrics:  metrics,
	}
}

// NewNotifierProvider enables the channels switched on in config.
func NewNotifierProvider(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, local *LocalChannel, relay *RelayChannel) NotifierInterface {
	var channels []ChannelInterface
	if conf.Channels.Local.Enabled {
		channels = append(channels, local)
	}
	if conf.Channels.Relay.Enabled {
		channels = append(channels, relay)
	}
	return NewNotifier(logger, metrics, channels...)
}

// Notify tries every enabled channel; a failing channel never stops the others.
func (n *Notifier) Notify(ctx context.Context, alert Alert) Report {
	report := Report{
		Channels: make(map[string]models.Delivery, len(n.channels)),
		Errors:   make(map[string]error),
	}

	delivered, failed := 0, 0
	for _, ch := range n.channels {
		err := ch.Send(ctx, alert)
		switch {
		case err == nil:
			delivered++
			report.Channels[ch.Name()] = models.Delivered
			n.logger.Infof(providers.TypeNotify, "Alert for %s delivered via %s", alert.ResultId, ch.Name())
		case errors.Is(err, models.ErrChannelSkipped):
			report.Channels[ch.Name()] = models.Skipped
			n.logger.Debugf(providers.TypeNotify, "Channel %s skipped for %s", ch.Name(), alert.ResultId)
		default:
			failed++
			report.Channels[ch.Name()] = models.Failed
			report.Errors[ch.Name()] = err
			if errors.Is(err, models.ErrLookupFailed) {
				n.logger.Warnf(providers.TypeNotify, "Channel %s: owner lookup failed: %s", ch.Name(), err)
			} else {
				n.logger.Errorf(providers.TypeNotify, "Channel %s: delivery failed: %s", ch.Name(), err)
			}
		}
		n.metrics.IncAlertsTotal(ch.Name(), string(report.Channels[ch.Name()]))
	}

	switch {
	case delivered > 0 && failed == 0:
		report.Status = models.Delivered
	case delivered > 0:
		report.Status = models.PartialFailure
	case failed == 0 && len(n.channels) > 0:
		report.Status = models.Skipped
	default:
		report.Status = models.Failed
	}
	return report
}
