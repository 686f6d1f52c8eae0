package monitor

import (
	"skinwatch/internal/models"
	"skinwatch/internal/storage"
)

// ShouldAlert is false only when the marker holds exactly this identity.
func ShouldAlert(identity string, marker *models.AlertMarker) bool {
	return marker == nil || marker.LastAlertedTimestamp != identity
}

type Deduplicator struct {
	markers storage.MarkerStoreInterface
}

func NewDeduplicator(markers storage.MarkerStoreInterface) *Deduplicator {
	return &Deduplicator{markers: markers}
}

func (d *Deduplicator) ShouldAlert(identity string) (bool, error) {
	marker, err := d.markers.Marker()
	if err != nil {
		return false, err
	}
	return ShouldAlert(identity, marker), nil
}

// RecordAlerted must only be called once a notification was delivered.
func (d *Deduplicator) RecordAlerted(identity string) error {
	return d.markers.SetMarker(identity)
}
