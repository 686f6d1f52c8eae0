package models

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnavailable      = errors.New("scan service unavailable")
	ErrLookupFailed     = errors.New("owner address lookup failed")
	ErrDeliveryFailed   = errors.New("alert delivery failed")
	ErrChannelSkipped   = errors.New("channel skipped")
)
