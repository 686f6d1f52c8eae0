package models

// Outcome is the result of a single monitor run reported to the scheduler.
type Outcome string

const (
	OutcomeNotAuthenticated Outcome = "not_authenticated"
	OutcomeUnavailable      Outcome = "unavailable"
	OutcomeNoRisk           Outcome = "no_risk"
	OutcomeAlreadyAlerted   Outcome = "already_alerted"
	OutcomeAlerted          Outcome = "alerted"
	OutcomeDeliveryFailed   Outcome = "delivery_failed"
	OutcomeStoreError       Outcome = "store_error"
	OutcomeFailed           Outcome = "failed"
)

// Delivery is the aggregated result of dispatching one alert.
type Delivery string

const (
	Delivered      Delivery = "delivered"
	PartialFailure Delivery = "partial_failure"
	Failed         Delivery = "failed"
	Skipped        Delivery = "skipped"
)
