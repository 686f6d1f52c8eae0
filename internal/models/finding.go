package models

import "fmt"

const (
	AlertTitle   = "Health Alert"
	AlertSubject = "Health Alert: high-risk skin condition"
)

type RiskFinding struct {
	Condition   string  `json:"condition"`
	Probability float64 `json:"probability"`
}

func (f RiskFinding) Message() string {
	return fmt.Sprintf("High probability (%.2f%%) of %s. Consult a doctor.", f.Probability*100, f.Condition)
}

type AlertMarker struct {
	LastAlertedTimestamp string `json:"lastAlertedTimestamp"`
}
