package monitor

import "skinwatch/internal/models"

// RiskThreshold is exclusive: a probability must be strictly greater to alert.
const RiskThreshold = 0.5

// Evaluate returns the first condition, in server order, above RiskThreshold.
// Later conditions are never considered once one matches, even if they score
// higher.
func Evaluate(result *models.ScanResult) (models.RiskFinding, bool) {
	if result == nil {
		return models.RiskFinding{}, false
	}
	for _, cp := range result.Results {
		if cp.Probability > RiskThreshold {
			return models.RiskFinding{Condition: cp.Condition, Probability: cp.Probability}, true
		}
	}
	return models.RiskFinding{}, false
}
