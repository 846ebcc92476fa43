package safety

import "github.com/samirrijal/saferoute/internal/core/domain"

// Level buckets a score for display.
func Level(score int) domain.SafetyLevel {
	switch {
	case score >= 80:
		return domain.SafetyLevel{Label: "Very Safe", Color: "safe"}
	case score >= 60:
		return domain.SafetyLevel{Label: "Moderately Safe", Color: "caution"}
	case score >= 40:
		return domain.SafetyLevel{Label: "Use Caution", Color: "warning"}
	default:
		return domain.SafetyLevel{Label: "High Risk", Color: "danger"}
	}
}
