package enums

import "fmt"

// PathwayStatus tracks a suggested pathway through the learner's funnel.
type PathwayStatus string

const (
	PathwayStatusSuggested PathwayStatus = "suggested"
	PathwayStatusSaved     PathwayStatus = "saved"
	PathwayStatusApplied   PathwayStatus = "applied"
)

var validPathwayStatuses = []PathwayStatus{
	PathwayStatusSuggested,
	PathwayStatusSaved,
	PathwayStatusApplied,
}

// String implements fmt.Stringer.
func (p PathwayStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PathwayStatus.
func (p PathwayStatus) IsValid() bool {
	for _, candidate := range validPathwayStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePathwayStatus converts raw input into a PathwayStatus.
func ParsePathwayStatus(value string) (PathwayStatus, error) {
	for _, candidate := range validPathwayStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pathway status %q", value)
}
