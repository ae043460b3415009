package types

import "strings"

// HealthStatus is the self-reported operational state of the service.
type HealthStatus string

const (
	HealthStatusOk       HealthStatus = "Ok"
	HealthStatusDegraded HealthStatus = "Degraded"
	HealthStatusDown     HealthStatus = "Down"
	// HealthStatusUnknown is the fallback when no valid signal is available.
	// It is never produced by ParseHealthStatus.
	HealthStatusUnknown HealthStatus = "Unknown"
)

// AllHealthStatuses lists every status in a stable order.
var AllHealthStatuses = []HealthStatus{
	HealthStatusOk,
	HealthStatusDegraded,
	HealthStatusDown,
	HealthStatusUnknown,
}

// ParseHealthStatus parses a health token as written to the status file.
// Surrounding whitespace and case are ignored. Only "ok", "degraded" and
// "down" are accepted; everything else, "unknown" included, reports false.
func ParseHealthStatus(text string) (HealthStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "ok":
		return HealthStatusOk, true
	case "degraded":
		return HealthStatusDegraded, true
	case "down":
		return HealthStatusDown, true
	default:
		return "", false
	}
}

// String renders the canonical spelling of the status.
func (s HealthStatus) String() string {
	switch s {
	case HealthStatusOk, HealthStatusDegraded, HealthStatusDown:
		return string(s)
	default:
		return string(HealthStatusUnknown)
	}
}

// IsAvailable reports whether the service should still receive traffic.
func (s HealthStatus) IsAvailable() bool {
	return s == HealthStatusOk || s == HealthStatusDegraded
}

// MarshalText implements encoding.TextMarshaler.
func (s HealthStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
