package handlers

import (
	"context"

	"github.com/NomadCrew/pett-server/types"
)

// HealthCheckerInterface defines the health check needed by HealthHandler.
// Implementations must not fail: every problem resolves to a status.
type HealthCheckerInterface interface {
	Check(ctx context.Context) types.HealthStatus
}
