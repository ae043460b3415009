package handlers

import (
	"context"

	"github.com/NomadCrew/pett-server/types"
	"github.com/stretchr/testify/mock"
)

// MockHealthChecker implements HealthCheckerInterface for handler tests.
type MockHealthChecker struct {
	mock.Mock
}

var _ HealthCheckerInterface = (*MockHealthChecker)(nil)

func (m *MockHealthChecker) Check(ctx context.Context) types.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthStatus)
}
