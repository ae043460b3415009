package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/NomadCrew/pett-server/logger"
	"github.com/NomadCrew/pett-server/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func writeHealthFile(t *testing.T, dir string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HealthFileName), content, 0o644))
}

func TestNewHealthChecker(t *testing.T) {
	dir := t.TempDir()
	checker := NewHealthChecker(dir)

	assert.NotNil(t, checker)
	assert.Equal(t, filepath.Join(dir, "health.txt"), checker.Path())
	assert.NotNil(t, checker.log)
	assert.NotNil(t, checker.metrics)
}

func TestHealthChecker_Check(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		noFile   bool
		expected types.HealthStatus
	}{
		{name: "missing file", noFile: true, expected: types.HealthStatusUnknown},
		{name: "empty file", content: []byte{}, expected: types.HealthStatusUnknown},
		{name: "ok", content: []byte("ok"), expected: types.HealthStatusOk},
		{name: "ok with trailing newline", content: []byte("ok\n"), expected: types.HealthStatusOk},
		{name: "degraded capitalized", content: []byte("Degraded"), expected: types.HealthStatusDegraded},
		{name: "down", content: []byte("down"), expected: types.HealthStatusDown},
		{name: "down with windows newline", content: []byte("DOWN\r\n"), expected: types.HealthStatusDown},
		{name: "invalid text", content: []byte("invalid health"), expected: types.HealthStatusUnknown},
		{name: "unknown is not accepted", content: []byte("unknown"), expected: types.HealthStatusUnknown},
		{name: "binary garbage", content: []byte{0xff, 0xfe, 0x00, 0x9f, 0x92}, expected: types.HealthStatusUnknown},
		{name: "invalid utf8 around token", content: []byte{'o', 'k', 0xff}, expected: types.HealthStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if !tt.noFile {
				writeHealthFile(t, dir, tt.content)
			}

			checker := NewHealthChecker(dir)
			assert.Equal(t, tt.expected, checker.Check(context.Background()))
		})
	}
}

func TestHealthChecker_Check_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file makes the read fail with an I/O error.
	require.NoError(t, os.Mkdir(filepath.Join(dir, HealthFileName), 0o755))

	checker := NewHealthChecker(dir)
	assert.Equal(t, types.HealthStatusUnknown, checker.Check(context.Background()))
}

func TestHealthChecker_Check_MissingBaseDirectory(t *testing.T) {
	checker := NewHealthChecker(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.Equal(t, types.HealthStatusUnknown, checker.Check(context.Background()))
}

func TestHealthChecker_Check_ReflectsLatestWrite(t *testing.T) {
	dir := t.TempDir()
	checker := NewHealthChecker(dir)
	ctx := context.Background()

	assert.Equal(t, types.HealthStatusUnknown, checker.Check(ctx))

	writeHealthFile(t, dir, []byte("ok\n"))
	assert.Equal(t, types.HealthStatusOk, checker.Check(ctx))
	assert.Equal(t, types.HealthStatusOk, checker.Check(ctx))

	writeHealthFile(t, dir, []byte("down\n"))
	assert.Equal(t, types.HealthStatusDown, checker.Check(ctx))

	require.NoError(t, os.Remove(filepath.Join(dir, HealthFileName)))
	assert.Equal(t, types.HealthStatusUnknown, checker.Check(ctx))
}

func TestHealthChecker_Check_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeHealthFile(t, dir, []byte("ok"))
	checker := NewHealthChecker(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the read wins the race or the cancellation does; both are valid
	// outcomes, but the call must return and never surface an error.
	status := checker.Check(ctx)
	assert.Contains(t, []types.HealthStatus{types.HealthStatusOk, types.HealthStatusUnknown}, status)
}

func TestHealthChecker_Check_Concurrent(t *testing.T) {
	dir := t.TempDir()
	writeHealthFile(t, dir, []byte("degraded"))
	checker := NewHealthChecker(dir)

	const workers = 50
	results := make([]types.HealthStatus, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = checker.Check(context.Background())
		}(i)
	}
	wg.Wait()

	for _, status := range results {
		assert.Equal(t, types.HealthStatusDegraded, status)
	}
}
