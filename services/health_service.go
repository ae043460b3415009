package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NomadCrew/pett-server/logger"
	"github.com/NomadCrew/pett-server/types"
	"go.uber.org/zap"
)

// HealthFileName is the name of the file the service health is read from.
const HealthFileName = "health.txt"

// HealthChecker resolves the service health from a plain-text status file.
// It holds no mutable state and is safe for concurrent use.
type HealthChecker struct {
	healthFile string
	log        *zap.SugaredLogger
	metrics    *HealthMetrics
}

// NewHealthChecker creates a checker reading HealthFileName inside baseDir.
func NewHealthChecker(baseDir string) *HealthChecker {
	return &HealthChecker{
		healthFile: filepath.Join(baseDir, HealthFileName),
		log:        logger.GetLogger(),
		metrics:    healthMetrics,
	}
}

// Path returns the absolute location of the health file.
func (h *HealthChecker) Path() string {
	return h.healthFile
}

type readResult struct {
	data []byte
	err  error
}

// Check reads the health file and returns the status it declares.
//
// Check never fails: a missing or unreadable file, content that is not one
// of "ok", "degraded" or "down", and a cancelled ctx all resolve to
// HealthStatusUnknown. The file is re-read on every call.
func (h *HealthChecker) Check(ctx context.Context) types.HealthStatus {
	start := time.Now()
	status := h.check(ctx)
	h.metrics.readLatency.Observe(time.Since(start).Seconds())
	h.metrics.checkCount.WithLabelValues(status.String()).Inc()
	return status
}

func (h *HealthChecker) check(ctx context.Context) types.HealthStatus {
	// Buffered so the reader goroutine can always finish and release the
	// file handle, even when nobody waits for it anymore.
	done := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(h.healthFile)
		done <- readResult{data: data, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		h.log.Debugw("Health check abandoned", "path", h.healthFile, "error", ctx.Err())
		return types.HealthStatusUnknown
	case res = <-done:
	}

	if res.err != nil {
		if !errors.Is(res.err, fs.ErrNotExist) {
			h.metrics.readErrors.Inc()
			h.log.Warnw("Failed to read health file", "path", h.healthFile, "error", res.err)
		}
		return types.HealthStatusUnknown
	}

	contents := strings.ToValidUTF8(string(res.data), "\uFFFD")
	status, ok := types.ParseHealthStatus(contents)
	if !ok {
		h.log.Debugw("Unrecognized health file content", "path", h.healthFile, "bytes", len(res.data))
		return types.HealthStatusUnknown
	}
	return status
}
