package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"drecli/pkg/contracts"
)

// StatementSource reports what statement a service is serving.
type StatementSource interface {
	Info() StatementInfo
}

const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// HealthService answers the health, readiness and version probes.
type HealthService struct {
	build   contracts.BuildInfo
	source  StatementSource
	started time.Time
	logger  *slog.Logger
}

type HealthStatus struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   string                     `json:"version"`
	Runtime   *RuntimeStats              `json:"runtime,omitempty"`
	Checks    map[string]DependencyCheck `json:"services,omitempty"`
}

type RuntimeStats struct {
	UptimeSeconds float64 `json:"uptime"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
}

// DependencyCheck is the state of one thing readiness depends on.
type DependencyCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Age     string `json:"uptime,omitempty"`
}

type VersionInfo struct {
	contracts.BuildInfo
	StartedAt     time.Time `json:"start_time"`
	UptimeSeconds float64   `json:"uptime"`
}

// NewHealthService reports on source. A nil source is never ready.
func NewHealthService(build contracts.BuildInfo, source StatementSource, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("HealthService initialized",
		slog.String("version", build.Version),
		slog.String("commit", build.GitCommit))

	return &HealthService{build: build, source: source, started: time.Now(), logger: logger}
}

func (hs *HealthService) status(state string) HealthStatus {
	return HealthStatus{Status: state, Timestamp: time.Now(), Version: hs.build.Version}
}

func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check", slog.Duration("uptime", time.Since(hs.started)))
	return hs.status(StatusOK)
}

// ReadinessCheck is ready once a statement with at least one period and one
// category is loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	statement := hs.statementCheck()
	status := hs.status(statement.Status)
	status.Checks = map[string]DependencyCheck{"statement": statement}
	return status
}

func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	status := hs.status(StatusAlive)
	status.Runtime = &RuntimeStats{
		UptimeSeconds: time.Since(hs.started).Seconds(),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}
	return status
}

func (hs *HealthService) Version() VersionInfo {
	return VersionInfo{
		BuildInfo:     hs.build,
		StartedAt:     hs.started,
		UptimeSeconds: time.Since(hs.started).Seconds(),
	}
}

func (hs *HealthService) statementCheck() DependencyCheck {
	if hs.source == nil {
		return DependencyCheck{Status: StatusNotReady, Message: "statement not loaded"}
	}

	info := hs.source.Info()
	if info.Periods == 0 || info.Categories == 0 {
		return DependencyCheck{
			Status:  StatusNotReady,
			Message: fmt.Sprintf("statement has %d periods and %d categories", info.Periods, info.Categories),
		}
	}
	return DependencyCheck{
		Status:  StatusReady,
		Message: fmt.Sprintf("%d accounts over %d periods from %s", info.Accounts, info.Periods, info.Source),
		Age:     time.Since(info.LoadedAt).Round(time.Second).String(),
	}
}
