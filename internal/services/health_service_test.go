package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drecli/pkg/contracts"
)

type fixedSource StatementInfo

func (s fixedSource) Info() StatementInfo { return StatementInfo(s) }

func testBuild() contracts.BuildInfo {
	return contracts.BuildInfo{Version: "1.2.3", BuildTime: "2026-01-01", GitCommit: "abc123"}
}

func TestHealthService(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	hs := NewHealthService(testBuild(), svc, nil)

	health := hs.HealthCheck(ctx)
	assert.Equal(t, StatusOK, health.Status)
	assert.Equal(t, "1.2.3", health.Version)
	assert.Nil(t, health.Runtime)

	ready := hs.ReadinessCheck(ctx)
	assert.Equal(t, StatusReady, ready.Status)
	require.Contains(t, ready.Checks, "statement")
	assert.Contains(t, ready.Checks["statement"].Message, "5 accounts over 4 periods")

	alive := hs.LivenessCheck(ctx)
	assert.Equal(t, StatusAlive, alive.Status)
	require.NotNil(t, alive.Runtime)
	assert.Positive(t, alive.Runtime.Goroutines)

	version := hs.Version()
	assert.Equal(t, "1.2.3", version.Version)
	assert.Equal(t, "2026-01-01", version.BuildTime)
	assert.False(t, version.StartedAt.IsZero())
}

func TestReadinessNotReady(t *testing.T) {
	tests := []struct {
		name   string
		source StatementSource
	}{
		{"no statement", nil},
		{"no categories", fixedSource{Periods: 12, Accounts: 40, LoadedAt: time.Now()}},
		{"no periods", fixedSource{Accounts: 40, Categories: 3, LoadedAt: time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewHealthService(testBuild(), tt.source, nil).ReadinessCheck(context.Background())
			assert.Equal(t, StatusNotReady, status.Status)
			assert.Equal(t, StatusNotReady, status.Checks["statement"].Status)
		})
	}
}
