package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/internal/scheduler/mocks"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func newService(runner Runner, enabled bool, cron string) *PipelineSyncService {
	return NewPipelineSyncService(runner, &config.Config{
		PipelineSync: config.PipelineSync{CronSchedule: cron, Enabled: enabled},
	})
}

func TestPipelineSyncService_RunNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	service := newService(runner, false, "0 2 * * *")

	tests := []struct {
		name      string
		summary   *pipeline.Summary
		err       error
		wantRunID string
		wantError string
	}{
		{
			name:      "successful run is recorded",
			summary:   &pipeline.Summary{RunID: "abc123"},
			wantRunID: "abc123",
		},
		{
			name:      "failed run keeps its error",
			summary:   &pipeline.Summary{RunID: "def456"},
			err:       errors.New("persist: PersistenceError"),
			wantRunID: "def456",
			wantError: "persist: PersistenceError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner.EXPECT().Run(gomock.Any()).Return(tt.summary, tt.err)

			summary, err := service.RunNow(context.Background())

			assert.Equal(t, tt.err, err)
			assert.Same(t, tt.summary, summary)

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.wantRunID, status["last_run_id"])
			assert.Equal(t, tt.wantError, status["last_error"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestPipelineSyncService_RunNowWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newService(mocks.NewMockRunner(ctrl), false, "0 2 * * *")
	service.syncRunning = true

	_, err := service.RunNow(context.Background())
	assert.ErrorIs(t, err, pipeline.ErrRunInProgress)
	assert.False(t, service.TriggerManualSync())
}

func TestPipelineSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	service := newService(runner, false, "0 2 * * *")

	done := make(chan struct{})
	runner.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) (*pipeline.Summary, error) {
		defer close(done)
		return &pipeline.Summary{RunID: "manual"}, nil
	})

	require.True(t, service.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("manual run did not start")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_run_id"] == "manual"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestPipelineSyncService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	disabled := newService(mocks.NewMockRunner(ctrl), false, "not a cron")
	assert.NoError(t, disabled.Start(ctx))

	invalid := newService(mocks.NewMockRunner(ctrl), true, "not a cron")
	assert.Error(t, invalid.Start(ctx))

	valid := newService(mocks.NewMockRunner(ctrl), true, "0 2 * * *")
	assert.NoError(t, valid.Start(ctx))
	assert.Equal(t, true, valid.GetStatus()["sync_enabled"])
}
