package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestExportJobFSM_HappyPath(t *testing.T) {
	ctx := context.Background()
	job := &models.ExportJob{ID: "job-1", Status: models.ExportStatusQueued}
	f := newExportJobFSM(job, fixedClock())

	require.NoError(t, f.Start(ctx))
	assert.Equal(t, models.ExportStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)
	assert.Equal(t, 1, job.Attempts)

	require.NoError(t, f.Complete(ctx, "exports/summary.csv"))
	assert.Equal(t, models.ExportStatusCompleted, job.Status)
	require.NotNil(t, job.FilePath)
	assert.Equal(t, "exports/summary.csv", *job.FilePath)
	require.NotNil(t, job.CompletedAt)
	assert.True(t, job.CompletedAt.After(*job.StartedAt))
	assert.False(t, job.MayFail())
}

func TestExportJobFSM_FailAndRetry(t *testing.T) {
	ctx := context.Background()
	job := &models.ExportJob{Status: models.ExportStatusQueued}
	f := newExportJobFSM(job, fixedClock())

	require.NoError(t, f.Start(ctx))
	require.NoError(t, f.Fail(ctx, "disk full"))
	assert.Equal(t, models.ExportStatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, "disk full", *job.ErrorMessage)

	require.NoError(t, f.Retry(ctx))
	assert.Equal(t, models.ExportStatusQueued, job.Status)
	assert.Nil(t, job.ErrorMessage)
	assert.Nil(t, job.StartedAt)

	require.NoError(t, f.Start(ctx))
	assert.Equal(t, 2, job.Attempts)
}

func TestExportJobFSM_InvalidTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status string
		act    func(f *ExportJobFSM) error
	}{
		{name: "complete queued", status: models.ExportStatusQueued, act: func(f *ExportJobFSM) error { return f.Complete(ctx, "x") }},
		{name: "start running", status: models.ExportStatusRunning, act: func(f *ExportJobFSM) error { return f.Start(ctx) }},
		{name: "retry completed", status: models.ExportStatusCompleted, act: func(f *ExportJobFSM) error { return f.Retry(ctx) }},
		{name: "fail completed", status: models.ExportStatusCompleted, act: func(f *ExportJobFSM) error { return f.Fail(ctx, "late") }},
		{name: "retry queued", status: models.ExportStatusQueued, act: func(f *ExportJobFSM) error { return f.Retry(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &models.ExportJob{Status: tt.status}
			err := tt.act(NewExportJobFSM(job))
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.status, job.Status)
		})
	}
}

func TestExportJobFSM_EmptyStatusStartsQueued(t *testing.T) {
	f := NewExportJobFSM(&models.ExportJob{})
	assert.Equal(t, models.ExportStatusQueued, f.Current())
	assert.True(t, f.Can(EventStart))
	assert.False(t, f.Can(EventComplete))
}
