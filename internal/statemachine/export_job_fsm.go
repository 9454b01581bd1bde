package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/looplab/fsm"
)

// ErrInvalidTransition is returned when an event is not allowed from the
// job's current status
var ErrInvalidTransition = errors.New("invalid export job transition")

// Export job events
const (
	EventStart    = "start"
	EventComplete = "complete"
	EventFail     = "fail"
	EventRetry    = "retry"
)

// ExportJobFSM wraps an export job with its state machine. Transitions write
// the new status and the matching timestamps back onto the job.
type ExportJobFSM struct {
	job *models.ExportJob
	fsm *fsm.FSM
	now func() time.Time
}

// NewExportJobFSM creates a new export job state machine
func NewExportJobFSM(job *models.ExportJob) *ExportJobFSM {
	return newExportJobFSM(job, time.Now)
}

func newExportJobFSM(job *models.ExportJob, now func() time.Time) *ExportJobFSM {
	efsm := &ExportJobFSM{
		job: job,
		now: now,
	}

	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}

	efsm.fsm = fsm.NewFSM(
		job.Status,
		fsm.Events{
			// queued → running
			{Name: EventStart, Src: []string{models.ExportStatusQueued}, Dst: models.ExportStatusRunning},

			// running → completed
			{Name: EventComplete, Src: []string{models.ExportStatusRunning}, Dst: models.ExportStatusCompleted},

			// queued/running → failed
			{Name: EventFail, Src: []string{models.ExportStatusQueued, models.ExportStatusRunning}, Dst: models.ExportStatusFailed},

			// failed → queued
			{Name: EventRetry, Src: []string{models.ExportStatusFailed}, Dst: models.ExportStatusQueued},
		},
		fsm.Callbacks{
			"enter_" + models.ExportStatusRunning: func(_ context.Context, _ *fsm.Event) {
				t := efsm.now()
				efsm.job.StartedAt = &t
				efsm.job.CompletedAt = nil
				efsm.job.Attempts++
			},
			"enter_" + models.ExportStatusCompleted: func(_ context.Context, e *fsm.Event) {
				t := efsm.now()
				efsm.job.CompletedAt = &t
				efsm.job.ErrorMessage = nil
				if len(e.Args) > 0 {
					if path, ok := e.Args[0].(string); ok {
						efsm.job.FilePath = &path
					}
				}
			},
			"enter_" + models.ExportStatusFailed: func(_ context.Context, e *fsm.Event) {
				t := efsm.now()
				efsm.job.CompletedAt = &t
				if len(e.Args) > 0 {
					if msg, ok := e.Args[0].(string); ok {
						efsm.job.ErrorMessage = &msg
					}
				}
			},
			"enter_" + models.ExportStatusQueued: func(_ context.Context, _ *fsm.Event) {
				efsm.job.ErrorMessage = nil
				efsm.job.FilePath = nil
				efsm.job.StartedAt = nil
				efsm.job.CompletedAt = nil
			},
		},
	)

	return efsm
}

// Start transitions the job to running
func (j *ExportJobFSM) Start(ctx context.Context) error {
	if !j.job.MayStart() {
		return fmt.Errorf("%w: cannot start job in state %s", ErrInvalidTransition, j.job.Status)
	}
	return j.fire(ctx, EventStart)
}

// Complete transitions the job to completed and records the output file
func (j *ExportJobFSM) Complete(ctx context.Context, filePath string) error {
	if !j.job.MayComplete() {
		return fmt.Errorf("%w: cannot complete job in state %s", ErrInvalidTransition, j.job.Status)
	}
	return j.fire(ctx, EventComplete, filePath)
}

// Fail transitions the job to failed and records why
func (j *ExportJobFSM) Fail(ctx context.Context, reason string) error {
	if !j.job.MayFail() {
		return fmt.Errorf("%w: cannot fail job in state %s", ErrInvalidTransition, j.job.Status)
	}
	return j.fire(ctx, EventFail, reason)
}

// Retry puts a failed job back in the queue
func (j *ExportJobFSM) Retry(ctx context.Context) error {
	if !j.job.MayRetry() {
		return fmt.Errorf("%w: cannot retry job in state %s", ErrInvalidTransition, j.job.Status)
	}
	return j.fire(ctx, EventRetry)
}

func (j *ExportJobFSM) fire(ctx context.Context, event string, args ...interface{}) error {
	if err := j.fsm.Event(ctx, event, args...); err != nil {
		return fmt.Errorf("failed to %s export job: %w", event, err)
	}
	j.job.Status = j.fsm.Current()
	return nil
}

// Current returns the current state
func (j *ExportJobFSM) Current() string {
	return j.fsm.Current()
}

// Can checks if a transition is possible
func (j *ExportJobFSM) Can(event string) bool {
	return j.fsm.Can(event)
}
