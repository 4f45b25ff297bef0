// Package jobs holds the background task definitions and the Asynq worker
// runtime that processes them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup pre-computes the common dashboard summaries.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// WarmupPayload selects which summaries the warmup pass should compute.
type WarmupPayload struct {
	// Years lists the year filters to warm besides the all-time view.
	Years []string `json:"years,omitempty"`
	// PerCollaborator also warms one summary per non-master account.
	PerCollaborator bool `json:"perCollaborator,omitempty"`
}

// NewWarmupTask constructs an Asynq task for a cache warmup pass.
func NewWarmupTask(payload WarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, data), nil
}
