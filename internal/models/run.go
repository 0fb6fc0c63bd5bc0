package models

import (
	"time"

	"github.com/google/uuid"
)

// NewBatchRun creates a run record with a generated UUID and start time
func NewBatchRun(indexURL, outputPath string) *BatchRun {
	return &BatchRun{
		ID:         uuid.New(),
		IndexURL:   indexURL,
		OutputPath: outputPath,
		StartedAt:  time.Now(),
	}
}

// Finish stamps the end time
func (r *BatchRun) Finish() {
	r.FinishedAt = time.Now()
}

func (r *BatchRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewRobotsSummary returns a summary with empty, non-nil lists.
func NewRobotsSummary() *RobotsSummary {
	return &RobotsSummary{
		Allowed:    []string{},
		Disallowed: []string{},
		Sitemaps:   []string{},
	}
}
