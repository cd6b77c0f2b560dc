// Package events publishes project lifecycle messages to Kafka and feeds the
// render worker from its request topic. Publishing is best-effort: workflows
// run fine with a nil publisher.
package events

import (
	"context"
	"time"

	"clipcaption/types"
)

// StatusEvent announces a project status transition.
type StatusEvent struct {
	ProjectID string              `json:"project_id"`
	Status    types.ProjectStatus `json:"status"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// RenderRequest asks the worker to render one project.
type RenderRequest struct {
	ProjectID string `json:"project_id"`
}

// Publisher is implemented by Producer; workflows hold it behind this
// interface so tests can capture events and deployments can omit Kafka.
type Publisher interface {
	PublishStatus(ctx context.Context, ev StatusEvent) error
	PublishRenderRequest(ctx context.Context, req RenderRequest) error
}
