package bus

import (
	"context"
	"time"
)

const (
	EventResearchTaskCreated = "research_task.created"
	EventResearchTaskUpdated = "research_task.updated"
	EventResearchTaskDeleted = "research_task.deleted"
)

// Event announces a change to a stored record.
type Event struct {
	Type     string    `json:"type"`
	Entity   string    `json:"entity"`
	ID       int64     `json:"id"`
	ParentID int64     `json:"parent_id,omitempty"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

type Bus interface {
	Publish(ctx context.Context, evt Event) error
	StartForwarder(ctx context.Context, onEvent func(evt Event)) error
	Close() error
}

type noopBus struct{}

// NewNoopBus drops every event. Used when no redis address is configured.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, Event) error { return nil }

func (noopBus) StartForwarder(ctx context.Context, onEvent func(evt Event)) error { return nil }

func (noopBus) Close() error { return nil }
