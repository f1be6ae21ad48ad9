package engine

import (
	"context"
	"time"
)

// ProcessingEventType identifies the lifecycle events the engine emits.
type ProcessingEventType string

// Emitted event types.
const (
	ProcessStart    ProcessingEventType = "process:start"
	ProcessSuccess  ProcessingEventType = "process:success"
	ProcessFailed   ProcessingEventType = "process:failed"
	ProcessCacheHit ProcessingEventType = "process:cache-hit"
	BatchProgress   ProcessingEventType = "batch:progress"
	BatchCancelled  ProcessingEventType = "batch:cancelled"
)

// ProcessingEvent is the envelope published on the engine's event bus for
// every pipeline run. Consumers use it for observability: dashboards track
// durations and counts, exports log failures.
type ProcessingEvent struct {
	Type           ProcessingEventType `json:"type"`
	Timestamp      int64               `json:"timestamp"` // Unix milliseconds.
	Operation      string              `json:"operation"`
	TotalCount     int                 `json:"totalCount"`
	FilteredCount  *int                `json:"filteredCount,omitempty"`
	ChunksDone     *int                `json:"chunksDone,omitempty"`
	ChunksTotal    *int                `json:"chunksTotal,omitempty"`
	Error          *string             `json:"error,omitempty"`
	Duration       *int64              `json:"duration,omitempty"` // Milliseconds.
	Options        *ProcessingOptions  `json:"options,omitempty"`
}

// CallbackFunction is the signature for event subscription callbacks.
type CallbackFunction func(ctx context.Context, event ProcessingEvent) error

// SubscriptionInfo describes a registered event subscription.
type SubscriptionInfo struct {
	Event       ProcessingEventType
	Label       string
	Description string
	Unsubscribe func()
}

// RegisterSubscriptionOptions configures a new event subscription.
type RegisterSubscriptionOptions struct {
	Event       ProcessingEventType
	Label       string
	Description string
	Callback    CallbackFunction
}

// newEvent assembles an event envelope. Duration is measured from startTime.
func newEvent(eventType ProcessingEventType, operation string, totalCount int, opts *ProcessingOptions, errMsg *string, startTime time.Time) ProcessingEvent {
	duration := time.Since(startTime).Milliseconds()
	return ProcessingEvent{
		Type:       eventType,
		Timestamp:  time.Now().UnixMilli(),
		Operation:  operation,
		TotalCount: totalCount,
		Error:      errMsg,
		Duration:   &duration,
		Options:    opts,
	}
}
