// Package offload provides a typed worker pool that executes the processing
// engine's pipeline off the caller's goroutine. Tasks and results travel as
// typed messages rather than raw payloads; queuing is bounded for
// backpressure and every task runs under a timeout. The pool dispatches to
// the same engine functions used inline, so where a task executes never
// changes its output.
package offload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-sift/core/engine"
	"github.com/asaidimu/go-sift/core/record"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskType identifies the operation an offloaded task requests.
type TaskType string

// Supported task types.
const (
	TaskProcess TaskType = "process"
)

// Status classifies a result message.
type Status string

// Result message statuses.
const (
	StatusProgress Status = "progress"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
)

// TaskMessage carries one unit of work into the pool. A zero RequestID is
// assigned a fresh identifier on submission. ChunkSize selects the batch
// chunking for this task; 0 uses the pool default.
type TaskMessage struct {
	Type      TaskType                 `json:"taskType"`
	Records   []record.Record          `json:"records"`
	Options   engine.ProcessingOptions `json:"options"`
	ChunkSize int                      `json:"chunkSize,omitempty"`
	RequestID string                   `json:"requestId"`
}

// ResultMessage reports task progress and completion. For a given request the
// channel delivers zero or more progress messages followed by exactly one
// success or error message, after which the channel is closed.
type ResultMessage struct {
	Status    Status                   `json:"type"`
	Result    *engine.ProcessingResult `json:"payload,omitempty"`
	Error     string                   `json:"error,omitempty"`
	RequestID string                   `json:"requestId"`
}

// Config carries the construction parameters for a Pool.
type Config struct {
	// Workers is the number of concurrent task executors; 0 selects 2.
	Workers int
	// QueueDepth bounds the pending-task queue; 0 selects 16. Submitting to
	// a full queue fails with ErrQueueFull rather than blocking.
	QueueDepth int
	// TaskTimeout aborts a task that runs too long; 0 selects 30s.
	TaskTimeout time.Duration
	// ChunkSize is the default batch chunking for tasks; 0 selects 1000.
	ChunkSize int
	Logger    *zap.Logger
}

// Submission errors.
var (
	ErrQueueFull  = errors.New("offload queue is full")
	ErrPoolClosed = errors.New("offload pool is closed")
)

type task struct {
	msg     TaskMessage
	results chan ResultMessage
}

// Pool executes processing tasks on a fixed set of workers with a bounded
// queue and per-task timeout.
type Pool struct {
	engine    *engine.Engine
	tasks     chan task
	timeout   time.Duration
	chunkSize int
	logger    *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPool creates a Pool executing against the given engine and starts its
// workers.
func NewPool(e *engine.Engine, cfg *Config) *Pool {
	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = 16
	}
	timeout := cfg.TaskTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		engine:    e,
		tasks:     make(chan task, depth),
		timeout:   timeout,
		chunkSize: chunkSize,
		logger:    logger,
		done:      make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// Submit enqueues a task. It returns the result channel and the request
// identifier assigned to the task. When all workers are busy and the queue
// is at capacity, Submit fails immediately with ErrQueueFull so callers can
// apply backpressure instead of piling up work.
func (p *Pool) Submit(msg TaskMessage) (<-chan ResultMessage, string, error) {
	if msg.RequestID == "" {
		msg.RequestID = uuid.New().String()
	}

	// Progress plus one terminal message; the worker never blocks on send.
	results := make(chan ResultMessage, 2)

	select {
	case <-p.done:
		return nil, "", ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task{msg: msg, results: results}:
		return results, msg.RequestID, nil
	default:
		return nil, "", ErrQueueFull
	}
}

// Close stops accepting tasks and waits for in-flight work to finish.
// Queued tasks that never ran receive an error result.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()

	for {
		select {
		case t := <-p.tasks:
			t.results <- ResultMessage{Status: StatusError, Error: ErrPoolClosed.Error(), RequestID: t.msg.RequestID}
			close(t.results)
		default:
			return
		}
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case t := <-p.tasks:
			p.execute(id, t)
		}
	}
}

func (p *Pool) execute(workerID int, t task) {
	defer close(t.results)

	t.results <- ResultMessage{Status: StatusProgress, RequestID: t.msg.RequestID}

	if t.msg.Type != TaskProcess {
		p.logger.Warn("rejecting task of unknown type",
			zap.String("taskType", string(t.msg.Type)),
			zap.String("requestId", t.msg.RequestID))
		t.results <- ResultMessage{
			Status:    StatusError,
			Error:     fmt.Sprintf("unsupported task type: %s", t.msg.Type),
			RequestID: t.msg.RequestID,
		}
		return
	}

	chunkSize := t.msg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = p.chunkSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	result, err := p.engine.ProcessBatch(ctx, t.msg.Records, t.msg.Options, chunkSize)
	if err != nil {
		p.logger.Warn("offloaded task failed",
			zap.Int("worker", workerID),
			zap.String("requestId", t.msg.RequestID),
			zap.Error(err))
		t.results <- ResultMessage{Status: StatusError, Error: err.Error(), RequestID: t.msg.RequestID}
		return
	}

	t.results <- ResultMessage{Status: StatusSuccess, Result: result, RequestID: t.msg.RequestID}
}
