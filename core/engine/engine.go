package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-sift/core/record"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config carries the construction parameters for an Engine. The zero value is
// usable: a nop logger, caching enabled at DefaultCacheCapacity.
type Config struct {
	// CacheCapacity bounds the result cache; 0 selects DefaultCacheCapacity.
	CacheCapacity int
	// DisableCache turns result memoization off entirely. Results are
	// identical either way; the cache is purely an optimization.
	DisableCache bool
	Logger       *zap.Logger
}

// Engine sequences the processing stages (filter, search, aggregate, sort,
// paginate), owns the result cache and publishes lifecycle events. It is the
// only component with state: every stage is a pure function of its explicit
// arguments, so an Engine is safe for concurrent use.
type Engine struct {
	predicates map[FilterOperator]PredicateFunc
	mu         sync.RWMutex

	cache        *resultCache
	cacheEnabled bool

	logger *zap.Logger
	bus    *events.TypedEventBus[ProcessingEvent]

	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

// New creates an Engine. It initializes the event bus and the bounded result
// cache; the cache's lifetime and capacity are explicit construction
// parameters rather than hidden global state.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bus, err := events.NewTypedEventBus[ProcessingEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	cache, err := newResultCache(cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}

	return &Engine{
		predicates:    make(map[FilterOperator]PredicateFunc),
		cache:         cache,
		cacheEnabled:  !cfg.DisableCache,
		logger:        logger,
		bus:           bus,
		subscriptions: make(map[string]*SubscriptionInfo),
	}, nil
}

// RegisterPredicate registers a custom predicate for a filter operator.
// Registered predicates take precedence over the built-in operators.
func (e *Engine) RegisterPredicate(operator FilterOperator, fn PredicateFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.predicates[operator] = fn
	e.logger.Info("registered filter predicate", zap.String("operator", string(operator)))
}

func (e *Engine) customPredicate(operator FilterOperator) PredicateFunc {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.predicates[operator]
}

// ProcessData runs the full pipeline over a record set and returns the
// assembled result. Stage order is filter, search, aggregate, sort, paginate:
// aggregation runs over the filtered and searched set before pagination so it
// describes what the user sees, and pagination runs strictly last so page
// boundaries are meaningful.
//
// The input slice is never mutated; every stage produces a new sequence.
// Results are memoized against the canonicalized options plus a fingerprint
// of the record set; correctness never depends on the cache.
func (e *Engine) ProcessData(records []record.Record, opts ProcessingOptions) (*ProcessingResult, error) {
	start := time.Now()

	if err := validateOptions(opts); err != nil {
		errStr := err.Error()
		e.emitEvent(newEvent(ProcessFailed, "process", len(records), &opts, &errStr, start))
		return nil, err
	}

	e.emitEvent(newEvent(ProcessStart, "process", len(records), &opts, nil, start))

	key, err := e.lookupKey(records, opts)
	if err != nil {
		errStr := err.Error()
		e.emitEvent(newEvent(ProcessFailed, "process", len(records), &opts, &errStr, start))
		return nil, err
	}

	if e.cacheEnabled {
		if cached, ok := e.cache.Get(key); ok {
			hit := *cached
			hit.ProcessingTime = elapsedMillis(start)
			e.emitEvent(newEvent(ProcessCacheHit, "process", len(records), &opts, nil, start))
			return &hit, nil
		}
	}

	result := e.runPipeline(records, opts)
	result.ProcessingTime = elapsedMillis(start)

	if e.cacheEnabled {
		e.cache.Put(key, result)
	}

	success := newEvent(ProcessSuccess, "process", len(records), &opts, nil, start)
	success.FilteredCount = &result.FilteredCount
	e.emitEvent(success)

	out := *result
	return &out, nil
}

// runPipeline executes the stage sequence without touching the cache. Both
// the synchronous and the batch path funnel through the same stages so their
// outputs are identical by construction.
func (e *Engine) runPipeline(records []record.Record, opts ProcessingOptions) *ProcessingResult {
	filtered := e.Filter(records, opts.Filters)
	searched := SearchRecords(filtered, opts.Search)
	return e.finishPipeline(searched, len(records), opts)
}

// finishPipeline aggregates, sorts and paginates an already filtered and
// searched set, then assembles the result.
func (e *Engine) finishPipeline(searched []record.Record, totalCount int, opts ProcessingOptions) *ProcessingResult {
	aggregations := e.Aggregate(searched, opts.Aggregations)
	sorted := SortRecords(searched, opts.Sort)
	page := Paginate(sorted, opts.Pagination)

	return &ProcessingResult{
		Data:          page,
		TotalCount:    totalCount,
		FilteredCount: len(searched),
		Aggregations:  aggregations,
	}
}

func (e *Engine) lookupKey(records []record.Record, opts ProcessingOptions) (string, error) {
	canonical, err := canonicalOptions(opts)
	if err != nil {
		return "", err
	}
	return cacheKey(records, canonical), nil
}

// ClearCache resets the result cache unconditionally, for callers that know
// the underlying dataset changed (logout, dataset refresh).
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Debug("result cache cleared")
}

// CacheLen reports the number of memoized results currently held.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}

// validateOptions rejects options shapes that indicate a programmer error.
// Recoverable anomalies (malformed criteria, bad aggregation specs) degrade
// gracefully inside the stages instead.
func validateOptions(opts ProcessingOptions) error {
	if s := opts.Search; s != nil && (s.Threshold < 0 || s.Threshold > 1) {
		return fmt.Errorf("search threshold must be within [0,1], got %v", s.Threshold)
	}
	return nil
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func (e *Engine) emitEvent(event ProcessingEvent) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}

// RegisterSubscription registers a callback for an engine event and returns
// an identifier usable with UnregisterSubscription.
func (e *Engine) RegisterSubscription(options RegisterSubscriptionOptions) string {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	unsubscribe := e.bus.Subscribe(string(options.Event), options.Callback)
	callbackID := uuid.New().String()

	e.subscriptions[callbackID] = &SubscriptionInfo{
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	return callbackID
}

// UnregisterSubscription removes a previously registered subscription.
func (e *Engine) UnregisterSubscription(id string) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	info := e.subscriptions[id]
	if info != nil {
		info.Unsubscribe()
		delete(e.subscriptions, id)
	}
}

// Subscriptions lists the currently registered subscriptions.
func (e *Engine) Subscriptions() []SubscriptionInfo {
	e.subMu.RLock()
	defer e.subMu.RUnlock()
	out := make([]SubscriptionInfo, 0, len(e.subscriptions))
	for _, info := range e.subscriptions {
		out = append(out, *info)
	}
	return out
}
