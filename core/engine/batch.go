package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/asaidimu/go-sift/core/record"
)

// ProcessBatch is the chunked variant of ProcessData for inputs too large to
// process in one synchronous pass. It runs filter and search per chunk of
// chunkSize records, yielding between chunks so other pending work can
// interleave, then aggregates, sorts and paginates once over the concatenated
// survivors. Chunking is purely a scheduling device: the output is identical
// to calling ProcessData on the same input.
//
// Cancellation is checked between chunks via ctx. An aborted batch returns
// ctx.Err() and never populates the cache with a partial result.
func (e *Engine) ProcessBatch(ctx context.Context, records []record.Record, opts ProcessingOptions, chunkSize int) (*ProcessingResult, error) {
	start := time.Now()

	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := validateOptions(opts); err != nil {
		errStr := err.Error()
		e.emitEvent(newEvent(ProcessFailed, "batch", len(records), &opts, &errStr, start))
		return nil, err
	}

	e.emitEvent(newEvent(ProcessStart, "batch", len(records), &opts, nil, start))

	key, err := e.lookupKey(records, opts)
	if err != nil {
		errStr := err.Error()
		e.emitEvent(newEvent(ProcessFailed, "batch", len(records), &opts, &errStr, start))
		return nil, err
	}

	if e.cacheEnabled {
		if cached, ok := e.cache.Get(key); ok {
			hit := *cached
			hit.ProcessingTime = elapsedMillis(start)
			e.emitEvent(newEvent(ProcessCacheHit, "batch", len(records), &opts, nil, start))
			return &hit, nil
		}
	}

	chunksTotal := (len(records) + chunkSize - 1) / chunkSize
	surviving := make([]record.Record, 0, len(records))

	for chunk := 0; chunk < chunksTotal; chunk++ {
		select {
		case <-ctx.Done():
			event := newEvent(BatchCancelled, "batch", len(records), &opts, nil, start)
			done := chunk
			event.ChunksDone = &done
			event.ChunksTotal = &chunksTotal
			e.emitEvent(event)
			return nil, ctx.Err()
		default:
		}

		lo := chunk * chunkSize
		hi := min(lo+chunkSize, len(records))

		filtered := e.Filter(records[lo:hi], opts.Filters)
		surviving = append(surviving, SearchRecords(filtered, opts.Search)...)

		progress := newEvent(BatchProgress, "batch", len(records), nil, nil, start)
		done := chunk + 1
		progress.ChunksDone = &done
		progress.ChunksTotal = &chunksTotal
		e.emitEvent(progress)

		// Cooperative scheduling point between chunks.
		runtime.Gosched()
	}

	result := e.finishPipeline(surviving, len(records), opts)
	result.ProcessingTime = elapsedMillis(start)

	if e.cacheEnabled {
		e.cache.Put(key, result)
	}

	success := newEvent(ProcessSuccess, "batch", len(records), &opts, nil, start)
	success.FilteredCount = &result.FilteredCount
	e.emitEvent(success)

	out := *result
	return &out, nil
}
