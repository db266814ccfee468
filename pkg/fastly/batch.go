package fastly

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/fastly/internal/constants"
)

// ErrBatchFailed is returned by BatchResults.Err when any operation failed.
var ErrBatchFailed = errors.New("batch operation failed")

// BatchOperation is one unit of work in a batch.
type BatchOperation struct {
	ID       string
	Run      func(ctx context.Context) (interface{}, error)
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchResults are returned in the order the operations were given.
type BatchResults []BatchResult

// Failed returns the results whose operation returned an error.
func (r BatchResults) Failed() BatchResults {
	failed := make(BatchResults, 0)

	for _, result := range r {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	return failed
}

// Err joins the errors of every failed operation, or returns nil.
func (r BatchResults) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(failed))
	for _, result := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", result.ID, result.Error))
	}

	return fmt.Errorf("%w: %d of %d: %w", ErrBatchFailed, len(failed), len(r), errors.Join(errs...))
}

// BatchExecutor runs independent operations with bounded concurrency. Write
// calls share one quota, so the default limit is low.
type BatchExecutor struct {
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the timeout applied to each operation.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs every operation. A failing operation does not cancel the
// others; the returned error is only set when ctx is done before all
// operations were started.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) (BatchResults, error) {
	results := make(BatchResults, len(operations))

	group := new(errgroup.Group)
	group.SetLimit(b.concurrency)

	var skipped error

	for index, operation := range operations {
		if skipped = ctx.Err(); skipped != nil {
			for rest := index; rest < len(operations); rest++ {
				results[rest] = BatchResult{ID: operations[rest].ID, Error: skipped}
			}

			break
		}

		group.Go(func() error {
			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			data, err := operation.Run(opCtx)

			result := BatchResult{
				ID:       operation.ID,
				Success:  err == nil,
				Data:     data,
				Error:    err,
				Duration: time.Since(start),
			}
			results[index] = result

			if operation.Callback != nil {
				operation.Callback(&result)
			}

			return nil
		})
	}

	_ = group.Wait()

	if skipped != nil {
		return results, fmt.Errorf("batch interrupted: %w", skipped)
	}

	return results, nil
}

// BatchBuilder accumulates operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// Add appends an operation.
func (b *BatchBuilder) Add(id string, run func(ctx context.Context) (interface{}, error)) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{ID: id, Run: run})

	return b
}

// AddDelete appends a delete of the named endpoint using del, typically the
// Delete method of a healthcheck or logging client.
func (b *BatchBuilder) AddDelete(
	target EndpointTarget,
	del func(ctx context.Context, target EndpointTarget) (*DeleteResponse, error),
) *BatchBuilder {
	return b.Add(target.Name, func(ctx context.Context) (interface{}, error) {
		return del(ctx, target)
	})
}

// Build returns the accumulated operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
