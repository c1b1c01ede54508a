package batch

import (
	"context"
	"errors"
	"fmt"

	syncutil "github.com/projectdiscovery/utils/sync"
)

// ErrPanic marks an outcome whose processing function panicked.
var ErrPanic = errors.New("processing function panicked")

// State is the lifecycle state of a single item.
type State int

const (
	Pending State = iota
	InFlight
	Settled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case InFlight:
		return "in-flight"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is the settled result of one item.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

// OK reports whether the item succeeded.
func (o Outcome[R]) OK() bool {
	return o.Err == nil
}

// ProcessFunc handles a single item.
type ProcessFunc[T, R any] func(ctx context.Context, item T) (R, error)

// Pipeline is a chunked, settle-and-continue batch executor.
type Pipeline[T, R any] struct {
	// Ceiling is the maximum number of items in flight. Values below 1 are treated as 1.
	Ceiling int
	// Process is invoked once per item.
	Process ProcessFunc[T, R]
	// Observe, when set, is called on every state transition. It may be
	// called from multiple goroutines at once.
	Observe func(index int, state State)
}

// Run processes items and returns one outcome per item in input order.
func Run[T, R any](ctx context.Context, items []T, ceiling int, fn ProcessFunc[T, R]) ([]Outcome[R], error) {
	p := &Pipeline[T, R]{Ceiling: ceiling, Process: fn}
	return p.Run(ctx, items)
}

// Run processes items and returns one outcome per item in input order.
// The returned error is only set when the pipeline itself cannot be set up;
// per-item failures are reported through the outcomes.
func (p *Pipeline[T, R]) Run(ctx context.Context, items []T) ([]Outcome[R], error) {
	if p.Process == nil {
		return nil, errors.New("batch: nil process function")
	}
	ceiling := p.Ceiling
	if ceiling < 1 {
		ceiling = 1
	}

	outcomes := make([]Outcome[R], len(items))
	for i := range outcomes {
		outcomes[i].Index = i
		p.observe(i, Pending)
	}
	if len(items) == 0 {
		return outcomes, nil
	}

	awg, err := syncutil.New(syncutil.WithSize(ceiling))
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	for start := 0; start < len(items); start += ceiling {
		end := min(start+ceiling, len(items))

		if ctxErr := ctx.Err(); ctxErr != nil {
			// remaining items never run but still settle
			for i := start; i < len(items); i++ {
				outcomes[i].Err = ctxErr
				p.observe(i, Settled)
			}
			break
		}

		for i := start; i < end; i++ {
			awg.Add()
			p.observe(i, InFlight)
			go func(index int) {
				defer awg.Done()
				value, err := p.safeProcess(ctx, items[index])
				// each goroutine owns exactly one slot
				outcomes[index].Value = value
				outcomes[index].Err = err
				p.observe(index, Settled)
			}(i)
		}

		// chunk barrier
		awg.Wait()
	}

	return outcomes, nil
}

func (p *Pipeline[T, R]) safeProcess(ctx context.Context, item T) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			value = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return p.Process(ctx, item)
}

func (p *Pipeline[T, R]) observe(index int, state State) {
	if p.Observe != nil {
		p.Observe(index, state)
	}
}
