package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPreservesOrderAndLength(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		ceiling int
	}{
		{name: "empty input", items: 0, ceiling: 5},
		{name: "fewer items than ceiling", items: 3, ceiling: 10},
		{name: "exact multiple of ceiling", items: 20, ceiling: 5},
		{name: "partial last chunk", items: 254, ceiling: 50},
		{name: "zero ceiling treated as one", items: 4, ceiling: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			for i := range items {
				items[i] = i
			}

			outcomes, err := Run(context.Background(), items, tt.ceiling, func(ctx context.Context, item int) (string, error) {
				// random completion order inside a chunk
				time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
				return fmt.Sprintf("item-%d", item), nil
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(outcomes) != len(items) {
				t.Fatalf("Run() returned %d outcomes, want %d", len(outcomes), len(items))
			}
			for i, o := range outcomes {
				if o.Index != i {
					t.Errorf("outcome %d has index %d", i, o.Index)
				}
				if want := fmt.Sprintf("item-%d", i); o.Value != want {
					t.Errorf("outcome %d = %q, want %q", i, o.Value, want)
				}
				if !o.OK() {
					t.Errorf("outcome %d unexpected error: %v", i, o.Err)
				}
			}
		})
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	const ceiling = 7

	var inFlight, maxInFlight atomic.Int64
	items := make([]int, 100)

	_, err := Run(context.Background(), items, ceiling, func(ctx context.Context, _ int) (struct{}, error) {
		current := inFlight.Add(1)
		for {
			seen := maxInFlight.Load()
			if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := maxInFlight.Load(); got > ceiling {
		t.Errorf("max in flight = %d, want <= %d", got, ceiling)
	}
	if got := maxInFlight.Load(); got < 2 {
		t.Errorf("max in flight = %d, expected items within a chunk to overlap", got)
	}
}

func TestRunChunkBarrier(t *testing.T) {
	const ceiling = 4

	var (
		mu      sync.Mutex
		settled = map[int]bool{}
		bad     []string
	)
	items := make([]int, 14)
	for i := range items {
		items[i] = i
	}

	p := &Pipeline[int, int]{
		Ceiling: ceiling,
		Process: func(ctx context.Context, item int) (int, error) {
			// the last item of each chunk is the slowest
			if item%ceiling == ceiling-1 {
				time.Sleep(10 * time.Millisecond)
			}
			return item, nil
		},
		Observe: func(index int, state State) {
			mu.Lock()
			defer mu.Unlock()
			switch state {
			case InFlight:
				chunkStart := (index / ceiling) * ceiling
				for prev := 0; prev < chunkStart; prev++ {
					if !settled[prev] {
						bad = append(bad, fmt.Sprintf("item %d dispatched before item %d settled", index, prev))
					}
				}
			case Settled:
				settled[index] = true
			}
		},
	}

	if _, err := p.Run(context.Background(), items); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, msg := range bad {
		t.Error(msg)
	}
	if len(settled) != len(items) {
		t.Errorf("settled %d items, want %d", len(settled), len(items))
	}
}

func TestRunStateTransitions(t *testing.T) {
	var (
		mu     sync.Mutex
		states = map[int][]State{}
	)
	p := &Pipeline[string, int]{
		Ceiling: 2,
		Process: func(ctx context.Context, item string) (int, error) {
			return len(item), nil
		},
		Observe: func(index int, state State) {
			mu.Lock()
			states[index] = append(states[index], state)
			mu.Unlock()
		},
	}

	if _, err := p.Run(context.Background(), []string{"a", "bb", "ccc"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		got := states[i]
		if len(got) != 3 || got[0] != Pending || got[1] != InFlight || got[2] != Settled {
			t.Errorf("item %d transitions = %v, want [pending in-flight settled]", i, got)
		}
	}
}

func TestRunCapturesFailures(t *testing.T) {
	errOdd := errors.New("odd item")

	outcomes, err := Run(context.Background(), []int{0, 1, 2, 3, 4}, 3, func(ctx context.Context, item int) (int, error) {
		switch {
		case item == 4:
			panic("item four exploded")
		case item%2 == 1:
			return 0, errOdd
		}
		return item * 10, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 5 {
		t.Fatalf("got %d outcomes, want 5", len(outcomes))
	}

	for _, i := range []int{0, 2} {
		if !outcomes[i].OK() || outcomes[i].Value != i*10 {
			t.Errorf("outcome %d = %+v, want success with %d", i, outcomes[i], i*10)
		}
	}
	for _, i := range []int{1, 3} {
		if !errors.Is(outcomes[i].Err, errOdd) {
			t.Errorf("outcome %d error = %v, want %v", i, outcomes[i].Err, errOdd)
		}
	}
	if !errors.Is(outcomes[4].Err, ErrPanic) {
		t.Errorf("outcome 4 error = %v, want ErrPanic", outcomes[4].Err)
	}
}

func TestRunStopsDispatchOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int64
	outcomes, err := Run(ctx, make([]int, 10), 2, func(ctx context.Context, _ int) (int, error) {
		if calls.Add(1) == 2 {
			cancel()
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 10 {
		t.Fatalf("got %d outcomes, want 10", len(outcomes))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("process called %d times, want 2", got)
	}
	for i := 2; i < 10; i++ {
		if !errors.Is(outcomes[i].Err, context.Canceled) {
			t.Errorf("outcome %d error = %v, want context.Canceled", i, outcomes[i].Err)
		}
	}
}

func TestRunNilProcess(t *testing.T) {
	p := &Pipeline[int, int]{Ceiling: 1}
	if _, err := p.Run(context.Background(), []int{1}); err == nil {
		t.Error("expected error for nil process function")
	}
}
