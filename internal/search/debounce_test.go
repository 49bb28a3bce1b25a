package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBurstFiresOnlyLastCall(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var (
		mu      sync.Mutex
		fetched []string
	)
	fetch := func(q string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			fetched = append(fetched, q)
			mu.Unlock()
			return nil
		}
	}

	errs := make(chan error, 2)
	go func() {
		_, err := d.Do(context.Background(), "session-1", fetch("Par"))
		errs <- err
	}()
	time.Sleep(10 * time.Millisecond)
	go func() {
		_, err := d.Do(context.Background(), "session-1", fetch("Paris"))
		errs <- err
	}()

	var superseded, fired int
	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			switch {
			case errors.Is(err, ErrSuperseded):
				superseded++
			case err == nil:
				fired++
			default:
				t.Fatalf("Do() error = %v", err)
			}
		case <-time.After(time.Second):
			t.Fatalf("debounced calls did not return")
		}
	}
	if superseded != 1 || fired != 1 {
		t.Fatalf("superseded=%d fired=%d, want 1 and 1", superseded, fired)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(fetched) != 1 || fetched[0] != "Paris" {
		t.Fatalf("fetched = %v, want exactly [Paris]", fetched)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if _, err := d.Do(context.Background(), key, func(context.Context) error {
				atomic.AddInt32(&calls, 1)
				return nil
			}); err != nil {
				t.Errorf("Do(%s) error = %v", key, err)
			}
		}(key)
	}
	wg.Wait()
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestSequenceIncreases(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	noop := func(context.Context) error { return nil }

	first, err := d.Do(context.Background(), "k", noop)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	second, err := d.Do(context.Background(), "k", noop)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if second <= first {
		t.Fatalf("sequence %d then %d, want increasing", first, second)
	}
}

func TestContextCancelDisarms(t *testing.T) {
	d := NewDebouncer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := d.Do(ctx, "k", func(context.Context) error {
			t.Errorf("fetch must not run after cancel")
			return nil
		})
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Do() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Do() did not return after cancel")
	}
	if d.Pending("k") {
		t.Fatalf("timer still armed after cancel")
	}
}

func TestFetchErrorIsReturned(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	boom := errors.New("backend down")
	if _, err := d.Do(context.Background(), "k", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want %v", err, boom)
	}
	if NewDebouncer(0).Delay() != DefaultDelay {
		t.Fatalf("zero delay should select DefaultDelay")
	}
}
