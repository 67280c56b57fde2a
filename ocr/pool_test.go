package ocr

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// serialEngine fails the test if two Recognize calls ever overlap,
// imitating an engine with per-call native state.
type serialEngine struct {
	t    *testing.T
	busy atomic.Bool
}

func (e *serialEngine) Name() string { return "serial" }

func (e *serialEngine) Recognize(ctx context.Context, img image.Image) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		e.t.Error("overlapping Recognize calls on one engine")
	}
	defer e.busy.Store(false)
	time.Sleep(time.Millisecond)
	return Result{Text: "ok"}, nil
}

func TestPoolExclusiveCheckout(t *testing.T) {
	engines := []Engine{
		&serialEngine{t: t},
		&serialEngine{t: t},
		&serialEngine{t: t},
	}
	pool := NewPool(engines)
	if pool.Size() != len(engines) {
		t.Fatalf("Size() = %d, want %d", pool.Size(), len(engines))
	}

	img := image.NewGray(image.Rect(0, 0, 2, 2))

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine := pool.Acquire()
			defer pool.Release(engine)

			if _, err := engine.Recognize(context.Background(), img); err != nil {
				t.Errorf("Recognize() error = %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestPoolReleaseMakesEngineAvailable(t *testing.T) {
	engine := &serialEngine{t: t}
	pool := NewPool([]Engine{engine})

	first := pool.Acquire()
	pool.Release(first)
	second := pool.Acquire()
	if first != second {
		t.Error("released engine was not handed out again")
	}
	pool.Release(second)
}
