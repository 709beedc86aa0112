package executor

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/goexec/internal/testutil"
	gxerrors "github.com/vnykmshr/goexec/pkg/common/errors"
	"github.com/vnykmshr/goexec/pkg/queue"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		coreSize  int
		maxSize   int
		keepAlive time.Duration
		queueCap  int
		wantError bool
	}{
		{"valid", 2, 4, KeepAliveForever, 8, false},
		{"finite keep-alive", 1, 2, 100 * time.Millisecond, 4, false},
		{"zero keep-alive", 1, 1, 0, 1, false},
		{"zero core", 0, 4, KeepAliveForever, 8, true},
		{"max below core", 4, 2, KeepAliveForever, 8, true},
		{"zero queue capacity", 2, 4, KeepAliveForever, 0, true},
		{"negative keep-alive", 2, 4, -5 * time.Second, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, err := New(tt.coreSize, tt.maxSize, tt.keepAlive, tt.queueCap)
			if tt.wantError {
				testutil.AssertError(t, err)
				if !errors.Is(err, gxerrors.ErrInvalidConfiguration) {
					t.Errorf("error should wrap ErrInvalidConfiguration, got %v", err)
				}
				return
			}
			testutil.AssertNoError(t, err)
			defer exec.Shutdown()
			testutil.AssertEqual(t, exec.PoolSize(), 0)
			testutil.AssertEqual(t, exec.QueueLen(), 0)
		})
	}
}

func TestSubmitNilCallable(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)
	defer exec.Shutdown()

	_, err = exec.Submit(nil)
	testutil.AssertError(t, err)
	if !errors.Is(err, gxerrors.ErrInvalidConfiguration) {
		t.Errorf("error should wrap ErrInvalidConfiguration, got %v", err)
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)
	exec.Shutdown()

	_, err = exec.Submit(NewCallable(func(interface{}) interface{} { return nil }, nil))
	if !errors.Is(err, gxerrors.ErrShutdown) {
		t.Errorf("Submit after shutdown = %v, want ErrShutdown", err)
	}
}

func TestOneShotResult(t *testing.T) {
	exec, err := New(2, 4, KeepAliveForever, 8)
	testutil.AssertNoError(t, err)
	defer exec.Shutdown()

	f, err := exec.Submit(NewCallable(func(params interface{}) interface{} {
		return params.(int) * 2
	}, 21))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, f.Result().(int), 42)
	testutil.AssertEqual(t, f.Callable().Executor() == exec, true)
}

func TestQueueingBelowCoreDoesNotGrowPool(t *testing.T) {
	const coreSize = 2
	exec, err := New(coreSize, 4, KeepAliveForever, 4)
	testutil.AssertNoError(t, err)

	release := make(chan struct{})
	blocker := func(interface{}) interface{} {
		<-release
		return nil
	}

	// Occupy the core workers.
	for i := 0; i < coreSize; i++ {
		_, err := exec.Submit(NewCallable(blocker, nil))
		testutil.AssertNoError(t, err)
	}

	// Further submissions queue up instead of growing the pool.
	var futures []*Future
	for i := 0; i < 3; i++ {
		i := i
		f, err := exec.Submit(NewCallable(func(interface{}) interface{} { return i }, nil))
		testutil.AssertNoError(t, err)
		futures = append(futures, f)
	}

	testutil.AssertEqual(t, exec.PoolSize(), coreSize)
	testutil.AssertEqual(t, exec.QueueLen(), 3)

	close(release)
	for i, f := range futures {
		testutil.AssertEqual(t, f.Result().(int), i)
	}
	exec.Shutdown()
}

func TestSaturationForcesWorkerAndKeepsEvictedWork(t *testing.T) {
	// core 1, queue 1: the third submission finds both exhausted.
	exec, err := New(1, 3, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)

	release := make(chan struct{})
	evictions := int32(0)
	exec.callbacks.OnEviction = func() { atomic.AddInt32(&evictions, 1) }

	f1, err := exec.Submit(NewCallable(func(interface{}) interface{} {
		<-release
		return 1
	}, nil))
	testutil.AssertNoError(t, err)

	f2, err := exec.Submit(NewCallable(func(interface{}) interface{} { return 2 }, nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, exec.QueueLen(), 1)

	// Saturated: f2 is evicted to a forced worker, f3 takes its slot.
	f3, err := exec.Submit(NewCallable(func(interface{}) interface{} { return 3 }, nil))
	testutil.AssertNoError(t, err)

	testutil.Eventually(t, time.Second, func() bool {
		return exec.PoolSize() > 1
	}, "saturation should force a worker beyond core size")

	// The evicted future completes on the forced worker; nothing is lost.
	testutil.AssertEqual(t, f2.Result().(int), 2)
	testutil.AssertEqual(t, f3.Result().(int), 3)
	testutil.AssertEqual(t, atomic.LoadInt32(&evictions), int32(1))

	close(release)
	testutil.AssertEqual(t, f1.Result().(int), 1)
	exec.Shutdown()
}

func TestSaturationAtMaxPoolNeverDropsWork(t *testing.T) {
	// core 1, max 1, queue 1: forced creation always fails, so saturated
	// submissions race each other through the evict-and-replace path and
	// the blocking fallback. Every admitted future must still complete.
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)

	release := make(chan struct{})
	blocker, err := exec.Submit(NewCallable(func(interface{}) interface{} {
		<-release
		return "blocker"
	}, nil))
	testutil.AssertNoError(t, err)

	const submitters = 2
	futures := make(chan *Future, submitters)
	var wg sync.WaitGroup
	for i := 0; i < submitters; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := exec.Submit(NewCallable(func(params interface{}) interface{} {
				return params
			}, i))
			if err != nil {
				t.Errorf("submit %d: %v", i, err)
				return
			}
			futures <- f
		}()
	}

	// A saturated submitter may be parked in the blocking fallback until
	// the worker drains the queue; free it while the submits are in
	// flight.
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()
	wg.Wait()
	close(futures)

	testutil.AssertEqual(t, blocker.Result().(string), "blocker")
	for f := range futures {
		select {
		case <-f.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("admitted future never completed")
		}
	}
	exec.Shutdown()
}

func TestZeroKeepAliveIdleWorkerDoesNotSpin(t *testing.T) {
	var polls atomic.Int32
	exec, err := New(1, 2, 0, 2, WithQueueActivityFunc(func(op string, _ interface{}, _ bool) {
		if op == "poll" {
			polls.Add(1)
		}
	}))
	testutil.AssertNoError(t, err)

	f1, err := exec.Submit(NewCallable(func(interface{}) interface{} { return 1 }, nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, f1.Result().(int), 1)

	// The idle core worker parks for the next future instead of
	// re-polling with an already-expired deadline.
	time.Sleep(100 * time.Millisecond)
	testutil.AssertEqual(t, exec.PoolSize(), 1)
	if got := polls.Load(); got > 10 {
		t.Errorf("idle core worker polled %d times, expected it to park", got)
	}

	// And it still picks up later work.
	f2, err := exec.Submit(NewCallable(func(interface{}) interface{} { return 2 }, nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, f2.Result().(int), 2)

	exec.Shutdown()
	testutil.AssertEqual(t, exec.PoolSize(), 0)
}

func TestScenarioFiveCallables(t *testing.T) {
	// core 2, max 4, queue 2, keep-alive forever; five 50ms callables.
	exec, err := New(2, 4, KeepAliveForever, 2)
	testutil.AssertNoError(t, err)

	var live, maxLive int32
	work := func(params interface{}) interface{} {
		n := atomic.AddInt32(&live, 1)
		for {
			prev := atomic.LoadInt32(&maxLive)
			if n <= prev || atomic.CompareAndSwapInt32(&maxLive, prev, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&live, -1)
		return params.(int)
	}

	futures := make([]*Future, 5)
	for i := 0; i < 5; i++ {
		f, err := exec.Submit(NewCallable(work, i))
		testutil.AssertNoError(t, err)
		futures[i] = f
	}

	for i, f := range futures {
		testutil.AssertEqual(t, f.Result().(int), i)
	}
	if got := atomic.LoadInt32(&maxLive); got > 4 {
		t.Errorf("max concurrently live callables = %d, want <= 4", got)
	}

	start := time.Now()
	exec.Shutdown()
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Shutdown took %v after all results were retrieved", elapsed)
	}
	testutil.AssertEqual(t, exec.PoolSize(), 0)
}

func TestPeriodicCallable(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)

	var runs int32
	f, err := exec.Submit(NewPeriodicCallable(func(interface{}) interface{} {
		return atomic.AddInt32(&runs, 1)
	}, nil, 20*time.Millisecond))
	testutil.AssertNoError(t, err)

	testutil.Eventually(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(&runs) >= 3
	}, "periodic callable should re-execute")

	if _, ok := f.TryResult(); ok {
		t.Error("periodic future should not complete while running")
	}

	exec.Shutdown()

	// The future completes with the result of the final release.
	final := atomic.LoadInt32(&runs)
	testutil.AssertEqual(t, f.Result().(int32), final)
}

func TestPeriodicStopsOnShutdown(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)

	var runs int32
	_, err = exec.Submit(NewPeriodicCallable(func(interface{}) interface{} {
		return atomic.AddInt32(&runs, 1)
	}, nil, 10*time.Millisecond))
	testutil.AssertNoError(t, err)

	testutil.Eventually(t, time.Second, func() bool {
		return atomic.LoadInt32(&runs) >= 2
	}, "periodic callable should start")

	exec.Shutdown()
	after := atomic.LoadInt32(&runs)
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt32(&runs), after)
}

func TestShutdownDrainsPendingWork(t *testing.T) {
	exec, err := New(1, 2, KeepAliveForever, 4)
	testutil.AssertNoError(t, err)

	// One slow occupier plus queued work; shutdown must drain it all.
	var done int32
	slow := func(interface{}) interface{} {
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&done, 1)
		return nil
	}
	var futures []*Future
	for i := 0; i < 4; i++ {
		f, err := exec.Submit(NewCallable(slow, nil))
		testutil.AssertNoError(t, err)
		futures = append(futures, f)
	}

	exec.Shutdown()
	testutil.AssertEqual(t, exec.PoolSize(), 0)
	testutil.AssertEqual(t, atomic.LoadInt32(&done), int32(4))
	for _, f := range futures {
		if _, ok := f.TryResult(); !ok {
			t.Error("queued future not completed before shutdown returned")
		}
	}
}

func TestShutdownIdempotent(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)
	exec.Shutdown()
	exec.Shutdown()
	testutil.AssertEqual(t, exec.PoolSize(), 0)
}

func TestKeepAliveReleasesForcedWorkers(t *testing.T) {
	const keepAlive = 50 * time.Millisecond
	exec, err := New(1, 3, keepAlive, 1)
	testutil.AssertNoError(t, err)

	release := make(chan struct{})
	_, err = exec.Submit(NewCallable(func(interface{}) interface{} {
		<-release
		return nil
	}, nil))
	testutil.AssertNoError(t, err)

	// Saturate to force extra workers.
	for i := 0; i < 3; i++ {
		_, err := exec.Submit(NewCallable(func(interface{}) interface{} { return nil }, nil))
		testutil.AssertNoError(t, err)
	}

	testutil.Eventually(t, time.Second, func() bool {
		return exec.PoolSize() > 1
	}, "forced workers should appear under saturation")

	// Idle forced workers release themselves after the keep-alive window;
	// the pool settles back to core size.
	testutil.Eventually(t, 2*time.Second, func() bool {
		return exec.PoolSize() == 1
	}, "forced workers should be released after keep-alive")

	close(release)
	exec.Shutdown()
}

func TestPanicCompletesFuture(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 1)
	testutil.AssertNoError(t, err)
	defer exec.Shutdown()

	f, err := exec.Submit(NewCallable(func(interface{}) interface{} {
		panic("boom")
	}, nil))
	testutil.AssertNoError(t, err)

	perr, ok := f.Result().(*PanicError)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, perr.Value.(string), "boom")
}

func TestCondVarQueueStrategy(t *testing.T) {
	exec, err := New(2, 4, KeepAliveForever, 4, WithQueueStrategy(queue.CondVar))
	testutil.AssertNoError(t, err)
	defer exec.Shutdown()

	f, err := exec.Submit(NewCallable(func(interface{}) interface{} { return "ok" }, nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, f.Result().(string), "ok")
}

func TestCounters(t *testing.T) {
	exec, err := New(1, 1, KeepAliveForever, 2)
	testutil.AssertNoError(t, err)

	for i := 0; i < 3; i++ {
		f, err := exec.Submit(NewCallable(func(interface{}) interface{} { return nil }, nil))
		testutil.AssertNoError(t, err)
		f.Result()
	}

	testutil.AssertEqual(t, exec.Submitted(), int64(3))
	testutil.Eventually(t, time.Second, func() bool {
		return exec.Completed() == 3
	}, "completed counter should reach 3")
	exec.Shutdown()
}
