package executor

import (
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/goexec/internal/testutil"
)

func TestFutureResultBlocksUntilComplete(t *testing.T) {
	f := newFuture(NewCallable(func(interface{}) interface{} { return nil }, nil))

	got := make(chan interface{}, 1)
	go func() {
		got <- f.Result()
	}()

	select {
	case v := <-got:
		t.Fatalf("Result returned %v before complete", v)
	case <-time.After(30 * time.Millisecond):
	}

	f.complete("value")
	select {
	case v := <-got:
		testutil.AssertEqual(t, v.(string), "value")
	case <-time.After(time.Second):
		t.Fatal("Result did not unblock after complete")
	}
}

func TestFutureFanOut(t *testing.T) {
	f := newFuture(NewCallable(func(interface{}) interface{} { return nil }, nil))

	const waiters = 8
	results := make(chan interface{}, waiters)
	var ready sync.WaitGroup
	for i := 0; i < waiters; i++ {
		ready.Add(1)
		go func() {
			ready.Done()
			results <- f.Result()
		}()
	}
	ready.Wait()

	f.complete(42)
	for i := 0; i < waiters; i++ {
		select {
		case v := <-results:
			testutil.AssertEqual(t, v.(int), 42)
		case <-time.After(time.Second):
			t.Fatalf("waiter %d not released", i)
		}
	}
}

func TestFutureCompleteOnce(t *testing.T) {
	f := newFuture(NewCallable(func(interface{}) interface{} { return nil }, nil))

	f.complete("first")
	f.complete("second")

	testutil.AssertEqual(t, f.Result().(string), "first")
}

func TestFutureTryResult(t *testing.T) {
	f := newFuture(NewCallable(func(interface{}) interface{} { return nil }, nil))

	if _, ok := f.TryResult(); ok {
		t.Fatal("TryResult should fail before completion")
	}

	f.complete(7)
	v, ok := f.TryResult()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v.(int), 7)
}

func TestFutureDone(t *testing.T) {
	f := newFuture(NewCallable(func(interface{}) interface{} { return nil }, nil))

	select {
	case <-f.Done():
		t.Fatal("Done closed before completion")
	default:
	}

	f.complete(nil)
	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after completion")
	}
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Value: "boom"}
	testutil.AssertEqual(t, err.Error(), "callable panicked: boom")
}
