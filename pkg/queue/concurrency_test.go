package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestCountStaysBounded hammers a small queue from both directions and
// checks the stored-item count never leaves [0, capacity].
func TestCountStaysBounded(t *testing.T) {
	strategies(t, func(t *testing.T, s Strategy) {
		const capacity = 4
		q := mustNew(t, capacity, s)

		var stop atomic.Bool
		var violations atomic.Int64
		var wg sync.WaitGroup

		for i := 0; i < 3; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for !stop.Load() {
					q.Add(1)
				}
			}()
			go func() {
				defer wg.Done()
				for !stop.Load() {
					q.Remove()
				}
			}()
		}

		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			if n := q.Len(); n < 0 || n > capacity {
				violations.Add(1)
			}
		}
		stop.Store(true)
		wg.Wait()

		require.Zero(t, violations.Load(), "item count left [0, %d]", capacity)
	})
}

// TestNoLossNoDuplication checks that every item put by concurrent
// producers is taken exactly once by concurrent consumers.
func TestNoLossNoDuplication(t *testing.T) {
	strategies(t, func(t *testing.T, s Strategy) {
		const (
			producers        = 4
			itemsPerProducer = 250
			total            = producers * itemsPerProducer
		)
		q := mustNew(t, 8, s)

		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			p := p
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < itemsPerProducer; i++ {
					q.Put(p*itemsPerProducer + i)
				}
			}()
		}

		seen := make([]int32, total)
		var consumed sync.WaitGroup
		for c := 0; c < 4; c++ {
			consumed.Add(1)
			go func() {
				defer consumed.Done()
				for {
					item, ok := q.Poll(time.Now().Add(500 * time.Millisecond))
					if !ok {
						return
					}
					atomic.AddInt32(&seen[item.(int)], 1)
				}
			}()
		}

		wg.Wait()
		consumed.Wait()

		for i, n := range seen {
			require.EqualValues(t, 1, n, "item %d delivered %d times", i, n)
		}
	})
}

// TestSingleWaitingPutterProceeds checks that one successful Get makes a
// single blocked putter eligible to proceed.
func TestSingleWaitingPutterProceeds(t *testing.T) {
	strategies(t, func(t *testing.T, s Strategy) {
		q := mustNew(t, 1, s)
		q.Put("resident")

		proceeded := make(chan struct{})
		go func() {
			q.Put("waiter")
			close(proceeded)
		}()

		time.Sleep(20 * time.Millisecond)
		require.Equal(t, "resident", q.Get())

		select {
		case <-proceeded:
		case <-time.After(time.Second):
			t.Fatal("blocked putter was not released by Get")
		}
	})
}
