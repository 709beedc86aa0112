/*
Package queue provides a bounded blocking FIFO queue for concurrent
producers and consumers.

The queue wraps fixed-capacity ring storage with synchronization and offers
three variants of each direction: blocking (Get/Put), non-blocking
(Remove/Add), and deadline-bounded (Poll/Offer). Two interchangeable
synchronization strategies implement the same contract and are selected at
construction:

	q, err := queue.New(16)                                // semaphore-based
	q, err := queue.New(16, queue.WithStrategy(queue.CondVar)) // condition-variable-based

Basic usage:

	q, err := queue.New(8)
	if err != nil {
		log.Fatal(err)
	}

	q.Put("job")            // blocks while full
	item := q.Get()         // blocks while empty

	if item, ok := q.Remove(); ok {
		// non-blocking removal succeeded
	}

	ok := q.Offer("job", time.Now().Add(100*time.Millisecond))
	item, ok := q.Poll(time.Now().Add(100*time.Millisecond))

Guarantees, uniform across both strategies:

  - at most one goroutine manipulates the storage at a time
  - stored-item count stays within [0, capacity]
  - FIFO order is preserved for same-direction operations
  - Remove and Add never block
  - Poll and Offer block at most until their absolute deadline
  - a timeout is a normal outcome reported by the boolean return, not an error

Deadlines are absolute timestamps. Compute them once and reuse them; do not
rebuild them from relative durations in a loop.
*/
package queue
