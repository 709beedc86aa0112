/*
Package pool provides bookkeeping for a bounded, elastic set of worker
goroutines.

A Pool has a core size, a maximum size, and a cooperative shutdown flag.
CreateWorker admits new workers freely up to the core size and, when forced,
up to the maximum; RemoveWorker lets an idle worker ask to terminate. The
live count never exceeds the maximum and never falls below the core size
unless shutdown has been requested.

	p, err := pool.New(2, 4)
	if err != nil {
		log.Fatal(err)
	}

	p.CreateWorker(work, false) // within core size
	p.CreateWorker(work, true)  // may exceed core size, up to max

	p.Shutdown()
	p.WaitEmpty() // blocks until every worker has released itself

Shutdown is purely cooperative: workers poll IsShutdown between work items
and decide when to call RemoveWorker. Nothing is interrupted in flight.
*/
package pool
