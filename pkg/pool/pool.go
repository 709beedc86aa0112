package pool

import (
	"sync"

	"github.com/vnykmshr/goexec/pkg/common/validation"
)

// Pool tracks a bounded, elastic set of worker goroutines. It keeps at
// least coreSize workers alive long-term and allows forced growth up to
// maxSize under saturation.
//
// The pool only does bookkeeping: it spawns goroutines and counts them. The
// work loop itself belongs to the caller (see package executor).
type Pool struct {
	mu       sync.Mutex
	empty    *sync.Cond
	coreSize int
	maxSize  int
	size     int
	shutdown bool
}

// New creates a Pool with the given core and maximum sizes.
func New(coreSize, maxSize int) (*Pool, error) {
	if err := validation.ValidatePositive("pool", "coreSize", coreSize); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("pool", "maxSize", maxSize); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtLeast("pool", "maxSize", maxSize, coreSize); err != nil {
		return nil, err
	}

	p := &Pool{
		coreSize: coreSize,
		maxSize:  maxSize,
	}
	p.empty = sync.NewCond(&p.mu)
	return p, nil
}

// CreateWorker spawns a goroutine running fn if the pool has room. Below
// coreSize a worker is always created. At or above coreSize, one is created
// only when force is true and the pool is still below maxSize. The return
// value reports whether a worker was spawned.
func (p *Pool) CreateWorker(fn func(), force bool) bool {
	p.mu.Lock()
	created := false
	if p.size < p.coreSize {
		p.size++
		created = true
	} else if force && p.size < p.maxSize {
		p.size++
		created = true
	}
	p.mu.Unlock()

	if created {
		go fn()
	}
	return created
}

// RemoveWorker is called by an idle worker asking to terminate. The pool
// grants the request when the live count exceeds coreSize, or
// unconditionally once shutdown is set. When the count reaches zero, any
// goroutine blocked in WaitEmpty is woken. The return value reports whether
// the calling worker should terminate.
func (p *Pool) RemoveWorker() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	release := false
	if p.size > p.coreSize {
		p.size--
		release = true
	} else if p.shutdown {
		p.size--
		release = true
	}

	if p.size == 0 {
		p.empty.Broadcast()
	}
	return release
}

// Shutdown sets the shutdown flag. Workers observe it cooperatively; no
// running work is interrupted.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.shutdown = true
	p.mu.Unlock()
}

// IsShutdown reports whether Shutdown has been called.
func (p *Pool) IsShutdown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdown
}

// Size returns the current number of live workers.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// CoreSize returns the configured core size.
func (p *Pool) CoreSize() int {
	return p.coreSize
}

// MaxSize returns the configured maximum size.
func (p *Pool) MaxSize() int {
	return p.maxSize
}

// WaitEmpty blocks until the live worker count reaches zero.
func (p *Pool) WaitEmpty() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.size != 0 {
		p.empty.Wait()
	}
}
