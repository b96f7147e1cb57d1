// Package workpool runs fork-join batches of tasks on a fixed set of goroutines.
package workpool

import (
	"runtime"
	"sync"
)

type task struct {
	fn func(int)
	i  int
	wg *sync.WaitGroup
}

// Pool is a fixed set of worker goroutines fed from one shared queue.
// Run and Chunks may be called from several goroutines, but never from
// inside a task: a task that blocks on the pool can starve it.
type Pool struct {
	workers int
	queue   chan task
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts a pool. If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queue:   make(chan task, workers*4),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		t.fn(t.i)
		t.wg.Done()
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Run calls fn(i) for every i in [0, n) on the pool and blocks until all calls return.
func (p *Pool) Run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n == 1 {
		fn(0)
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		p.queue <- task{fn: fn, i: i, wg: &wg}
	}
	wg.Wait()
}

// Chunks splits [0, n) into at most Workers contiguous ranges and calls
// fn(lo, hi) for each on the pool, blocking until all return.
func (p *Pool) Chunks(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	parts := min(p.workers, n)
	size := (n + parts - 1) / parts
	parts = (n + size - 1) / size
	p.Run(parts, func(i int) {
		lo := i * size
		fn(lo, min(lo+size, n))
	})
}

// Close stops the workers after queued tasks finish. Run must not be called afterwards.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}
