package workqueue

import "sync"

// Pool drains a queue with a fixed number of worker goroutines.
type Pool[T any] struct {
	queue   *Queue[T]
	workers int
	handle  func(T)

	once sync.Once
	wg   sync.WaitGroup
}

// NewPool wires a handler to a queue. Workers start on the first call
// to Start.
func NewPool[T any](queue *Queue[T], workers int, handle func(T)) *Pool[T] {
	return &Pool[T]{queue: queue, workers: workers, handle: handle}
}

// Start launches the workers. Subsequent calls are no-ops, so callers
// may invoke it lazily on every enqueue.
func (p *Pool[T]) Start() {
	p.once.Do(func() {
		p.wg.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go func() {
				defer p.wg.Done()
				for {
					item, ok := p.queue.Pop()
					if !ok {
						return
					}
					p.handle(item)
				}
			}()
		}
	})
}

// Stop closes the queue and waits for the workers to drain it.
func (p *Pool[T]) Stop() {
	p.queue.Close()
	p.wg.Wait()
}
