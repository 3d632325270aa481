package workqueue

import (
	"container/heap"
	"sync"
	"time"
)

type scheduledTask struct {
	at    time.Time
	run   func()
	index int
}

type taskHeap []*scheduledTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *taskHeap) Push(x any)         { t := x.(*scheduledTask); t.index = len(*h); *h = append(*h, t) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler runs functions after a delay on a single background
// goroutine, which is started lazily on the first After call. Delays
// are measured on the monotonic clock.
type Scheduler struct {
	mu      sync.Mutex
	tasks   taskHeap
	wake    chan struct{}
	stop    chan struct{}
	started bool
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// After schedules fn to run once the delay has elapsed.
func (s *Scheduler) After(delay time.Duration, fn func()) {
	s.mu.Lock()
	heap.Push(&s.tasks, &scheduledTask{at: time.Now().Add(delay), run: fn})
	if !s.started {
		s.started = true
		go s.loop()
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop terminates the background goroutine. Pending tasks are dropped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		close(s.stop)
		s.started = false
	}
}

func (s *Scheduler) loop() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		s.mu.Lock()
		var wait time.Duration
		if len(s.tasks) == 0 {
			wait = time.Hour
		} else {
			wait = time.Until(s.tasks[0].at)
		}
		s.mu.Unlock()

		if wait <= 0 {
			s.runDue()
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-timer.C:
			s.runDue()
		case <-s.wake:
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runDue() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].at.After(time.Now()) {
			s.mu.Unlock()
			return
		}
		task := heap.Pop(&s.tasks).(*scheduledTask)
		s.mu.Unlock()
		task.run()
	}
}
