package engine

// Scheduler is a FIFO queue of stale instances. An instance is queued at
// most once until it is drained, which is what collapses several refreshes
// into one re-render.
type Scheduler struct {
	queue  []*Instance
	queued map[*Instance]struct{}
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{queued: make(map[*Instance]struct{})}
}

// Schedule queues in unless it is already queued.
func (s *Scheduler) Schedule(in *Instance) {
	if _, ok := s.queued[in]; ok {
		return
	}
	s.queued[in] = struct{}{}
	s.queue = append(s.queue, in)
}

// Len returns the number of queued instances.
func (s *Scheduler) Len() int { return len(s.queue) }

// Drain processes the instances queued at the time of the call, in FIFO
// order. Instances scheduled while draining stay queued for the next call,
// so a caller can bound how many passes it runs. Unmounted and clean
// instances are skipped. It returns how many instances fn was called for.
func (s *Scheduler) Drain(fn func(*Instance)) int {
	batch := s.queue
	s.queue = nil
	for _, in := range batch {
		delete(s.queued, in)
	}

	n := 0
	for _, in := range batch {
		if in.gone || !in.dirty {
			continue
		}
		fn(in)
		n++
	}
	return n
}
