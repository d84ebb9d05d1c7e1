// Package scan: ordered work queue with deduplication.
package scan

// Queue is a FIFO of source paths that ignores paths it has already seen.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates a Queue holding paths, in order, without duplicates.
func NewQueue(paths ...string) *Queue {
	q := &Queue{seen: make(map[string]bool)}
	for _, p := range paths {
		q.Add(p)
	}
	return q
}

// Add enqueues path unless an equivalent path was added before.
func (q *Queue) Add(path string) {
	key := NormalizePath(path)
	if q.seen[key] {
		return
	}
	q.seen[key] = true
	q.items = append(q.items, path)
}

// HasNext returns true if there are unprocessed paths.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed path and advances the pointer.
func (q *Queue) Next() string {
	path := q.items[q.idx]
	q.idx++
	return path
}

// Position returns how many paths have been taken from the queue.
func (q *Queue) Position() int {
	return q.idx
}

// Len returns the number of unique paths queued.
func (q *Queue) Len() int {
	return len(q.items)
}
