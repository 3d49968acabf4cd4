// Package batch converts several exercise pages with bounded concurrency.
package batch

import (
	"strings"
	"sync"
)

// IDQueue holds exercise ids waiting to be fetched, each id at most once.
type IDQueue struct {
	mu    sync.Mutex
	queue []queueItem
	seen  map[string]bool
}

type queueItem struct {
	ID    string
	Index int // position among the accepted ids
}

// NewIDQueue creates an empty queue.
func NewIDQueue() *IDQueue {
	return &IDQueue{
		queue: make([]queueItem, 0),
		seen:  make(map[string]bool),
	}
}

// Add queues id unless it is blank or was already added.
func (q *IDQueue) Add(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	id = normalizeID(id)
	if id == "" || q.seen[id] {
		return false
	}

	q.queue = append(q.queue, queueItem{ID: id, Index: len(q.seen)})
	q.seen[id] = true
	return true
}

// Pop removes and returns the next id and its position.
func (q *IDQueue) Pop() (string, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.queue) == 0 {
		return "", 0, false
	}

	item := q.queue[0]
	q.queue = q.queue[1:]
	return item.ID, item.Index, true
}

// Len returns the number of ids still queued.
func (q *IDQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// Seen reports whether id was ever added.
func (q *IDQueue) Seen(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen[normalizeID(id)]
}

// normalizeID strips surrounding white space and leading zeros, so "007"
// and "7" name the same page.
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if !isDigits(id) {
		return id
	}
	if trimmed := strings.TrimLeft(id, "0"); trimmed != "" {
		return trimmed
	}
	return "0"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
