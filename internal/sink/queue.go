// Package sink carries fully-resolved method discoveries out of the graph
// builder. The builder appends records and a downstream stage (call-site
// analysis, reporting) drains them; production and consumption rates are
// decoupled without changing ordering: one record per method, appended
// after all of its references have been recorded.
package sink

import (
	"sync"

	"clrindex/internal/metadata"
)

// Record is one discovered method or constructor.
type Record struct {
	// Method is the raw member handle, for downstream body analysis.
	Method *metadata.Member

	// MemberID is the stored identity of the method declaration.
	MemberID int64

	// OwnerID is the stored identity of the declaring type.
	OwnerID int64
}

// Queue is an append-only record queue. Appends never block and never
// re-enter the producer.
type Queue struct {
	mu   sync.Mutex
	recs []Record
}

func NewQueue() *Queue {
	return &Queue{}
}

// Put appends a record.
func (q *Queue) Put(rec Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.recs = append(q.recs, rec)
}

// Drain removes and returns all queued records in append order.
func (q *Queue) Drain() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.recs
	q.recs = nil
	return out
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.recs)
}

// Discard drops every record. Useful when no downstream stage is wired.
type Discard struct{}

func (Discard) Put(Record) {}
