package sink

import (
	"testing"

	"clrindex/internal/metadata"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrderAndDrain(t *testing.T) {
	q := NewQueue()
	a := &metadata.Member{Kind: metadata.KindMethod, Name: "A"}
	b := &metadata.Member{Kind: metadata.KindConstructor, Name: "B"}

	q.Put(Record{Method: a, MemberID: 1, OwnerID: 10})
	q.Put(Record{Method: b, MemberID: 2, OwnerID: 10})
	assert.Equal(t, 2, q.Len())

	recs := q.Drain()
	assert.Len(t, recs, 2)
	assert.Same(t, a, recs[0].Method)
	assert.Same(t, b, recs[1].Method)
	assert.Equal(t, int64(1), recs[0].MemberID)

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestDiscard(t *testing.T) {
	var d Discard
	d.Put(Record{MemberID: 1})
}
