package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"aide/internal/domain"
)

type countingRanker struct {
	gen   uint64
	calls int
}

func (r *countingRanker) Query(raw string) []domain.Candidate {
	r.calls++
	return []domain.Candidate{{Name: raw, Score: 1}}
}

func (r *countingRanker) Generation() uint64 { return r.gen }

func TestQueryCache_GetPut(t *testing.T) {
	c := NewQueryCache(2, time.Minute)

	_, hit := c.Get("a", 0)
	assert.False(t, hit)

	c.Put("a", 0, []domain.Candidate{{Name: "alpha"}})
	got, hit := c.Get("a", 0)
	assert.True(t, hit)
	assert.Equal(t, "alpha", got[0].Name)

	_, hit = c.Get("a", 1)
	assert.False(t, hit, "stale generation must miss")
	assert.Equal(t, 0, c.Size())
}

func TestQueryCache_EvictsOldest(t *testing.T) {
	c := NewQueryCache(2, time.Minute)
	c.Put("a", 0, nil)
	c.Put("b", 0, nil)
	c.Get("a", 0)
	c.Put("c", 0, nil)

	_, hit := c.Get("b", 0)
	assert.False(t, hit)
	_, hit = c.Get("a", 0)
	assert.True(t, hit)
	assert.Equal(t, 2, c.Size())

	c.Invalidate()
	assert.Equal(t, 0, c.Size())
}

func TestQueryCache_TTL(t *testing.T) {
	c := NewQueryCache(2, time.Nanosecond)
	c.Put("a", 0, nil)
	time.Sleep(time.Millisecond)

	_, hit := c.Get("a", 0)
	assert.False(t, hit)
}

func TestCachedRanker(t *testing.T) {
	inner := &countingRanker{}
	r := NewCachedRanker(inner, NewQueryCache(8, time.Minute))

	r.Query("cmds")
	r.Query("cmds")
	assert.Equal(t, 1, inner.calls)

	inner.gen++
	r.Query("cmds")
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, uint64(1), r.Generation())
}
