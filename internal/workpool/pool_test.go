package workpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunVisitsEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Close()

	seen := make([]int32, 1000)
	p.Run(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, n := range seen {
		assert.Equal(t, int32(1), n, "index %d", i)
	}
}

func TestRunJoinsBeforeReturning(t *testing.T) {
	p := New(3)
	defer p.Close()

	for round := 0; round < 20; round++ {
		var done atomic.Int64
		p.Run(50, func(int) { done.Add(1) })
		assert.Equal(t, int64(50), done.Load())
	}
}

func TestChunksCoverRange(t *testing.T) {
	p := New(3)
	defer p.Close()

	for _, n := range []int{1, 2, 3, 7, 100} {
		hits := make([]int32, n)
		p.Chunks(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "n=%d i=%d", n, i)
		}
	}
}

func TestDefaultWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.Positive(t, p.Workers())
	p.Close() // idempotent
}
