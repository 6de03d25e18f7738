package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicePoolReturnsEmptySlices(t *testing.T) {
	p := NewSlicePool[int](4)

	s := p.Get()
	assert.Empty(t, *s)
	assert.GreaterOrEqual(t, cap(*s), 4)

	*s = append(*s, 1, 2, 3)
	p.Put(s)

	again := p.Get()
	assert.Empty(t, *again)
}

func TestPoolWithoutReset(t *testing.T) {
	calls := 0
	p := NewPool(func() int { calls++; return 7 }, nil)
	assert.Equal(t, 7, p.Get())
	p.Put(9)
	assert.Positive(t, calls)
}
