package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_DeduplicatesAndKeepsOrder(t *testing.T) {
	s := New[uint](3, 1, 3, 2, 1)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []uint{3, 1, 2}, s.ToSlice())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(4))
	assert.False(t, s.Add(1))
	assert.True(t, s.Add(4))
}

func TestSet_Missing(t *testing.T) {
	requested := New[uint](1, 2, 3, 4)
	found := New[uint](2, 4)

	assert.Equal(t, []uint{1, 3}, requested.Missing(found))
	assert.Empty(t, found.Missing(requested))
}
