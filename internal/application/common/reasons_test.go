package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []uint
		want []uint
	}{
		{"keeps first occurrence order", []uint{3, 1, 3, 2, 1}, []uint{3, 1, 2}},
		{"already unique", []uint{5, 6}, []uint{5, 6}},
		{"empty", nil, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueIDs(tt.ids))
		})
	}
}

func TestMissingIDs(t *testing.T) {
	tests := []struct {
		name      string
		requested []uint
		found     []uint
		want      []uint
	}{
		{"reports absent ids in request order", []uint{4, 1, 9, 2}, []uint{2, 1}, []uint{4, 9}},
		{"nothing missing", []uint{1, 2}, []uint{2, 1}, []uint{}},
		{"nothing found", []uint{7}, nil, []uint{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingIDs(tt.requested, tt.found))
		})
	}
}
