package similarity

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []uint32
		expected float64
	}{
		{"partial overlap", []uint32{1, 2, 3}, []uint32{2, 3, 4}, 0.5},
		{"disjoint", []uint32{1, 2, 3}, []uint32{8, 9}, 0},
		{"identical", []uint32{5, 7}, []uint32{5, 7}, 1},
		{"both empty", nil, nil, 0},
		{"one empty", []uint32{1}, nil, 0},
		{"subset", []uint32{1, 2}, []uint32{1, 2, 3, 4}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := roaring.BitmapOf(tt.a...)
			b := roaring.BitmapOf(tt.b...)
			assert.InDelta(t, tt.expected, Jaccard(a, b), 1e-12)
			assert.Equal(t, Jaccard(a, b), Jaccard(b, a), "jaccard must be symmetric")
		})
	}
}

func TestJaccardBounds(t *testing.T) {
	sets := [][]uint32{{}, {1}, {1, 2}, {2, 3, 4}, {0, 100, 1000}, {1, 2, 3, 4, 5, 6}}
	for _, x := range sets {
		for _, y := range sets {
			sim := Jaccard(roaring.BitmapOf(x...), roaring.BitmapOf(y...))
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
		}
	}
}

func TestJaccardNil(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(nil, roaring.BitmapOf(1)))
}
