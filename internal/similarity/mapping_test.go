package similarity

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectMapping(t *testing.T) {
	m, err := NewObjectMapping(map[int][]uint32{
		0: {1, 2, 3},
		1: {},
		2: {9},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 10, m.NumFeatures())
	assert.True(t, m.Set(1).IsEmpty())
	assert.Nil(t, m.Set(3))
	assert.False(t, m.Contains(-1))
}

func TestNewObjectMappingRejectsGaps(t *testing.T) {
	_, err := NewObjectMapping(map[int][]uint32{0: {1}, 2: {2}})
	assert.ErrorIs(t, err, ErrNonContiguousIDs)

	_, err = NewObjectMapping(map[int][]uint32{1: {1}})
	assert.ErrorIs(t, err, ErrNonContiguousIDs)
}

func TestFromBitmapsNilEntry(t *testing.T) {
	m := FromBitmaps([]*roaring.Bitmap{roaring.BitmapOf(1), nil})
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Set(1).IsEmpty())
}

func TestNumFeaturesAllEmpty(t *testing.T) {
	m := FromBitmaps([]*roaring.Bitmap{roaring.New(), roaring.New()})
	assert.Equal(t, 0, m.NumFeatures())
}
