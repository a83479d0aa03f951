package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashFamily(t *testing.T) {
	f, err := NewHashFamily(20, 10, 42)
	require.NoError(t, err)

	assert.Equal(t, 20, f.NumHashes())
	assert.Equal(t, 10, f.NumValues())
	assert.Equal(t, uint64(11), f.Prime())

	for i := 0; i < f.NumHashes(); i++ {
		a, b := f.Coefficients(i)
		assert.GreaterOrEqual(t, a, uint64(1))
		assert.Less(t, a, f.Prime())
		assert.Less(t, b, f.Prime())
		for x := uint32(0); x < 10; x++ {
			assert.Less(t, f.Apply(i, x), uint32(10))
		}
	}
}

func TestHashFamilyDeterministic(t *testing.T) {
	f1, err := NewHashFamily(50, 1000, 7)
	require.NoError(t, err)
	f2, err := NewHashFamily(50, 1000, 7)
	require.NoError(t, err)
	f3, err := NewHashFamily(50, 1000, 8)
	require.NoError(t, err)

	differs := false
	for i := 0; i < 50; i++ {
		a1, b1 := f1.Coefficients(i)
		a2, b2 := f2.Coefficients(i)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)

		a3, b3 := f3.Coefficients(i)
		if a1 != a3 || b1 != b3 {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should draw different coefficients")
}

func TestHashFamilySmallUniverse(t *testing.T) {
	f, err := NewHashFamily(5, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), f.Prime())
	for i := 0; i < 5; i++ {
		assert.Equal(t, uint32(0), f.Apply(i, 0))
	}
}

func TestHashFamilyLargeUniverseNoOverflow(t *testing.T) {
	f, err := NewHashFamily(8, MaxNumValues, 3)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		assert.Less(t, f.Apply(i, MaxNumValues-1), uint32(MaxNumValues))
	}
}

func TestHashFamilyErrors(t *testing.T) {
	_, err := NewHashFamily(0, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidNumHashes)

	_, err = NewHashFamily(10, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidNumValues)

	_, err = NewHashFamily(10, MaxNumValues+1, 1)
	assert.ErrorIs(t, err, ErrInvalidNumValues)
}
