package ratings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRatings = `1::10::5::978300760
1::20::3::978302109
1::30::1::978301968
2::10::4::978300275
2::30::2::978824291

7	20	4	881250949
`

func TestLoad(t *testing.T) {
	d, err := Load(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 7}, d.Users())
	assert.Equal(t, 3, d.NumUsers())
	assert.Equal(t, 3, d.NumMovies())
	assert.Equal(t, 6, d.NumRatings())
	assert.Equal(t, 6, d.NumValues())
	assert.Len(t, d.Ratings(1), 3)
}

func TestAverages(t *testing.T) {
	d, err := Load(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	avg, ok := d.UserAverage(1)
	require.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-12)

	_, ok = d.UserAverage(99)
	assert.False(t, ok)

	assert.InDelta(t, 4.5, d.MovieAverage(10), 1e-12)
	assert.InDelta(t, 3.5, d.MovieAverage(20), 1e-12)
	assert.Equal(t, DefaultRating, d.MovieAverage(404))
}

func TestFeatureSet(t *testing.T) {
	d, err := Load(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	// Movies 10, 20, 30 have internal ids 0, 1, 2. User 1 averages 3.0.
	assert.Equal(t, []uint32{0, 2, 5}, d.FeatureSet(1).ToArray())
	// User 2 averages 3.0: 4 >= 3 likes movie 0, 2 dislikes movie 2.
	assert.Equal(t, []uint32{0, 5}, d.FeatureSet(2).ToArray())
	assert.True(t, d.FeatureSet(99).IsEmpty())
}

func TestMapping(t *testing.T) {
	d, err := Load(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	m, ids := d.Mapping(0)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []int{1, 2, 7}, ids)

	m, ids = d.Mapping(2)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []int{1, 2}, ids)
	assert.Equal(t, []uint32{0, 5}, m.Set(1).ToArray())
}

func TestParseLine(t *testing.T) {
	u, m, r, err := ParseLine("3::4::2.5")
	require.NoError(t, err)
	assert.Equal(t, 3, u)
	assert.Equal(t, 4, m)
	assert.Equal(t, 2.5, r)

	for _, bad := range []string{"1::2", "a::2::3", "1::b::3", "1::2::x"} {
		_, _, _, err := ParseLine(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadReportsLine(t *testing.T) {
	_, err := Load(strings.NewReader("1::2::3\nbroken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.dat")
	require.NoError(t, os.WriteFile(path, []byte(sampleRatings), 0644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumUsers())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)
}
