package similarity

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

// BandTable splits a signature matrix into bands and buckets objects whose
// rows are identical within a band. Bucket keys are the band's row values
// encoded as fixed-width big-endian uint32s, so distinct rows never share a key.
type BandTable struct {
	sig         *SignatureMatrix
	buckets     []map[string]*roaring.Bitmap
	rowsPerBand int
}

// BandStats summarizes bucket occupancy across all bands.
type BandStats struct {
	NumBands         int     `json:"num_bands" yaml:"num_bands"`
	RowsPerBand      int     `json:"rows_per_band" yaml:"rows_per_band"`
	UnusedRows       int     `json:"unused_rows" yaml:"unused_rows"`
	NumBuckets       int     `json:"num_buckets" yaml:"num_buckets"`
	CollidingBuckets int     `json:"colliding_buckets" yaml:"colliding_buckets"`
	MinBucketSize    int     `json:"min_bucket_size" yaml:"min_bucket_size"`
	MaxBucketSize    int     `json:"max_bucket_size" yaml:"max_bucket_size"`
	AvgBucketSize    float64 `json:"avg_bucket_size" yaml:"avg_bucket_size"`
	MedianBucketSize float64 `json:"median_bucket_size" yaml:"median_bucket_size"`
}

// BuildBands buckets every object in every band. rowsPerBand is
// numHashes / numBands; trailing rows that do not fill a band are ignored.
func BuildBands(ctx context.Context, sig *SignatureMatrix, numBands, workers int) (*BandTable, error) {
	if numBands <= 0 || numBands > sig.NumHashes() {
		return nil, fmt.Errorf("%w: bands=%d hashes=%d", ErrInvalidNumBands, numBands, sig.NumHashes())
	}

	t := &BandTable{
		sig:         sig,
		buckets:     make([]map[string]*roaring.Bitmap, numBands),
		rowsPerBand: sig.NumHashes() / numBands,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(workers))
	for band := range t.buckets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := make([]byte, 4*t.rowsPerBand)
			table := make(map[string]*roaring.Bitmap)
			for obj := 0; obj < sig.NumObjects(); obj++ {
				key := t.encodeKey(buf, band, obj)
				members, ok := table[key]
				if !ok {
					members = roaring.New()
					table[key] = members
				}
				members.Add(uint32(obj))
			}
			t.buckets[band] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *BandTable) encodeKey(buf []byte, band, obj int) string {
	start := band * t.rowsPerBand
	for r := 0; r < t.rowsPerBand; r++ {
		binary.BigEndian.PutUint32(buf[4*r:], t.sig.At(start+r, obj))
	}
	return string(buf)
}

// NumBands returns the number of bands.
func (t *BandTable) NumBands() int { return len(t.buckets) }

// RowsPerBand returns the number of signature rows per band.
func (t *BandTable) RowsPerBand() int { return t.rowsPerBand }

// UnusedRows returns how many trailing signature rows are outside every band.
func (t *BandTable) UnusedRows() int {
	return t.sig.NumHashes() - len(t.buckets)*t.rowsPerBand
}

// Bucket returns the members of obj's bucket in the given band, obj included.
func (t *BandTable) Bucket(band, obj int) *roaring.Bitmap {
	buf := make([]byte, 4*t.rowsPerBand)
	return t.buckets[band][t.encodeKey(buf, band, obj)]
}

// ForEachBucket calls fn for every bucket of a band. Iteration order is unspecified.
func (t *BandTable) ForEachBucket(band int, fn func(members *roaring.Bitmap)) {
	for _, members := range t.buckets[band] {
		fn(members)
	}
}

// Stats computes bucket size statistics.
func (t *BandTable) Stats() BandStats {
	stats := BandStats{
		NumBands:    len(t.buckets),
		RowsPerBand: t.rowsPerBand,
		UnusedRows:  t.UnusedRows(),
	}

	var sizes []int
	total := 0
	for _, table := range t.buckets {
		for _, members := range table {
			size := int(members.GetCardinality())
			sizes = append(sizes, size)
			total += size
			if size > 1 {
				stats.CollidingBuckets++
			}
		}
	}
	stats.NumBuckets = len(sizes)
	if len(sizes) == 0 {
		return stats
	}

	sort.Ints(sizes)
	stats.MinBucketSize = sizes[0]
	stats.MaxBucketSize = sizes[len(sizes)-1]
	stats.AvgBucketSize = float64(total) / float64(len(sizes))
	if len(sizes)%2 == 0 {
		mid := len(sizes) / 2
		stats.MedianBucketSize = float64(sizes[mid-1]+sizes[mid]) / 2.0
	} else {
		stats.MedianBucketSize = float64(sizes[len(sizes)/2])
	}
	return stats
}

// CandidateProbability is the chance that two objects with similarity s
// share a bucket in at least one of bands bands of rows rows: 1-(1-s^r)^b.
func CandidateProbability(s float64, bands, rows int) float64 {
	if bands <= 0 || rows <= 0 {
		return 0
	}
	return 1 - math.Pow(1-math.Pow(s, float64(rows)), float64(bands))
}

// ApproximateThreshold is the similarity where CandidateProbability rises
// most steeply, roughly (1/b)^(1/r).
func ApproximateThreshold(bands, rows int) float64 {
	if bands <= 0 || rows <= 0 {
		return 0
	}
	return math.Pow(1.0/float64(bands), 1.0/float64(rows))
}

// SuggestBands picks the band count for numHashes whose approximate
// threshold is closest to target.
func SuggestBands(numHashes int, target float64) int {
	best, bestErr := 1, math.Inf(1)
	for bands := 1; bands <= numHashes; bands++ {
		rows := numHashes / bands
		if e := math.Abs(ApproximateThreshold(bands, rows) - target); e < bestErr {
			best, bestErr = bands, e
		}
	}
	return best
}
