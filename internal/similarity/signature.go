package similarity

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Sentinel is the initial value of every signature cell. It stays in place
// for objects with an empty feature set.
const Sentinel = math.MaxUint32

// SignatureMatrix holds one row per hash function and one column per object.
// Cell (i, obj) is the minimum of h_i over the object's features.
type SignatureMatrix struct {
	rows       [][]uint32
	numObjects int
}

// BuildSignatures computes the MinHash signature of every object.
// Each row is computed by a single goroutine.
func BuildSignatures(ctx context.Context, mapping *ObjectMapping, family *HashFamily, workers int) (*SignatureMatrix, error) {
	limit := uint32(family.NumValues())
	for obj, set := range mapping.sets {
		if !set.IsEmpty() && set.Maximum() >= limit {
			return nil, fmt.Errorf("%w: object %d has feature %d, numValues is %d",
				ErrFeatureOutOfRange, obj, set.Maximum(), limit)
		}
	}

	n := mapping.Len()
	m := &SignatureMatrix{
		rows:       make([][]uint32, family.NumHashes()),
		numObjects: n,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(workers))
	for i := range m.rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]uint32, n)
			for obj, set := range mapping.sets {
				best := uint32(Sentinel)
				it := set.Iterator()
				for it.HasNext() {
					if h := family.Apply(i, it.Next()); h < best {
						best = h
					}
				}
				row[obj] = best
			}
			m.rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// NumHashes returns the number of rows.
func (m *SignatureMatrix) NumHashes() int { return len(m.rows) }

// NumObjects returns the number of columns.
func (m *SignatureMatrix) NumObjects() int { return m.numObjects }

// At returns cell (i, obj).
func (m *SignatureMatrix) At(i, obj int) uint32 { return m.rows[i][obj] }

// Column returns a copy of an object's signature.
func (m *SignatureMatrix) Column(obj int) []uint32 {
	col := make([]uint32, len(m.rows))
	for i, row := range m.rows {
		col[i] = row[obj]
	}
	return col
}

// estimateSimilarity returns the fraction of rows on which two objects agree.
// Two empty objects agree on every row.
func (m *SignatureMatrix) estimateSimilarity(obj1, obj2 int) float64 {
	if len(m.rows) == 0 {
		return 0
	}
	matches := 0
	for _, row := range m.rows {
		if row[obj1] == row[obj2] {
			matches++
		}
	}
	return float64(matches) / float64(len(m.rows))
}
