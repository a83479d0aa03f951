package similarity

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BruteForce compares every pair of objects exactly.
type BruteForce struct {
	mapping *ObjectMapping
	workers int
}

// NewBruteForce creates an exact searcher. workers <= 0 uses GOMAXPROCS.
func NewBruteForce(mapping *ObjectMapping, workers int) *BruteForce {
	return &BruteForce{mapping: mapping, workers: workerLimit(workers)}
}

// Method returns MethodBruteForce.
func (b *BruteForce) Method() Method { return MethodBruteForce }

// SimilarPairs returns every pair i<j whose similarity exceeds threshold,
// ordered by (ID1, ID2).
func (b *BruteForce) SimilarPairs(ctx context.Context, threshold float64) ([]SimilarPair, error) {
	n := b.mapping.Len()
	rows := make([][]SimilarPair, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			si := b.mapping.sets[i]
			var found []SimilarPair
			for j := i + 1; j < n; j++ {
				if sim := Jaccard(si, b.mapping.sets[j]); sim > threshold {
					found = append(found, SimilarPair{ID1: i, ID2: j, Similarity: sim})
				}
			}
			rows[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rows {
		total += len(r)
	}
	pairs := make([]SimilarPair, 0, total)
	for _, r := range rows {
		pairs = append(pairs, r...)
	}
	return pairs, nil
}

// Neighbors returns every other object whose similarity to objID exceeds
// threshold, ordered by id.
func (b *BruteForce) Neighbors(ctx context.Context, objID int, threshold float64) ([]Neighbor, error) {
	if err := b.mapping.checkID(objID); err != nil {
		return nil, err
	}
	query := b.mapping.sets[objID]
	var out []Neighbor
	for j, s := range b.mapping.sets {
		if j == objID {
			continue
		}
		if j%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if sim := Jaccard(query, s); sim > threshold {
			out = append(out, Neighbor{ID: j, Similarity: sim})
		}
	}
	return out, nil
}
