package similarity

import (
	"cmp"
	"slices"
)

// SimilarPair is an unordered pair of objects with ID1 < ID2.
type SimilarPair struct {
	ID1        int     `json:"id1" yaml:"id1"`
	ID2        int     `json:"id2" yaml:"id2"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// NewSimilarPair orders the ids so that ID1 < ID2.
func NewSimilarPair(a, b int, sim float64) SimilarPair {
	if a > b {
		a, b = b, a
	}
	return SimilarPair{ID1: a, ID2: b, Similarity: sim}
}

// Compare orders pairs by similarity only.
func (p SimilarPair) Compare(other SimilarPair) int {
	return cmp.Compare(p.Similarity, other.Similarity)
}

// Neighbor is an object similar to some query object.
type Neighbor struct {
	ID         int     `json:"id" yaml:"id"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// Compare orders neighbors by similarity only.
func (n Neighbor) Compare(other Neighbor) int {
	return cmp.Compare(n.Similarity, other.Similarity)
}

// SortPairs sorts by similarity descending, then by ids ascending.
func SortPairs(pairs []SimilarPair) {
	slices.SortFunc(pairs, func(a, b SimilarPair) int {
		if c := b.Compare(a); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ID1, b.ID1); c != 0 {
			return c
		}
		return cmp.Compare(a.ID2, b.ID2)
	})
}

// SortNeighbors sorts by similarity descending, then by id ascending.
func SortNeighbors(neighbors []Neighbor) {
	slices.SortFunc(neighbors, func(a, b Neighbor) int {
		if c := b.Compare(a); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

func splitPairKey(k uint64) (int, int) {
	return int(k >> 32), int(uint32(k))
}
