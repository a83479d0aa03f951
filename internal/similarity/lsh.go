package similarity

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"
)

// LSHParams configures MinHash signatures and banding.
type LSHParams struct {
	NumHashes int
	NumBands  int
	// NumValues is the feature universe size. Zero means mapping.NumFeatures().
	NumValues int
	Seed      int64
	Workers   int
}

// LSH finds similar pairs among objects that share at least one band bucket.
// Every reported pair is confirmed with exact Jaccard similarity.
type LSH struct {
	mapping *ObjectMapping
	family  *HashFamily
	sig     *SignatureMatrix
	bands   *BandTable
	workers int
}

// NewLSH builds the hash family, signature matrix and band table once.
func NewLSH(ctx context.Context, mapping *ObjectMapping, params LSHParams) (*LSH, error) {
	if params.NumHashes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumHashes, params.NumHashes)
	}
	if params.NumBands <= 0 || params.NumBands > params.NumHashes {
		return nil, fmt.Errorf("%w: bands=%d hashes=%d", ErrInvalidNumBands, params.NumBands, params.NumHashes)
	}

	numValues := params.NumValues
	if numValues == 0 {
		numValues = mapping.NumFeatures()
		if numValues == 0 {
			numValues = 1
		}
	}

	family, err := NewHashFamily(params.NumHashes, numValues, params.Seed)
	if err != nil {
		return nil, err
	}
	sig, err := BuildSignatures(ctx, mapping, family, params.Workers)
	if err != nil {
		return nil, err
	}
	bands, err := BuildBands(ctx, sig, params.NumBands, params.Workers)
	if err != nil {
		return nil, err
	}

	return &LSH{
		mapping: mapping,
		family:  family,
		sig:     sig,
		bands:   bands,
		workers: workerLimit(params.Workers),
	}, nil
}

// Method returns MethodLSH.
func (l *LSH) Method() Method { return MethodLSH }

// Family returns the hash functions used for signatures.
func (l *LSH) Family() *HashFamily { return l.family }

// Signatures returns the signature matrix.
func (l *LSH) Signatures() *SignatureMatrix { return l.sig }

// Bands returns the band table.
func (l *LSH) Bands() *BandTable { return l.bands }

// Candidates returns the distinct pairs that share a bucket in some band,
// encoded as id1<<32 | id2 with id1 < id2.
func (l *LSH) Candidates(ctx context.Context) (*roaring64.Bitmap, error) {
	perBand := make([]*roaring64.Bitmap, l.bands.NumBands())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for band := range perBand {
		g.Go(func() error {
			found := roaring64.New()
			var members []uint32
			l.bands.ForEachBucket(band, func(bucket *roaring.Bitmap) {
				if bucket.GetCardinality() < 2 {
					return
				}
				members = bucket.ToArray()
				for i := 0; i < len(members); i++ {
					for j := i + 1; j < len(members); j++ {
						found.Add(pairKey(int(members[i]), int(members[j])))
					}
				}
			})
			perBand[band] = found
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := roaring64.New()
	for _, found := range perBand {
		all.Or(found)
	}
	return all, nil
}

// Confirm computes exact similarity for each candidate and keeps those above
// threshold, ordered by (ID1, ID2).
func (l *LSH) Confirm(ctx context.Context, candidates *roaring64.Bitmap, threshold float64) ([]SimilarPair, error) {
	keys := candidates.ToArray()
	ranges := chunks(len(keys), l.workers*4)
	results := make([][]SimilarPair, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for c, r := range ranges {
		g.Go(func() error {
			var kept []SimilarPair
			for _, k := range keys[r[0]:r[1]] {
				id1, id2 := splitPairKey(k)
				if sim := Jaccard(l.mapping.sets[id1], l.mapping.sets[id2]); sim > threshold {
					kept = append(kept, SimilarPair{ID1: id1, ID2: id2, Similarity: sim})
				}
			}
			results[c] = kept
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pairs []SimilarPair
	for _, kept := range results {
		pairs = append(pairs, kept...)
	}
	return pairs, nil
}

// SimilarPairs returns confirmed candidate pairs whose similarity exceeds threshold.
func (l *LSH) SimilarPairs(ctx context.Context, threshold float64) ([]SimilarPair, error) {
	candidates, err := l.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	return l.Confirm(ctx, candidates, threshold)
}

// Neighbors returns objects sharing a bucket with objID in any band whose
// exact similarity exceeds threshold, ordered by id.
func (l *LSH) Neighbors(ctx context.Context, objID int, threshold float64) ([]Neighbor, error) {
	if err := l.mapping.checkID(objID); err != nil {
		return nil, err
	}

	mates := roaring.New()
	for band := 0; band < l.bands.NumBands(); band++ {
		mates.Or(l.bands.Bucket(band, objID))
	}
	mates.Remove(uint32(objID))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := l.mapping.sets[objID]
	var out []Neighbor
	it := mates.Iterator()
	for it.HasNext() {
		id := int(it.Next())
		if sim := Jaccard(query, l.mapping.sets[id]); sim > threshold {
			out = append(out, Neighbor{ID: id, Similarity: sim})
		}
	}
	return out, nil
}
