package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/similarity"
)

// searchRun holds a built searcher and the statistics gathered so far.
type searchRun struct {
	searcher similarity.Searcher
	mapping  *similarity.ObjectMapping
	opts     domain.SearchOptions
	stats    domain.SearchStatistics
	warnings []string
}

// newSearchRun builds the searcher selected by opts. LSH signatures and bands
// are computed here, once.
func newSearchRun(ctx context.Context, mapping *similarity.ObjectMapping, opts domain.SearchOptions) (*searchRun, error) {
	searcher, err := similarity.NewSearcher(ctx, mapping, similarity.Options{
		Method: similarity.Method(opts.Method),
		LSH: similarity.LSHParams{
			NumHashes: opts.LSH.NumHashes,
			NumBands:  opts.LSH.NumBands,
			NumValues: opts.LSH.NumValues,
			Seed:      opts.LSH.Seed,
		},
		Workers: opts.Workers,
	})
	if err != nil {
		return nil, translateSearchError(err)
	}

	run := &searchRun{
		searcher: searcher,
		mapping:  mapping,
		opts:     opts,
		stats: domain.SearchStatistics{
			Method:      opts.Method,
			NumObjects:  mapping.Len(),
			NumFeatures: mapping.NumFeatures(),
			Threshold:   opts.Threshold,
		},
	}

	if lsh, ok := searcher.(*similarity.LSH); ok {
		bands := lsh.Bands().Stats()
		run.stats.RowsPerBand = bands.RowsPerBand
		run.stats.UnusedRows = bands.UnusedRows
		run.stats.NumBuckets = bands.NumBuckets
		run.stats.MaxBucketSize = bands.MaxBucketSize
		run.stats.ApproximateThreshold = similarity.ApproximateThreshold(bands.NumBands, bands.RowsPerBand)
		run.stats.ThresholdRecall = similarity.CandidateProbability(opts.Threshold, bands.NumBands, bands.RowsPerBand)
		run.stats.SuggestedBands = similarity.SuggestBands(opts.LSH.NumHashes, opts.Threshold)
		if bands.UnusedRows > 0 {
			run.warnings = append(run.warnings, fmt.Sprintf(
				"%d hash functions do not divide into %d bands; the last %d signature rows are unused",
				opts.LSH.NumHashes, opts.LSH.NumBands, bands.UnusedRows))
		}
	}

	return run, nil
}

// pairs runs the all-pairs search and returns pairs sorted by similarity.
func (r *searchRun) pairs(ctx context.Context) ([]similarity.SimilarPair, error) {
	var (
		pairs []similarity.SimilarPair
		err   error
	)
	if lsh, ok := r.searcher.(*similarity.LSH); ok {
		candidates, cerr := lsh.Candidates(ctx)
		if cerr != nil {
			return nil, translateSearchError(cerr)
		}
		r.stats.CandidatePairs = int(candidates.GetCardinality())
		pairs, err = lsh.Confirm(ctx, candidates, r.opts.Threshold)
	} else {
		pairs, err = r.searcher.SimilarPairs(ctx, r.opts.Threshold)
	}
	if err != nil {
		return nil, translateSearchError(err)
	}

	similarity.SortPairs(pairs)
	r.stats.ResultCount = len(pairs)
	if r.opts.MaxResults > 0 && len(pairs) > r.opts.MaxResults {
		pairs = pairs[:r.opts.MaxResults]
	}
	return pairs, nil
}

// neighbors returns the neighbors of an internal object id sorted by similarity.
func (r *searchRun) neighbors(ctx context.Context, id int) ([]similarity.Neighbor, error) {
	neighbors, err := r.searcher.Neighbors(ctx, id, r.opts.Threshold)
	if err != nil {
		return nil, translateSearchError(err)
	}
	similarity.SortNeighbors(neighbors)
	return neighbors, nil
}

func translateSearchError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, similarity.ErrObjectNotFound):
		return domain.NewNotFoundError("query object", err)
	case errors.Is(err, similarity.ErrInvalidNumHashes),
		errors.Is(err, similarity.ErrInvalidNumBands),
		errors.Is(err, similarity.ErrInvalidNumValues),
		errors.Is(err, similarity.ErrFeatureOutOfRange),
		errors.Is(err, similarity.ErrUnknownMethod):
		return domain.NewConfigError("invalid search parameters", err)
	}
	return domain.NewSearchError("similarity search failed", err)
}
