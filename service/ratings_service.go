package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/ratings"
	"github.com/ludo-technologies/simscan/internal/version"
)

// RatingsSearchServiceImpl implements domain.RatingsSearchService
type RatingsSearchServiceImpl struct {
	predictor ratings.Predictor
}

// NewRatingsSearchService creates a ratings service. A nil predictor uses
// ratings.ConstantPredictor.
func NewRatingsSearchService(predictor ratings.Predictor) *RatingsSearchServiceImpl {
	if predictor == nil {
		predictor = ratings.ConstantPredictor{}
	}
	return &RatingsSearchServiceImpl{predictor: predictor}
}

// Search loads training ratings, finds users with similar like/dislike sets
// and optionally evaluates the predictor on a test file
func (s *RatingsSearchServiceImpl) Search(ctx context.Context, req *domain.RatingsSearchRequest) (*domain.RatingsSearchResponse, error) {
	start := time.Now()

	dataset, err := loadDataset(req.TrainingPath)
	if err != nil {
		return nil, err
	}

	mapping, userIDs := dataset.Mapping(req.MinRatingCount)

	opts := req.Search
	if opts.LSH.NumValues == 0 {
		opts.LSH.NumValues = max(dataset.NumValues(), 1)
	}

	run, err := newSearchRun(ctx, mapping, opts)
	if err != nil {
		return nil, err
	}

	response := &domain.RatingsSearchResponse{
		NumUsers:    dataset.NumUsers(),
		NumMovies:   dataset.NumMovies(),
		NumRatings:  dataset.NumRatings(),
		Pairs:       []domain.UserPair{},
		Warnings:    run.warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}

	if !req.SkipPairs {
		pairs, err := run.pairs(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			response.Pairs = append(response.Pairs, domain.UserPair{
				User1:      userIDs[p.ID1],
				User2:      userIDs[p.ID2],
				Similarity: p.Similarity,
			})
		}
	}

	if req.User != nil {
		query, err := s.queryUser(ctx, run, userIDs, *req.User)
		if err != nil {
			return nil, err
		}
		response.Query = query
	}

	if req.TestPath != "" {
		reportEvery := req.ReportEvery
		if reportEvery == 0 {
			reportEvery = domain.DefaultReportEvery
		}
		eval, err := s.evaluate(ctx, dataset, req.TestPath, reportEvery)
		if err != nil {
			return nil, err
		}
		response.Evaluation = eval
	}

	run.stats.DurationMs = time.Since(start).Milliseconds()
	response.Statistics = run.stats
	return response, nil
}

func (s *RatingsSearchServiceImpl) queryUser(ctx context.Context, run *searchRun, userIDs []int, user int) (*domain.UserQueryResult, error) {
	idx := sort.SearchInts(userIDs, user)
	if idx >= len(userIDs) || userIDs[idx] != user {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user %d", user), nil)
	}

	neighbors, err := run.neighbors(ctx, idx)
	if err != nil {
		return nil, err
	}

	result := &domain.UserQueryResult{User: user, Neighbors: []domain.UserNeighbor{}}
	for _, n := range neighbors {
		result.Neighbors = append(result.Neighbors, domain.UserNeighbor{
			User:       userIDs[n.ID],
			Similarity: n.Similarity,
		})
	}
	return result, nil
}

func (s *RatingsSearchServiceImpl) evaluate(ctx context.Context, dataset *ratings.Dataset, testPath string, reportEvery int) (*domain.EvaluationResult, error) {
	f, err := os.Open(testPath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(testPath, err)
	}
	defer f.Close()

	ev, err := ratings.Evaluate(ctx, dataset, f, s.predictor, reportEvery, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to evaluate %s", testPath), err)
	}

	result := &domain.EvaluationResult{
		Lines:           ev.Lines,
		BaselineMatches: ev.BaselineMatches,
		BaselineRMSE:    ev.BaselineRMSE,
		PredictorRMSE:   ev.PredictorRMSE,
		Predictor:       s.predictor.Name(),
	}
	for _, cp := range ev.Checkpoints {
		result.Checkpoints = append(result.Checkpoints, domain.EvaluationCheckpoint{
			Lines:         cp.Lines,
			BaselineRMSE:  cp.BaselineRMSE,
			PredictorRMSE: cp.PredictorRMSE,
		})
	}
	return result, nil
}

func loadDataset(path string) (*ratings.Dataset, error) {
	dataset, err := ratings.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read ratings from %s", path), err)
	}
	return dataset, nil
}
