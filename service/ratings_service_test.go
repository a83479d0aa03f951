package service

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/ratings"
)

// Users 1 and 2 like movie 10 and dislike movie 30. User 3 has the opposite
// taste on other movies and user 9 has a single rating.
const trainingRatings = `1::10::5::978300760
1::30::1::978301968
2::10::4::978300275
2::30::2::978824291
3::20::5::978300001
3::10::1::978300002
9::10::5::978300003
`

const testRatings = `1::10::4::978300760
2::20::3::978300275
`

func ratingsRequest(t *testing.T) *domain.RatingsSearchRequest {
	t.Helper()
	dir := t.TempDir()
	return &domain.RatingsSearchRequest{
		TrainingPath: createTestFile(t, dir, "train.dat", trainingRatings),
		Search: domain.SearchOptions{
			Threshold: 0.5,
			Method:    domain.SearchMethodBruteForce,
			LSH:       domain.LSHOptions{NumHashes: 20, NumBands: 5, Seed: 42},
		},
	}
}

func TestRatingsSearchService_Pairs(t *testing.T) {
	for _, method := range []domain.SearchMethod{domain.SearchMethodBruteForce, domain.SearchMethodLSH} {
		t.Run(string(method), func(t *testing.T) {
			req := ratingsRequest(t)
			req.Search.Method = method

			resp, err := NewRatingsSearchService(nil).Search(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, 4, resp.NumUsers)
			assert.Equal(t, 3, resp.NumMovies)
			assert.Equal(t, 7, resp.NumRatings)
			assert.Equal(t, []domain.UserPair{{User1: 1, User2: 2, Similarity: 1.0}}, resp.Pairs)
			assert.Equal(t, 4, resp.Statistics.NumObjects)
			assert.Nil(t, resp.Query)
			assert.Nil(t, resp.Evaluation)
		})
	}
}

func TestRatingsSearchService_MinRatingCount(t *testing.T) {
	req := ratingsRequest(t)
	req.MinRatingCount = 2
	req.Search.Threshold = 0.4

	resp, err := NewRatingsSearchService(nil).Search(context.Background(), req)
	require.NoError(t, err)

	// user 9 would pair with users 1 and 2 at 0.5
	assert.Equal(t, 3, resp.Statistics.NumObjects)
	assert.Equal(t, []domain.UserPair{{User1: 1, User2: 2, Similarity: 1.0}}, resp.Pairs)
}

func TestRatingsSearchService_UserQuery(t *testing.T) {
	req := ratingsRequest(t)
	user := 2
	req.User = &user
	req.SkipPairs = true
	req.Search.Threshold = 0.4

	resp, err := NewRatingsSearchService(nil).Search(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, resp.Pairs)
	require.NotNil(t, resp.Query)
	assert.Equal(t, 2, resp.Query.User)
	assert.Equal(t, []domain.UserNeighbor{
		{User: 1, Similarity: 1.0},
		{User: 9, Similarity: 0.5},
	}, resp.Query.Neighbors)
}

func TestRatingsSearchService_UnknownUser(t *testing.T) {
	req := ratingsRequest(t)
	user := 5
	req.User = &user

	_, err := NewRatingsSearchService(nil).Search(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeNotFound, de.Code)
}

func TestRatingsSearchService_Evaluation(t *testing.T) {
	req := ratingsRequest(t)
	req.TestPath = createTestFile(t, filepath.Dir(req.TrainingPath), "test.dat", testRatings)
	req.ReportEvery = 1

	resp, err := NewRatingsSearchService(ratings.ConstantPredictor{}).Search(context.Background(), req)
	require.NoError(t, err)

	ev := resp.Evaluation
	require.NotNil(t, ev)
	assert.Equal(t, 2, ev.Lines)
	assert.Equal(t, "constant", ev.Predictor)
	// movie 10 averages 3.75 and movie 20 averages 5 in training
	assert.InDelta(t, math.Sqrt((0.0625+4)/2), ev.BaselineRMSE, 1e-9)
	assert.InDelta(t, math.Sqrt((2.25+0.25)/2), ev.PredictorRMSE, 1e-9)
	assert.Len(t, ev.Checkpoints, 2)
}

func TestRatingsSearchService_MissingFiles(t *testing.T) {
	req := ratingsRequest(t)
	req.TrainingPath = filepath.Join(t.TempDir(), "missing.dat")

	_, err := NewRatingsSearchService(nil).Search(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeFileNotFound, de.Code)

	req = ratingsRequest(t)
	req.TestPath = filepath.Join(t.TempDir(), "missing.dat")
	_, err = NewRatingsSearchService(nil).Search(context.Background(), req)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeFileNotFound, de.Code)
}

func TestRatingsSearchService_MalformedTraining(t *testing.T) {
	req := ratingsRequest(t)
	req.TrainingPath = createTestFile(t, t.TempDir(), "bad.dat", "1::x::5\n")

	_, err := NewRatingsSearchService(nil).Search(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
}
