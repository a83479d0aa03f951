package domain

import (
	"context"
)

// RatingsSearchRequest represents a request to find users with similar taste
type RatingsSearchRequest struct {
	TrainingPath string `json:"training_path" yaml:"training_path"`
	// TestPath enables RMSE evaluation when set
	TestPath string `json:"test_path,omitempty" yaml:"test_path,omitempty"`

	// User is an external user id whose neighbors are reported; nil skips the query
	User *int `json:"user,omitempty" yaml:"user,omitempty"`

	// SkipPairs omits the all-pairs search, useful with User on large data sets
	SkipPairs bool `json:"skip_pairs" yaml:"skip_pairs"`

	// MinRatingCount excludes users with fewer ratings from the search
	MinRatingCount int `json:"min_rating_count" yaml:"min_rating_count"`
	ReportEvery    int `json:"report_every" yaml:"report_every"`

	Search SearchOptions `json:"search" yaml:"search"`
	Output OutputOptions `json:"-" yaml:"-"`

	ConfigPath string `json:"-" yaml:"-"`
	Verbose    bool   `json:"-" yaml:"-"`
}

// Validate validates a ratings search request
func (r *RatingsSearchRequest) Validate() error {
	if r.TrainingPath == "" {
		return NewValidationError("training file is required")
	}
	if r.MinRatingCount < 0 {
		return NewValidationError("min rating count cannot be negative")
	}
	if r.ReportEvery < 0 {
		return NewValidationError("report interval cannot be negative")
	}
	if r.SkipPairs && r.User == nil && r.TestPath == "" {
		return NewValidationError("nothing to do: pairs skipped and no user or test file given")
	}
	return r.Search.Validate()
}

// UserPair is a pair of users with similar ratings, by external user id
type UserPair struct {
	User1      int     `json:"user1" yaml:"user1"`
	User2      int     `json:"user2" yaml:"user2"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// UserNeighbor is a user similar to the query user
type UserNeighbor struct {
	User       int     `json:"user" yaml:"user"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// UserQueryResult holds the neighbors of the query user
type UserQueryResult struct {
	User      int            `json:"user" yaml:"user"`
	Neighbors []UserNeighbor `json:"neighbors" yaml:"neighbors"`
}

// EvaluationCheckpoint is the running error after Lines test ratings
type EvaluationCheckpoint struct {
	Lines         int     `json:"lines" yaml:"lines"`
	BaselineRMSE  float64 `json:"baseline_rmse" yaml:"baseline_rmse"`
	PredictorRMSE float64 `json:"predictor_rmse" yaml:"predictor_rmse"`
}

// EvaluationResult compares a predictor against the movie-average baseline.
// BaselineMatches counts predictions equal to the movie average.
type EvaluationResult struct {
	Lines           int                    `json:"lines" yaml:"lines"`
	BaselineMatches int                    `json:"baseline_matches" yaml:"baseline_matches"`
	BaselineRMSE    float64                `json:"baseline_rmse" yaml:"baseline_rmse"`
	PredictorRMSE   float64                `json:"predictor_rmse" yaml:"predictor_rmse"`
	Predictor       string                 `json:"predictor" yaml:"predictor"`
	Checkpoints     []EvaluationCheckpoint `json:"checkpoints,omitempty" yaml:"checkpoints,omitempty"`
}

// RatingsSearchResponse represents the result of a ratings search
type RatingsSearchResponse struct {
	NumUsers   int `json:"num_users" yaml:"num_users"`
	NumMovies  int `json:"num_movies" yaml:"num_movies"`
	NumRatings int `json:"num_ratings" yaml:"num_ratings"`

	Pairs      []UserPair        `json:"pairs" yaml:"pairs"`
	Query      *UserQueryResult  `json:"query,omitempty" yaml:"query,omitempty"`
	Evaluation *EvaluationResult `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
	Statistics SearchStatistics  `json:"statistics" yaml:"statistics"`
	Warnings   []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// RatingsSearchService finds users with similar ratings
type RatingsSearchService interface {
	Search(ctx context.Context, req *RatingsSearchRequest) (*RatingsSearchResponse, error)
}
