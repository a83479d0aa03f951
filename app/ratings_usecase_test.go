package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/service"
)

func TestRatingsSearchUseCase_Execute(t *testing.T) {
	svc := &mockRatingsService{}
	formatter := &mockFormatter{}
	response := &domain.RatingsSearchResponse{NumUsers: 2}

	svc.On("Search", mock.Anything, mock.MatchedBy(func(req *domain.RatingsSearchRequest) bool {
		return req.TrainingPath == "train.dat"
	})).Return(response, nil)
	formatter.On("FormatRatings", response, domain.OutputFormatText, mock.Anything).Return(nil)

	uc, err := NewRatingsSearchUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		WithOutputWriter(service.NewFileOutputWriter(io.Discard)).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	req := domain.RatingsSearchRequest{
		TrainingPath: "train.dat",
		Search:       validSearchOptions(),
		Output:       domain.OutputOptions{Writer: &buf},
	}
	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, "ratings report", buf.String())

	svc.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestRatingsSearchUseCase_ValidationFailure(t *testing.T) {
	svc := &mockRatingsService{}
	uc := NewRatingsSearchUseCase(svc, &mockFormatter{}, nil)

	_, err := uc.SearchAndReturn(context.Background(), domain.RatingsSearchRequest{Search: validSearchOptions()})
	assert.Error(t, err)

	_, err = uc.SearchAndReturn(context.Background(), domain.RatingsSearchRequest{
		TrainingPath: "train.dat",
		SkipPairs:    true,
		Search:       validSearchOptions(),
	})
	assert.Error(t, err)
	svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestRatingsSearchUseCaseBuilder_MissingDependencies(t *testing.T) {
	_, err := NewRatingsSearchUseCaseBuilder().Build()
	assert.EqualError(t, err, "ratings search service is required")

	_, err = NewRatingsSearchUseCaseBuilder().WithService(&mockRatingsService{}).Build()
	assert.EqualError(t, err, "output formatter is required")
}
