package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/simscan/domain"
)

type mockDocumentService struct {
	mock.Mock
}

func (m *mockDocumentService) Search(ctx context.Context, req *domain.DocumentSearchRequest) (*domain.DocumentSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentSearchResponse), args.Error(1)
}

type mockRatingsService struct {
	mock.Mock
}

func (m *mockRatingsService) Search(ctx context.Context, req *domain.RatingsSearchRequest) (*domain.RatingsSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingsSearchResponse), args.Error(1)
}

type mockFormatter struct {
	mock.Mock
}

func (m *mockFormatter) FormatDocuments(response *domain.DocumentSearchResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	if args.Error(0) == nil {
		_, _ = io.WriteString(writer, "documents report")
	}
	return args.Error(0)
}

func (m *mockFormatter) FormatRatings(response *domain.RatingsSearchResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	if args.Error(0) == nil {
		_, _ = io.WriteString(writer, "ratings report")
	}
	return args.Error(0)
}

func validSearchOptions() domain.SearchOptions {
	return domain.SearchOptions{
		Threshold: domain.DefaultThreshold,
		Method:    domain.SearchMethodLSH,
		LSH: domain.LSHOptions{
			NumHashes: domain.DefaultNumHashes,
			NumBands:  domain.DefaultNumBands,
		},
	}
}
