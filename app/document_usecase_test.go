package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/service"
)

func documentRequest(out io.Writer) domain.DocumentSearchRequest {
	return domain.DocumentSearchRequest{
		Paths:         []string{"."},
		ShingleLength: domain.DefaultShingleLength,
		Search:        validSearchOptions(),
		Output:        domain.OutputOptions{Format: domain.OutputFormatText, Writer: out},
	}
}

func TestDocumentSearchUseCase_Execute(t *testing.T) {
	svc := &mockDocumentService{}
	formatter := &mockFormatter{}
	response := &domain.DocumentSearchResponse{Documents: []string{"a", "b"}}

	svc.On("Search", mock.Anything, mock.AnythingOfType("*domain.DocumentSearchRequest")).Return(response, nil)
	formatter.On("FormatDocuments", response, domain.OutputFormatText, mock.Anything).Return(nil)

	uc, err := NewDocumentSearchUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		WithOutputWriter(service.NewFileOutputWriter(io.Discard)).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, uc.Execute(context.Background(), documentRequest(&buf)))
	assert.Equal(t, "documents report", buf.String())

	svc.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestDocumentSearchUseCase_WritesFile(t *testing.T) {
	svc := &mockDocumentService{}
	formatter := &mockFormatter{}
	response := &domain.DocumentSearchResponse{}

	svc.On("Search", mock.Anything, mock.Anything).Return(response, nil)
	formatter.On("FormatDocuments", response, domain.OutputFormatJSON, mock.Anything).Return(nil)

	var status bytes.Buffer
	uc := NewDocumentSearchUseCase(svc, formatter, service.NewFileOutputWriter(&status))

	req := documentRequest(nil)
	req.Output.Format = domain.OutputFormatJSON
	req.Output.Path = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, uc.Execute(context.Background(), req))
	data, err := os.ReadFile(req.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, "documents report", string(data))
	assert.Contains(t, status.String(), "JSON report generated")
}

func TestDocumentSearchUseCase_ValidationFailure(t *testing.T) {
	svc := &mockDocumentService{}
	uc := NewDocumentSearchUseCase(svc, &mockFormatter{}, nil)

	req := documentRequest(io.Discard)
	req.Search.Threshold = 1.5

	err := uc.Execute(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
	svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestDocumentSearchUseCase_ServiceError(t *testing.T) {
	svc := &mockDocumentService{}
	cause := domain.NewSearchError("boom", nil)
	svc.On("Search", mock.Anything, mock.Anything).Return(nil, cause)

	uc := NewDocumentSearchUseCase(svc, &mockFormatter{}, nil)
	_, err := uc.SearchAndReturn(context.Background(), documentRequest(io.Discard))
	assert.ErrorIs(t, err, cause)
}

func TestDocumentSearchUseCase_FormatterError(t *testing.T) {
	svc := &mockDocumentService{}
	formatter := &mockFormatter{}
	svc.On("Search", mock.Anything, mock.Anything).Return(&domain.DocumentSearchResponse{}, nil)
	formatter.On("FormatDocuments", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broken pipe"))

	uc := NewDocumentSearchUseCase(svc, formatter, service.NewFileOutputWriter(io.Discard))
	err := uc.Execute(context.Background(), documentRequest(io.Discard))

	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeOutputError, de.Code)
}

func TestDocumentSearchUseCase_NoWriter(t *testing.T) {
	svc := &mockDocumentService{}
	svc.On("Search", mock.Anything, mock.Anything).Return(&domain.DocumentSearchResponse{}, nil)

	uc := NewDocumentSearchUseCase(svc, &mockFormatter{}, nil)
	assert.Error(t, uc.Execute(context.Background(), documentRequest(nil)))
}

func TestDocumentSearchUseCaseBuilder_MissingDependencies(t *testing.T) {
	_, err := NewDocumentSearchUseCaseBuilder().Build()
	assert.EqualError(t, err, "document search service is required")

	_, err = NewDocumentSearchUseCaseBuilder().WithService(&mockDocumentService{}).Build()
	assert.EqualError(t, err, "output formatter is required")
}
