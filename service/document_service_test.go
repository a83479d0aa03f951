package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simscan/domain"
)

const (
	foxText   = "the quick brown fox jumps over the lazy dog\nand keeps on running\n"
	otherText = "0123456789 abcdefghij\n"
)

func documentCorpus(t *testing.T) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	paths = []string{
		createTestFile(t, dir, "a.txt", foxText),
		createTestFile(t, dir, "b.txt", foxText),
		createTestFile(t, dir, "c.txt", otherText),
	}
	return dir, paths
}

func documentRequest(dir string, method domain.SearchMethod) *domain.DocumentSearchRequest {
	return &domain.DocumentSearchRequest{
		Paths:         []string{dir},
		Recursive:     true,
		ShingleLength: domain.DefaultShingleLength,
		Search: domain.SearchOptions{
			Threshold: 0.5,
			Method:    method,
			LSH: domain.LSHOptions{
				NumHashes: 20,
				NumBands:  5,
				Seed:      1,
			},
		},
	}
}

func TestDocumentSearchService_Search(t *testing.T) {
	for _, method := range []domain.SearchMethod{domain.SearchMethodBruteForce, domain.SearchMethodLSH} {
		t.Run(string(method), func(t *testing.T) {
			dir, paths := documentCorpus(t)
			svc := NewDocumentSearchService(NewFileReader(), nil)

			resp, err := svc.Search(context.Background(), documentRequest(dir, method))
			require.NoError(t, err)

			assert.Equal(t, paths, resp.Documents)
			require.Len(t, resp.Pairs, 1)
			assert.Equal(t, domain.DocumentPair{
				ID1: 0, ID2: 1, Path1: paths[0], Path2: paths[1], Similarity: 1.0,
			}, resp.Pairs[0])

			assert.Equal(t, method, resp.Statistics.Method)
			assert.Equal(t, 3, resp.Statistics.NumObjects)
			assert.Equal(t, 1, resp.Statistics.ResultCount)
			assert.NotEmpty(t, resp.Version)
			assert.NotEmpty(t, resp.GeneratedAt)
		})
	}
}

func TestDocumentSearchService_LSHStatistics(t *testing.T) {
	dir, _ := documentCorpus(t)
	req := documentRequest(dir, domain.SearchMethodLSH)
	req.Search.LSH.NumHashes = 22

	resp, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	require.NoError(t, err)

	stats := resp.Statistics
	assert.Equal(t, 4, stats.RowsPerBand)
	assert.Equal(t, 2, stats.UnusedRows)
	assert.GreaterOrEqual(t, stats.CandidatePairs, 1)
	assert.Greater(t, stats.ApproximateThreshold, 0.0)
	// 1-(1-0.5^4)^5
	assert.InDelta(t, 0.2758, stats.ThresholdRecall, 1e-4)
	assert.Equal(t, 7, stats.SuggestedBands)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "unused")
}

func TestDocumentSearchService_Query(t *testing.T) {
	dir, paths := documentCorpus(t)
	req := documentRequest(dir, domain.SearchMethodBruteForce)
	req.Query = paths[1]

	resp, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Query)
	assert.Equal(t, 1, resp.Query.ID)
	assert.Equal(t, []domain.DocumentNeighbor{{ID: 0, Path: paths[0], Similarity: 1.0}}, resp.Query.Neighbors)
}

func TestDocumentSearchService_UnknownQuery(t *testing.T) {
	dir, _ := documentCorpus(t)
	req := documentRequest(dir, domain.SearchMethodBruteForce)
	req.Query = filepath.Join(dir, "missing.txt")

	_, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeNotFound, de.Code)
}

func TestDocumentSearchService_MaxFiles(t *testing.T) {
	dir, paths := documentCorpus(t)
	req := documentRequest(dir, domain.SearchMethodBruteForce)
	req.MaxFiles = 2

	resp, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, paths[:2], resp.Documents)
	assert.Len(t, resp.Pairs, 1)
}

func TestDocumentSearchService_NoDocuments(t *testing.T) {
	req := documentRequest(t.TempDir(), domain.SearchMethodBruteForce)

	_, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
}

// flakyReader fails to read one path
type flakyReader struct {
	*FileReaderImpl
	broken string
}

func (r flakyReader) ReadFile(path string) ([]byte, error) {
	if path == r.broken {
		return nil, errors.New("disk error")
	}
	return r.FileReaderImpl.ReadFile(path)
}

func TestDocumentSearchService_UnreadableFileKeepsIDs(t *testing.T) {
	dir, paths := documentCorpus(t)
	reader := flakyReader{FileReaderImpl: NewFileReader(), broken: paths[0]}

	resp, err := NewDocumentSearchService(reader, nil).Search(context.Background(), documentRequest(dir, domain.SearchMethodBruteForce))
	require.NoError(t, err)

	assert.Equal(t, paths, resp.Documents)
	assert.Empty(t, resp.Pairs)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], paths[0])
}

func TestDocumentSearchService_Canceled(t *testing.T) {
	dir, _ := documentCorpus(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDocumentSearchService(NewFileReader(), nil).Search(ctx, documentRequest(dir, domain.SearchMethodBruteForce))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentSearchService_MaxResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		createTestFile(t, dir, name, foxText)
	}
	req := documentRequest(dir, domain.SearchMethodBruteForce)
	req.Search.MaxResults = 2

	resp, err := NewDocumentSearchService(NewFileReader(), nil).Search(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Pairs, 2)
	assert.Equal(t, 0, resp.Pairs[0].ID1)
	assert.Equal(t, 1, resp.Pairs[0].ID2)
}
