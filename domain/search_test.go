package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSearch() SearchOptions {
	return SearchOptions{
		Threshold: 0.5,
		Method:    SearchMethodLSH,
		LSH:       LSHOptions{NumHashes: 20, NumBands: 5},
	}
}

func TestSearchOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *SearchOptions)
		wantErr string
	}{
		{"valid", func(o *SearchOptions) {}, ""},
		{"negative threshold", func(o *SearchOptions) { o.Threshold = -0.1 }, "threshold"},
		{"threshold above one", func(o *SearchOptions) { o.Threshold = 1.5 }, "threshold"},
		{"unknown method", func(o *SearchOptions) { o.Method = "kd" }, "method"},
		{"zero hashes", func(o *SearchOptions) { o.LSH.NumHashes = 0 }, "hash functions"},
		{"zero bands", func(o *SearchOptions) { o.LSH.NumBands = 0 }, "bands"},
		{"bands exceed hashes", func(o *SearchOptions) { o.LSH.NumBands = 21 }, "exceed"},
		{"brute force ignores lsh", func(o *SearchOptions) {
			o.Method = SearchMethodBruteForce
			o.LSH = LSHOptions{}
		}, ""},
		{"negative workers", func(o *SearchOptions) { o.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validSearch()
			tt.modify(&o)
			err := o.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var de DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, ErrCodeInvalidInput, de.Code)
		})
	}
}

func TestLSHOptionsRowsPerBand(t *testing.T) {
	assert.Equal(t, 3, LSHOptions{NumHashes: 10, NumBands: 3}.RowsPerBand())
	assert.Equal(t, 0, LSHOptions{NumHashes: 10}.RowsPerBand())
}

func TestDocumentSearchRequestValidate(t *testing.T) {
	req := &DocumentSearchRequest{Paths: []string{"docs"}, ShingleLength: 5, Search: validSearch()}
	assert.NoError(t, req.Validate())

	req.Paths = nil
	assert.Error(t, req.Validate())

	req.Paths = []string{"docs"}
	req.ShingleLength = 0
	assert.Error(t, req.Validate())
}

func TestRatingsSearchRequestValidate(t *testing.T) {
	req := &RatingsSearchRequest{TrainingPath: "ratings.dat", Search: validSearch()}
	assert.NoError(t, req.Validate())

	req.SkipPairs = true
	assert.Error(t, req.Validate(), "skipping pairs without a user or test file does nothing")

	user := 7
	req.User = &user
	assert.NoError(t, req.Validate())

	req.TrainingPath = ""
	assert.Error(t, req.Validate())
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, f)

	f, err = ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatText, f)

	_, err = ParseOutputFormat("html")
	var de DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrCodeUnsupportedFormat, de.Code)
}
