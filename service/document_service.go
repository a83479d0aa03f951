package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/shingle"
	"github.com/ludo-technologies/simscan/internal/similarity"
	"github.com/ludo-technologies/simscan/internal/version"
)

// DocumentSearchServiceImpl implements domain.DocumentSearchService
type DocumentSearchServiceImpl struct {
	fileReader domain.FileReader
	progress   domain.ProgressManager
}

// NewDocumentSearchService creates a document search service. progress may be nil.
func NewDocumentSearchService(fileReader domain.FileReader, progress domain.ProgressManager) *DocumentSearchServiceImpl {
	if progress == nil {
		progress = NoOpProgressManager{}
	}
	return &DocumentSearchServiceImpl{fileReader: fileReader, progress: progress}
}

// Search collects documents, shingles them in path order and runs the search
func (s *DocumentSearchServiceImpl) Search(ctx context.Context, req *domain.DocumentSearchRequest) (*domain.DocumentSearchResponse, error) {
	start := time.Now()

	files, err := s.fileReader.CollectFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no documents found in the given paths", nil)
	}
	if req.MaxFiles > 0 && len(files) > req.MaxFiles {
		files = files[:req.MaxFiles]
	}

	mapping, warnings, err := s.shingleFiles(ctx, files, req.ShingleLength, req.Output.ShowProgress)
	if err != nil {
		return nil, err
	}

	run, err := newSearchRun(ctx, mapping, req.Search)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, run.warnings...)

	response := &domain.DocumentSearchResponse{
		Documents:   files,
		Pairs:       []domain.DocumentPair{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}

	pairs, err := run.pairs(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		response.Pairs = append(response.Pairs, domain.DocumentPair{
			ID1:        p.ID1,
			ID2:        p.ID2,
			Path1:      files[p.ID1],
			Path2:      files[p.ID2],
			Similarity: p.Similarity,
		})
	}

	if req.Query != "" {
		id := indexOfPath(files, req.Query)
		if id < 0 {
			return nil, domain.NewNotFoundError(fmt.Sprintf("query document %s", req.Query), nil)
		}
		neighbors, err := run.neighbors(ctx, id)
		if err != nil {
			return nil, err
		}
		query := &domain.DocumentQueryResult{ID: id, Path: files[id], Neighbors: []domain.DocumentNeighbor{}}
		for _, n := range neighbors {
			query.Neighbors = append(query.Neighbors, domain.DocumentNeighbor{
				ID:         n.ID,
				Path:       files[n.ID],
				Similarity: n.Similarity,
			})
		}
		response.Query = query
	}

	run.stats.DurationMs = time.Since(start).Milliseconds()
	response.Statistics = run.stats
	response.Warnings = warnings
	return response, nil
}

// shingleFiles reads every file in order. An unreadable file becomes an empty
// set so that object ids keep matching positions in files.
func (s *DocumentSearchServiceImpl) shingleFiles(ctx context.Context, files []string, k int, showProgress bool) (*similarity.ObjectMapping, []string, error) {
	shingler := shingle.New(k)
	sets := make([]*roaring.Bitmap, len(files))
	var warnings []string

	if showProgress {
		s.progress.Initialize(len(files))
		s.progress.Start()
		defer s.progress.Close()
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		content, err := s.fileReader.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not read %s: %v", path, err))
			sets[i] = roaring.New()
			continue
		}
		text, err := shingle.ReadDocument(bytes.NewReader(content))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not read %s: %v", path, err))
			sets[i] = roaring.New()
			continue
		}
		sets[i] = roaring.BitmapOf(shingler.Shingle(text)...)

		if showProgress {
			s.progress.Update(i+1, len(files))
		}
	}
	if showProgress {
		s.progress.Complete(true)
	}

	return similarity.FromBitmaps(sets), warnings, nil
}

func indexOfPath(files []string, query string) int {
	clean := filepath.Clean(query)
	for i, f := range files {
		if f == clean {
			return i
		}
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return -1
	}
	for i, f := range files {
		if fa, err := filepath.Abs(f); err == nil && fa == abs {
			return i
		}
	}
	return -1
}
