package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleFindSimilarDocuments handles the find_similar_documents tool
func (h *HandlerSet) HandleFindSimilarDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg, err := h.deps.ConfigFor(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}
	applySearchArgs(cfg, args)
	if v, ok := args["shingle_length"].(float64); ok {
		cfg.Documents.ShingleLength = int(v)
	}
	if v, ok := args["recursive"].(bool); ok {
		cfg.Documents.Recursive = v
	}
	query, _ := args["query"].(string)

	useCase, err := h.deps.BuildDocumentUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create search: %v", err)), nil
	}

	result, err := useCase.SearchAndReturn(ctx, domain.DocumentSearchRequest{
		Paths:           []string{path},
		Recursive:       cfg.Documents.Recursive,
		IncludePatterns: cfg.Documents.IncludePatterns,
		ExcludePatterns: cfg.Documents.ExcludePatterns,
		MaxFiles:        cfg.Documents.MaxFiles,
		ShingleLength:   cfg.Documents.ShingleLength,
		Query:           query,
		Search:          cfg.SearchOptions(),
		ConfigPath:      h.deps.ConfigPath(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("document search failed: %v", err)), nil
	}

	var responseData interface{} = result
	if mode, _ := args["output_mode"].(string); mode != "full" {
		responseData = map[string]interface{}{
			"num_documents": len(result.Documents),
			"pairs":         result.Pairs,
			"query":         result.Query,
			"statistics":    result.Statistics,
			"warnings":      result.Warnings,
		}
	}
	return jsonResult(responseData)
}

// HandleFindSimilarUsers handles the find_similar_users tool
func (h *HandlerSet) HandleFindSimilarUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	training, ok := args["training"].(string)
	if !ok || training == "" {
		return mcp.NewToolResultError("training parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(training); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("training file does not exist: %s", training)), nil
	}

	cfg, err := h.deps.ConfigFor(training)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}
	applySearchArgs(cfg, args)
	if v, ok := args["min_rating_count"].(float64); ok {
		cfg.Ratings.MinRatingCount = int(v)
	}

	req := domain.RatingsSearchRequest{
		TrainingPath:   training,
		MinRatingCount: cfg.Ratings.MinRatingCount,
		ReportEvery:    cfg.Ratings.ReportEvery,
		Search:         cfg.SearchOptions(),
		ConfigPath:     h.deps.ConfigPath(),
	}
	if v, ok := args["user"].(float64); ok {
		user := int(v)
		req.User = &user
	}
	if v, ok := args["skip_pairs"].(bool); ok {
		req.SkipPairs = v
	}
	if v, ok := args["test"].(string); ok {
		req.TestPath = v
	}

	useCase, err := h.deps.BuildRatingsUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create search: %v", err)), nil
	}

	result, err := useCase.SearchAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ratings search failed: %v", err)), nil
	}
	return jsonResult(result)
}

// applySearchArgs overrides configured search settings with tool arguments
func applySearchArgs(cfg *config.Config, args map[string]interface{}) {
	if v, ok := args["threshold"].(float64); ok {
		cfg.Search.Threshold = v
	}
	if v, ok := args["method"].(string); ok && v != "" {
		cfg.Search.Method = v
	}
	if v, ok := args["max_results"].(float64); ok {
		cfg.Search.MaxResults = int(v)
	}
	if v, ok := args["num_hashes"].(float64); ok {
		cfg.LSH.NumHashes = int(v)
	}
	if v, ok := args["num_bands"].(float64); ok {
		cfg.LSH.NumBands = int(v)
	}
	if v, ok := args["seed"].(float64); ok {
		cfg.LSH.Seed = int64(v)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
