package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the simscan MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	s.AddTool(mcp.NewTool("find_similar_documents",
		mcp.WithDescription("Find pairs of similar text documents by the Jaccard similarity of their character shingles"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory containing the documents")),
		mcp.WithNumber("threshold",
			mcp.Description("Report pairs with similarity strictly above this value, 0.0-1.0 (default: 0.5)")),
		mcp.WithString("method",
			mcp.Enum("bf", "lsh"),
			mcp.Description("bf for exact search, lsh for MinHash banding (default: lsh)")),
		mcp.WithNumber("num_hashes",
			mcp.Description("Number of MinHash functions (default: 100)")),
		mcp.WithNumber("num_bands",
			mcp.Description("Number of LSH bands (default: 20)")),
		mcp.WithNumber("seed",
			mcp.Description("Seed of the hash family (default: 0)")),
		mcp.WithNumber("shingle_length",
			mcp.Description("Characters per shingle (default: 5)")),
		mcp.WithString("query",
			mcp.Description("Also return the neighbors of this document path")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum pairs to return, 0 = all (default: 0)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively search directories (default: true)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary omits the document list (default: summary)")),
	), h.HandleFindSimilarDocuments)

	s.AddTool(mcp.NewTool("find_similar_users",
		mcp.WithDescription("Find users with similar taste in a MovieLens style ratings file"),
		mcp.WithString("training",
			mcp.Required(),
			mcp.Description("Ratings file with user::movie::rating lines")),
		mcp.WithNumber("user",
			mcp.Description("Return the neighbors of this user id")),
		mcp.WithBoolean("skip_pairs",
			mcp.Description("Skip the all-pairs search (default: false)")),
		mcp.WithString("test",
			mcp.Description("Test ratings file for RMSE evaluation")),
		mcp.WithNumber("threshold",
			mcp.Description("Report pairs with similarity strictly above this value, 0.0-1.0 (default: 0.5)")),
		mcp.WithString("method",
			mcp.Enum("bf", "lsh"),
			mcp.Description("bf for exact search, lsh for MinHash banding (default: lsh)")),
		mcp.WithNumber("num_hashes",
			mcp.Description("Number of MinHash functions (default: 100)")),
		mcp.WithNumber("num_bands",
			mcp.Description("Number of LSH bands (default: 20)")),
		mcp.WithNumber("seed",
			mcp.Description("Seed of the hash family (default: 0)")),
		mcp.WithNumber("min_rating_count",
			mcp.Description("Leave out users with fewer ratings (default: 0)")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum pairs to return, 0 = all (default: 0)")),
	), h.HandleFindSimilarUsers)
}
