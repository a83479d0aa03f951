package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/simscan/internal/version"
	"github.com/ludo-technologies/simscan/mcp"
)

const serverName = "simscan"

func main() {
	configPath := flag.String("config", "", "Configuration file applied to every tool call")
	flag.Parse()

	// stdout carries JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(nil, *configPath)))

	log.Printf("Starting %s MCP server v%s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - find_similar_documents: MinHash/LSH search over shingled files")
	log.Println("  - find_similar_users: MinHash/LSH search over rating profiles")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
