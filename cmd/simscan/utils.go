package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
	"github.com/ludo-technologies/simscan/service"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory returns the configured report directory, or
// .simscan/reports under the working directory
func resolveOutputDirectory(cfg *config.Config) string {
	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}
	cwd, err := os.Getwd()
	if err != nil {
		return domain.DefaultOutputDir
	}
	return filepath.Join(cwd, domain.DefaultOutputDir)
}

// generateOutputFilePath builds a timestamped report path and creates its directory
func generateOutputFilePath(command, extension string, cfg *config.Config) (string, error) {
	outputDir := resolveOutputDirectory(cfg)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}

// configDirFor returns the directory where config discovery starts for path
func configDirFor(path string) string {
	if path == "" {
		return "."
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// loadConfigWithFallback loads an explicit config file of any supported
// format, or discovers .simscan.toml starting at workDir
func loadConfigWithFallback(configFile, workDir string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadConfig(configFile)
	}
	return config.NewTomlConfigLoader().LoadConfig(workDir)
}

// printError writes a categorized error with recovery suggestions
func printError(w io.Writer, err error) {
	categorized := service.NewErrorCategorizer().Categorize(err)
	fmt.Fprintf(w, "Error: %s\n", err)
	if categorized == nil || categorized.Category == domain.ErrorCategoryUnknown {
		return
	}
	fmt.Fprintf(w, "\n%s\n", categorized.Category)
	for _, s := range service.NewErrorCategorizer().GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// commandContext returns the command context, or Background when the
// command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
