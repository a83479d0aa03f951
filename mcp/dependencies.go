package mcp

import (
	"os"
	"path/filepath"

	"github.com/ludo-technologies/simscan/app"
	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
	"github.com/ludo-technologies/simscan/internal/ratings"
	"github.com/ludo-technologies/simscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set. A nil cfg is loaded per
// request, from configPath or by discovering .simscan.toml near the input.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// ConfigFor returns the configuration that applies to inputs at path.
func (d *Dependencies) ConfigFor(path string) (*config.Config, error) {
	if d.config != nil {
		copied := *d.config
		return &copied, nil
	}
	if d.configPath != "" {
		return config.LoadConfig(d.configPath)
	}

	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return config.NewTomlConfigLoader().LoadConfig(dir)
}

// BuildDocumentUseCase assembles a document search use case.
func (d *Dependencies) BuildDocumentUseCase() (*app.DocumentSearchUseCase, error) {
	return app.NewDocumentSearchUseCaseBuilder().
		WithService(service.NewDocumentSearchService(d.fileReader, nil)).
		WithFormatter(service.NewSearchOutputFormatter()).
		Build()
}

// BuildRatingsUseCase assembles a ratings search use case.
func (d *Dependencies) BuildRatingsUseCase() (*app.RatingsSearchUseCase, error) {
	return app.NewRatingsSearchUseCaseBuilder().
		WithService(service.NewRatingsSearchService(ratings.ConstantPredictor{})).
		WithFormatter(service.NewSearchOutputFormatter()).
		Build()
}
