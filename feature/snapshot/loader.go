package snapshot

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the snapshot feature over dataDir. portfolio and runs
// are optional.
func NewFeature(dataDir string, cacheSize int, portfolio PortfolioReader, runs RunLister, logger *zap.Logger) (*Feature, error) {
	store, err := NewStore(dataDir, cacheSize)
	if err != nil {
		return nil, err
	}
	return &Feature{handler: NewHandler(store, portfolio, runs, logger)}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "snapshot"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
