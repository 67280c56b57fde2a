package charts

import (
	"sync"

	"github.com/tsawler/figura/model"
)

// Extractor is the interface for chart data extraction algorithms
type Extractor interface {
	// Extract reads data points from a classified chart region
	Extract(region model.Region) (*model.Chart, error)

	// Type returns the chart type this extractor handles
	Type() model.ChartType

	// Configure sets extractor parameters
	Configure(config Config) error
}

// ExtractorFactory constructs a fresh extractor instance.
type ExtractorFactory func() Extractor

// ExtractorRegistry maps chart types to extractor factories. The
// registry holds factories rather than instances so that every lookup
// hands out an unshared extractor: configuring one never leaks into a
// detection pass running on another goroutine.
type ExtractorRegistry struct {
	mu        sync.RWMutex
	factories map[model.ChartType]ExtractorFactory
}

// NewRegistry creates a new extractor registry
func NewRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		factories: make(map[model.ChartType]ExtractorFactory),
	}
}

// Register registers a factory under the chart type its extractors
// report
func (r *ExtractorRegistry) Register(factory ExtractorFactory) {
	kind := factory().Type()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Get builds a new extractor for a chart type, or returns nil when
// none is registered
func (r *ExtractorRegistry) Get(kind model.ChartType) Extractor {
	r.mu.RLock()
	factory := r.factories[kind]
	r.mu.RUnlock()
	if factory == nil {
		return nil
	}
	return factory()
}

// List returns all registered chart types
func (r *ExtractorRegistry) List() []model.ChartType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]model.ChartType, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterExtractor registers an extractor factory globally
func RegisterExtractor(factory ExtractorFactory) {
	globalRegistry.Register(factory)
}

// GetExtractor builds a new extractor for a chart type from the
// global registry
func GetExtractor(kind model.ChartType) Extractor {
	return globalRegistry.Get(kind)
}

// ListExtractors returns all registered chart types
func ListExtractors() []model.ChartType {
	return globalRegistry.List()
}

func init() {
	// Register default extractors
	RegisterExtractor(func() Extractor { return NewBarExtractor() })
	RegisterExtractor(func() Extractor { return NewPieExtractor() })
	RegisterExtractor(func() Extractor { return NewLineExtractor() })
}
