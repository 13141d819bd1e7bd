package tables

import (
	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/text"
)

// Extractor is the interface shared by the extraction strategies.
type Extractor interface {
	// Extract finds tables on a page.
	Extract(page *pages.Page) []*model.Table

	// Name returns the extraction-method tag recorded on produced tables.
	Name() string
}

// Config holds the tunables shared by the extractors.
type Config struct {
	// HeuristicRatio bounds the lattice/stream row and column count ratio
	// inside which a page counts as tabular.
	HeuristicRatio float64

	// Merge configures the word merger.
	Merge text.MergeConfig
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() Config {
	return Config{
		HeuristicRatio: 0.65,
		Merge:          text.DefaultMergeConfig(),
	}
}

// Registry holds named extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor under its name.
func (r *Registry) Register(e Extractor) {
	r.extractors[e.Name()] = e
}

// Get retrieves an extractor by name, or nil.
func (r *Registry) Get(name string) Extractor {
	return r.extractors[name]
}

var globalRegistry = NewRegistry()

// RegisterExtractor adds an extractor to the global registry.
func RegisterExtractor(e Extractor) {
	globalRegistry.Register(e)
}

// GetExtractor retrieves an extractor from the global registry.
func GetExtractor(name string) Extractor {
	return globalRegistry.Get(name)
}

func init() {
	RegisterExtractor(NewStreamExtractor())
	RegisterExtractor(NewLatticeExtractor())
}
