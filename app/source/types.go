package source

import (
	"fmt"

	"github.com/lysyi3m/rent-comb/app/extract"
)

type Format string

const (
	// FormatMarkup sources are sliced into blocks with the Block pattern.
	FormatMarkup Format = "markup"
	// FormatFeed sources are RSS/Atom documents; every item is one block.
	FormatFeed Format = "feed"
)

// Definition describes one listing website. It is read-only once the
// registry has been built.
type Definition struct {
	Name     string   // Derived from filename for YAML sources
	Endpoint string   `yaml:"endpoint"`
	Format   Format   `yaml:"format"`
	Enabled  *bool    `yaml:"enabled"`
	Patterns Patterns `yaml:"patterns"`
}

type Patterns struct {
	Block     extract.Pattern `yaml:"block"`
	Location  extract.Pattern `yaml:"location"`
	Bedrooms  extract.Pattern `yaml:"bedrooms"`
	Price     extract.Pattern `yaml:"price"`
	DetailURL extract.Pattern `yaml:"detail_url"`
}

// Search holds the query parameters substituted into source endpoints.
type Search struct {
	PriceMin int
	PriceMax int
	Query    string
	Radius   string
}

func (d *Definition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

func (d *Definition) compile() error {
	fields := []struct {
		name    string
		pattern *extract.Pattern
	}{
		{"block", &d.Patterns.Block},
		{"location", &d.Patterns.Location},
		{"bedrooms", &d.Patterns.Bedrooms},
		{"price", &d.Patterns.Price},
		{"detail_url", &d.Patterns.DetailURL},
	}

	for _, f := range fields {
		if err := f.pattern.Compile(); err != nil {
			return fmt.Errorf("%s pattern: %w", f.name, err)
		}
	}
	return nil
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if d.Endpoint == "" {
		return fmt.Errorf("source endpoint is required")
	}

	switch d.Format {
	case FormatMarkup:
		if d.Patterns.Block.IsEmpty() {
			return fmt.Errorf("block pattern is required for markup sources")
		}
	case FormatFeed:
	default:
		return fmt.Errorf("unknown source format: %s", d.Format)
	}

	return d.compile()
}
