package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/extract"
	"github.com/lysyi3m/rent-comb/app/source"
)

// ErrNoBlocks means the page did not contain a single listing block, which
// almost always indicates the site changed its markup.
var ErrNoBlocks = errors.New("no listing blocks found")

type Parser struct {
	excluder     *Excluder
	gofeedParser *gofeed.Parser
	logger       *zap.Logger
}

func NewParser(excluder *Excluder, logger *zap.Logger) *Parser {
	return &Parser{
		excluder:     excluder,
		gofeedParser: gofeed.NewParser(),
		logger:       logger,
	}
}

// Run turns a fetched page into listings, in block order. Blocks in an
// excluded location and blocks without a positive bedroom count are dropped.
func (p *Parser) Run(raw string, def source.Definition) ([]Listing, error) {
	blocks, err := p.blocks(raw, def)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}

	listings := make([]Listing, 0, len(blocks))
	excludedCount, invalidCount := 0, 0

	for _, block := range blocks {
		location := NormalizeLocation(extract.Extract(&def.Patterns.Location, block))
		if excluded, match := p.excluder.IsExcluded(location); excluded {
			excludedCount++
			p.logger.Debug("Listing excluded by location",
				zap.String("source", def.Name),
				zap.String("location", location),
				zap.String("exclude", match))
			continue
		}

		l := New(
			def.Name,
			location,
			extract.Extract(&def.Patterns.Bedrooms, block),
			extract.Extract(&def.Patterns.Price, block),
			extract.Extract(&def.Patterns.DetailURL, block),
		)

		if l.Bedrooms <= 0 {
			invalidCount++
			p.logger.Debug("Listing dropped, no bedroom count",
				zap.String("source", def.Name),
				zap.String("bedrooms", l.BedroomsText),
				zap.String("url", l.URL))
			continue
		}

		listings = append(listings, l)
	}

	p.logger.Debug("Page parsed",
		zap.String("source", def.Name),
		zap.Int("blocks", len(blocks)),
		zap.Int("listings", len(listings)),
		zap.Int("excluded", excludedCount),
		zap.Int("invalid", invalidCount))

	return listings, nil
}

func (p *Parser) blocks(raw string, def source.Definition) ([]string, error) {
	switch def.Format {
	case source.FormatFeed:
		return p.feedBlocks(raw)
	default:
		return extract.All(&def.Patterns.Block, raw), nil
	}
}

// feedBlocks flattens each RSS/Atom item into one text block so the field
// patterns can run against it the same way they run against page markup.
func (p *Parser) feedBlocks(raw string) ([]string, error) {
	feed, err := p.gofeedParser.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	blocks := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		parts := []string{item.Title, item.Description, item.Content, item.Link}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}

	return blocks, nil
}
