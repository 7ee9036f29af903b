package tasks

import (
	"github.com/lysyi3m/rent-comb/app/dedup"
	"github.com/lysyi3m/rent-comb/app/listing"
	"github.com/lysyi3m/rent-comb/app/source"
)

// Deduplicator decides whether a listing was seen before and records it
// when it was not. Implemented by *dedup.Engine.
type Deduplicator interface {
	Process(l listing.Listing) (dedup.Outcome, error)
}

// PageParser turns a fetched page into listings. Implemented by
// *listing.Parser.
type PageParser interface {
	Run(raw string, def source.Definition) ([]listing.Listing, error)
}

var (
	_ Deduplicator = (*dedup.Engine)(nil)
	_ PageParser   = (*listing.Parser)(nil)
)
