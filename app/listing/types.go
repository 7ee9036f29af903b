package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// Listing is one normalized rental advert.
type Listing struct {
	Source       string
	Location     string // Lower-cased, cut at the first comma
	BedroomsText string // As extracted; Unknown on a miss
	Bedrooms     int    // 0 when BedroomsText is not a number
	PriceText    string // As extracted; Unknown on a miss
	Price        int    // Monthly amount, 0 when PriceText is not a number
	URL          string
}

func New(sourceName, location, bedrooms, price, url string) Listing {
	return Listing{
		Source:       sourceName,
		Location:     location,
		BedroomsText: bedrooms,
		Bedrooms:     parseCount(bedrooms),
		PriceText:    price,
		Price:        parseCount(price),
		URL:          url,
	}
}

// Fingerprint is the listing's identity, independent of source and URL.
func (l Listing) Fingerprint() string {
	return Fingerprint(l.BedroomsText, l.Location, l.PriceText)
}

func (l Listing) String() string {
	return fmt.Sprintf("Listing(source=%s, location=%s, bedrooms=%s, price=%s, url=%s)",
		l.Source, l.Location, l.BedroomsText, l.PriceText, l.URL)
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
