package source

import (
	"fmt"
	"net/url"

	"github.com/lysyi3m/rent-comb/app/extract"
)

// Defaults returns the built-in source table in polling order.
func Defaults(s Search) []Definition {
	return []Definition{
		{
			Name: "zoopla",
			Endpoint: fmt.Sprintf("https://www.zoopla.co.uk/to-rent/property/falkirk-county/"+
				"?price_frequency=per_month"+
				"&results_sort=newest_listings"+
				"&price_max=%d"+
				"&price_min=%d"+
				"&q=%s"+
				"&radius=%s",
				s.PriceMax, s.PriceMin, url.QueryEscape(s.Query), url.QueryEscape(s.Radius)),
			Format: FormatMarkup,
			Patterns: Patterns{
				Block:     extract.NewPattern(`typename":"Listing"(.*?)isFavourite":false`, ""),
				Bedrooms:  extract.NewPattern(`"content":([0-9]?),"iconId":"bed"`, ""),
				Location:  extract.NewPattern(`,"address":"(.*?)",`, ""),
				Price:     extract.NewPattern(`"price":"£([0-9,]+?) pcm"`, ""),
				DetailURL: extract.NewPattern(`"listingId":"([0-9]+?)"`, "https://www.zoopla.co.uk/to-rent/details/"),
			},
		},
		{
			Name: "rightmove",
			Endpoint: fmt.Sprintf("https://www.rightmove.co.uk/property-to-rent/find.html"+
				"?locationIdentifier=REGION%%5E501"+
				"&maxPrice=%d"+
				"&minPrice=%d",
				s.PriceMax, s.PriceMin),
			Format: FormatMarkup,
			Patterns: Patterns{
				Block:     extract.NewPattern(`\{"id":[0-9](.*?)"hasBrandPlus"`, ""),
				Bedrooms:  extract.NewPattern(`"bedrooms":([0-9]?)`, ""),
				Location:  extract.NewPattern(`"displayAddress":"(.*?)"`, ""),
				Price:     extract.NewPattern(`"displayPrice":"£([0-9,]+?) pcm"`, ""),
				DetailURL: extract.NewPattern(`propertyUrl":"(.*?)#/\?`, "https://www.rightmove.co.uk"),
			},
		},
	}
}
