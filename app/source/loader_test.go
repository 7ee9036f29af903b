package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoaderMergeAppendsAndReplaces(t *testing.T) {
	dir := t.TempDir()

	writeSource(t, dir, "s1homes.yml", `
endpoint: "https://www.s1homes.com/rent?min=${PRICE_MIN}&max=${PRICE_MAX}&q=${QUERY}&keep=${OTHER}"
patterns:
  block: '<article class="listing">(.*?)</article>'
  location: '<h2>(.*?)</h2>'
  bedrooms: '([0-9]+) bed'
  price: '£([0-9,]+) pcm'
  detail_url:
    expr: 'href="(/property/[0-9]+)"'
    prefix: "https://www.s1homes.com"
`)
	writeSource(t, dir, "rightmove.yaml", `
endpoint: "https://www.rightmove.co.uk/property-to-rent/find.html?maxPrice=${PRICE_MAX}"
enabled: false
`)

	loader := NewLoader(dir, Search{PriceMin: 400, PriceMax: 600, Query: "Falkirk Central"}, zap.NewNop())
	defs, err := loader.Merge(Defaults(testSearch()))
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, "zoopla", defs[0].Name)
	assert.Equal(t, "rightmove", defs[1].Name)
	assert.False(t, defs[1].IsEnabled())
	assert.Equal(t, "s1homes", defs[2].Name)

	s1 := defs[2]
	assert.Equal(t, "https://www.s1homes.com/rent?min=400&max=600&q=Falkirk+Central&keep=${OTHER}", s1.Endpoint)
	assert.Equal(t, FormatMarkup, s1.Format)
	assert.Equal(t, "https://www.s1homes.com", s1.Patterns.DetailURL.Prefix)
	assert.Equal(t, `([0-9]+) bed`, s1.Patterns.Bedrooms.Expr)

	r, err := NewRegistry(defs...)
	require.NoError(t, err)
	assert.Equal(t, []string{"zoopla", "s1homes"}, r.Names())
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing"), testSearch(), zap.NewNop())

	defs, err := loader.Merge(Defaults(testSearch()))
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

func TestLoaderInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "broken.yml", "endpoint: [unterminated")

	loader := NewLoader(dir, testSearch(), zap.NewNop())
	_, err := loader.Merge(nil)
	assert.Error(t, err)
}

func TestLoadFileFeedFormat(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "citylets.yml", `
endpoint: "https://www.citylets.co.uk/rss/falkirk"
format: feed
patterns:
  location: '(?i)in ([A-Za-z ]+), '
  bedrooms: '([0-9]) bed'
  price: '£([0-9,]+)'
  detail_url: '(https://www\.citylets\.co\.uk/property/[0-9]+)'
`)

	loader := NewLoader(dir, testSearch(), zap.NewNop())
	def, err := loader.LoadFile(filepath.Join(dir, "citylets.yml"))
	require.NoError(t, err)

	assert.Equal(t, "citylets", def.Name)
	assert.Equal(t, FormatFeed, def.Format)
	assert.True(t, def.Patterns.Block.IsEmpty())
	assert.Empty(t, def.Patterns.DetailURL.Prefix)
}
