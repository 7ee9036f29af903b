package listing

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Falkirk, Central", "falkirk"},
		{"Falkirk,Central", "falkirk"},
		{"Falkirk", "falkirk"},
		{"GRANGEMOUTH", "grangemouth"},
		{"Camelon Road, Falkirk, FK1", "camelon road"},
		{"", ""},
		{" Larbert ,Stirlingshire", " larbert "},
		{"Falkirk , Central", "falkirk "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLocation(tt.input))
		})
	}
}

func TestExcluder(t *testing.T) {
	e := NewExcluder([]string{"Denny", "Bo'ness", "  "})

	tests := []struct {
		location string
		excluded bool
	}{
		{"Denny Road", true},
		{"denny road", true},
		{"bo'ness", true},
		{"main street", false},
		{"BO'NESS", true},
		{"falkirk", false},
		{"Dennyloanhead", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			excluded, _ := e.IsExcluded(tt.location)
			assert.Equal(t, tt.excluded, excluded)
		})
	}
}

func TestExcluderOnNormalizedLocation(t *testing.T) {
	e := NewExcluder([]string{"Denny"})

	tests := []struct {
		location string
		excluded bool
	}{
		{"Denny, Stirlingshire", true},
		{"Denny Road, Larbert", true},
		{"Stirling Street, Denny FK6", false},
		{"Falkirk, Central", false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			excluded, _ := e.IsExcluded(NormalizeLocation(tt.location))
			assert.Equal(t, tt.excluded, excluded)
		})
	}
}

func TestExcluderEmpty(t *testing.T) {
	excluded, match := NewExcluder(nil).IsExcluded("Denny")
	assert.False(t, excluded)
	assert.Empty(t, match)

	var nilExcluder *Excluder
	excluded, _ = nilExcluder.IsExcluded("Denny")
	assert.False(t, excluded)
}

func TestFingerprint(t *testing.T) {
	sum := sha1.Sum([]byte("2falkirk450"))
	assert.Equal(t, hex.EncodeToString(sum[:]), Fingerprint("2", "falkirk", "450"))
}

func TestFingerprintIgnoresSourceAndURL(t *testing.T) {
	a := New("zoopla", NormalizeLocation("Falkirk, Central"), "2", "450", "https://www.zoopla.co.uk/to-rent/details/1")
	b := New("rightmove", NormalizeLocation("Falkirk"), "2", "450", "https://www.rightmove.co.uk/properties/9#/")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintDiffers(t *testing.T) {
	base := New("zoopla", "falkirk", "2", "450", "x")

	variants := []Listing{
		New("zoopla", "falkirk", "3", "450", "x"),
		New("zoopla", "larbert", "2", "450", "x"),
		New("zoopla", "falkirk", "2", "475", "x"),
	}

	for _, v := range variants {
		assert.NotEqual(t, base.Fingerprint(), v.Fingerprint(), v.String())
	}
}

func TestNew(t *testing.T) {
	l := New("zoopla", "falkirk", "2", "1,250", "https://example.com/1")
	assert.Equal(t, 2, l.Bedrooms)
	assert.Equal(t, 1250, l.Price)
	assert.Equal(t, "1,250", l.PriceText)

	unknown := New("zoopla", "falkirk", "Unknown", "Unknown", "Unknown")
	assert.Equal(t, 0, unknown.Bedrooms)
	assert.Equal(t, 0, unknown.Price)
}
