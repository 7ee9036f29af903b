package listing

import (
	"crypto/sha1"
	"encoding/hex"
)

// Fingerprint hashes bedrooms, location and price in that order, as raw
// bytes with no separator. Source and URL are not part of the identity.
func Fingerprint(bedrooms, location, price string) string {
	h := sha1.New()
	h.Write([]byte(bedrooms))
	h.Write([]byte(location))
	h.Write([]byte(price))
	return hex.EncodeToString(h.Sum(nil))
}
