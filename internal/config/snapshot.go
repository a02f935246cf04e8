package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Snapshot returns a stable hash of the built configuration, derived values
// included. Two builds of the same declaration with the same clock produce
// the same snapshot.
func (c *SiteConfig) Snapshot() string {
	h := sha256.New()
	// yaml.v3 emits map keys sorted, so option blobs hash deterministically.
	data, err := yaml.Marshal(c)
	if err != nil {
		data = []byte(err.Error())
	}
	h.Write(data)
	h.Write([]byte(strconv.Itoa(c.Derived.Year)))
	h.Write([]byte(c.Derived.Copyright))
	return hex.EncodeToString(h.Sum(nil))
}
