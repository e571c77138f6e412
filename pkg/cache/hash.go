package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys for each kind of cached result.
type Keyer interface {
	// CountKey addresses a tree count. Kind is "trees" or "rooted" and
	// bound is the degree or branching limit.
	CountKey(kind string, vertices, bound int) string

	// PartitionsKey addresses a partition listing.
	PartitionsKey(opts PartitionKeyOpts) string
}

// PartitionKeyOpts identifies a partition listing.
type PartitionKeyOpts struct {
	Sum      int `json:"sum"`
	MaxParts int `json:"max_parts"`
	MaxValue int `json:"max_value"`
	Limit    int `json:"limit"`
}

// keyVersion is bumped whenever the encoding of cached values changes.
const keyVersion = "v1"

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CountKey returns a readable key such as "count:v1:trees:20:4". Counts are
// addressed by small integers so no hashing is needed.
func (DefaultKeyer) CountKey(kind string, vertices, bound int) string {
	return fmt.Sprintf("count:%s:%s:%d:%d", keyVersion, kind, vertices, bound)
}

// PartitionsKey returns a hashed key over all listing options.
func (DefaultKeyer) PartitionsKey(opts PartitionKeyOpts) string {
	return hashKey("partitions:"+keyVersion, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
