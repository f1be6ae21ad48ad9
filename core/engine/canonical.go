package engine

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/asaidimu/go-sift/core/record"
)

// canonicalOptions normalizes a ProcessingOptions value into a stable string.
// JSON marshaling of the options struct is deterministic: struct fields emit
// in declaration order and any map values emit with sorted keys, so equal
// options always produce the same canonical form.
func canonicalOptions(opts ProcessingOptions) (string, error) {
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize processing options: %w", err)
	}
	return string(b), nil
}

// cacheKey combines a fingerprint of the input record set with the canonical
// options, so identical options over a different collection is a guaranteed
// miss rather than a stale hit.
func cacheKey(records []record.Record, canonical string) string {
	return fmt.Sprintf("%016x:%016x", record.Fingerprint(records), xxhash.Sum64String(canonical))
}
