// Package query implements the read-through cache the dashboard data layer
// sits on: TTL'd entries keyed per entity, request deduplication, and the
// invalidation rules mutations rely on.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/bizdash/bizdash/internal/domain/shared"
)

// Cache keys follow a fixed taxonomy so invalidation can address a whole
// entity by prefix:
//
//	<entity>|list|<canonical filter>
//	<entity>|detail|<id>
//
// Two filters that differ in any field always yield distinct keys.

// ListKey builds the cache key for a filtered list query
func ListKey(entity string, f shared.Filter) string {
	return entity + "|list|" + canonicalFilter(f)
}

// DetailKey builds the cache key for a single record
func DetailKey(entity, id string) string {
	return entity + "|detail|" + id
}

// Namespace returns the invalidation prefix covering every key of an entity
func Namespace(entity string) string {
	return entity + "|"
}

// canonicalFilter serializes a filter deterministically. encoding/json
// emits struct fields in declaration order and map keys sorted, so equal
// filters always produce the same string.
func canonicalFilter(f shared.Filter) string {
	f = f.Normalize()
	raw, err := json.Marshal(f)
	if err != nil {
		// Filter is a plain data struct; Marshal cannot fail on it. Keep a
		// distinct fallback anyway rather than silently colliding keys.
		return fmt.Sprintf("unencodable:%+v", f)
	}
	return string(raw)
}
