package cache

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Descriptor is the canonical form of one provider request, used to derive
// the cache key. Two requests with identical parameters must produce the same
// key; any parameter difference must produce a different one.
type Descriptor struct {
	Provider  string
	Operation string
	Params    map[string]string
}

// Key computes the cache key: a readable provider/operation prefix plus an
// FNV-1a hash over the operation and the sorted parameter pairs. Every token
// is length-prefixed before hashing so free-text values cannot collide with
// a differently shaped parameter map. The prefix keeps Clear and diagnostics
// scoped per provider even on a shared backend.
func (d Descriptor) Key() string {
	h := fnv.New64a()

	_, _ = fmt.Fprintf(h, "%d:%s", len(d.Operation), d.Operation)

	if len(d.Params) > 0 {
		keys := make([]string, 0, len(d.Params))
		for k := range d.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := d.Params[k]
			_, _ = fmt.Fprintf(h, "%d:%s%d:%s", len(k), k, len(v), v)
		}
	}

	return fmt.Sprintf("%s%s:%016x", Prefix(d.Provider), d.Operation, h.Sum64())
}

// Prefix returns the key prefix owned by a provider.
func Prefix(provider string) string {
	return provider + ":"
}
