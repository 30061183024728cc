// Package query provides the fetch-coordination layer: a TTL cache keyed by
// resource identity plus parameters, in-flight request de-duplication, and
// cancellation of fetches superseded by a newer request in the same scope.
package query

import (
	"net/url"
)

// Key identifies one logical fetch: a resource name plus its parameters.
// Two fetches with equal keys are interchangeable and may be de-duplicated.
type Key struct {
	Resource string
	Params   url.Values
}

// NewKey builds a key for a resource with optional parameters.
func NewKey(resource string, params url.Values) Key {
	return Key{Resource: resource, Params: params}
}

// String renders the canonical form: resource name plus the key-sorted query
// encoding. url.Values.Encode sorts by key, so equal parameter sets always
// produce equal strings regardless of insertion order.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}
	return k.Resource + "?" + k.Params.Encode()
}
