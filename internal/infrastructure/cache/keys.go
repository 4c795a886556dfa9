package cache

import (
	"net/url"
	"sort"
	"strings"
)

// keyPrefix namespaces every cache key written by this process.
const keyPrefix = "reelgate"

// Key derives a cache key from a category and its identifying parts.
// Parts are query-escaped so arbitrary user input (search queries, filter
// serializations) stays key-safe. Empty parts are kept: the position of a
// part is significant.
//
// Two logically identical requests must map to the same key, so callers
// serialize any parameter map deterministically (see Params) before
// passing it here.
func Key(category Category, parts ...string) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteByte(':')
	b.WriteString(string(category))
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

// Params serializes a parameter map deterministically: sorted keys,
// escaped values, joined as k=v&k=v. Map iteration order never leaks into
// the result.
func Params(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
