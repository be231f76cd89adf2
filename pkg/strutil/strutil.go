// Package strutil holds small string helpers shared by the report parsers and the CLI.
package strutil

import (
	"fmt"
	"strings"
)

// KeyValue is one "key=value" pair, kept in the order it was given.
type KeyValue struct {
	Key   string
	Value string
}

// ParseKVStrings converts ["key=value"] to ordered pairs. A missing "=" yields an empty value.
// The value may itself contain "=". An empty key is rejected.
func ParseKVStrings(values []string) ([]KeyValue, error) {
	result := make([]KeyValue, 0, len(values))

	const splitLimit = 2
	for _, value := range values {
		kv := strings.SplitN(value, "=", splitLimit)
		key := strings.TrimSpace(kv[0])
		if key == "" {
			return nil, fmt.Errorf("invalid key=value pair %q: empty key", value)
		}

		pair := KeyValue{Key: key}
		if len(kv) == splitLimit {
			pair.Value = kv[1]
		}
		result = append(result, pair)
	}

	return result, nil
}

// DedupeStrSlice removes repeated entries, keeping the first occurrence of each.
func DedupeStrSlice(in []string) []string {
	m := make(map[string]struct{})

	var res []string

	for _, s := range in {
		if _, ok := m[s]; !ok {
			res = append(res, s)
			m[s] = struct{}{}
		}
	}

	return res
}

// StripTypeInfo drops the last dotted segment of a qualified name and keeps everything
// up to and including the last ".". Names without a dot are returned unchanged.
func StripTypeInfo(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return name
	}
	return name[:idx+1]
}

// ParseTypeInfo normalizes a TRX test method name such as "Namespace.Outer+Inner.Method(int,string)".
// Only the part before the first "(" goes through StripTypeInfo; the argument list is kept verbatim.
func ParseTypeInfo(name string) string {
	paren := strings.Index(name, "(")
	if paren == -1 {
		return StripTypeInfo(name)
	}
	return StripTypeInfo(name[:paren]) + name[paren:]
}
