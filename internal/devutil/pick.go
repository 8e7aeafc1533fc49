package devutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pick round-trips v through JSON and keeps only the requested keys.
// Used by the CLI to print a subset of course fields.
func Pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

// PickLine renders the picked keys as "k=v" pairs in the order requested.
// Missing keys are skipped.
func PickLine(v any, keys ...string) string {
	m := Pick(v, keys...)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		val, ok := m[k]
		if !ok {
			continue
		}
		switch x := val.(type) {
		case string:
			parts = append(parts, k+"="+x)
		default:
			b, _ := json.Marshal(x)
			parts = append(parts, fmt.Sprintf("%s=%s", k, b))
		}
	}
	return strings.Join(parts, " ")
}
