package source

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field readers over the free-form data object. A value reads as present
// when it is non-null and of a usable type.

func stringField(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	default:
		return "", false
	}
}

// firstKey returns the first of keys that exists in data. A key holding
// null still counts, so an explicit null ends a fallback chain.
func firstKey(data map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if _, ok := data[k]; ok {
			return k, true
		}
	}
	return "", false
}

// leadString reads a field that may hold a single string or a list of them,
// returning the first element in the list case.
func leadString(data map[string]any, key string) (string, bool) {
	if s, ok := stringField(data, key); ok {
		return s, true
	}
	list := stringList(data, key)
	if len(list) == 0 {
		return "", false
	}
	return list[0], true
}

func stringList(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func intField(data map[string]any, key string) (int, bool) {
	s, ok := stringField(data, key)
	if !ok {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// splitTags turns "a, b,c" into [a b c].
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, ", ", ","), ",")
}
