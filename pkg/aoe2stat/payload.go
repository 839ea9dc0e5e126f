package aoe2stat

import (
	"regexp"
	"strconv"
)

// payloadStringDepth bounds the recursive string walk over payloads.
const payloadStringDepth = 2

// PayloadUnitName extracts the unit/building/tech name from an action
// payload, trying the keys decoder versions have used over time.
// Returns "" when no name is present.
func PayloadUnitName(payload map[string]any) string {
	if payload == nil {
		return ""
	}

	if unit, ok := payload["unit"].(map[string]any); ok {
		if name, ok := unit["name"].(string); ok && name != "" {
			return name
		}
	}
	for _, key := range []string{"unit_name", "object_name", "item", "name"} {
		if name, ok := payload[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// PayloadMatches reports whether any string reachable from the payload
// (bounded depth) matches the pattern. The primary unit name is checked
// first as a fast path.
func PayloadMatches(payload map[string]any, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return false
	}
	if name := PayloadUnitName(payload); name != "" && pattern.MatchString(name) {
		return true
	}
	return anyStringMatches(payload, pattern, 0)
}

// anyStringMatches walks payload values looking for a matching string.
func anyStringMatches(v any, pattern *regexp.Regexp, depth int) bool {
	if depth > payloadStringDepth {
		return false
	}
	switch val := v.(type) {
	case string:
		return pattern.MatchString(val)
	case map[string]any:
		for _, inner := range val {
			if anyStringMatches(inner, pattern, depth+1) {
				return true
			}
		}
	case []any:
		for _, inner := range val {
			if anyStringMatches(inner, pattern, depth+1) {
				return true
			}
		}
	}
	return false
}

// PayloadCount extracts the queued quantity from a payload, trying the
// keys decoder versions have used. Defaults to 1.
func PayloadCount(payload map[string]any) int {
	for _, key := range []string{"count", "amount", "quantity", "num", "n"} {
		if n, ok := asPositiveInt(payload[key]); ok {
			return n
		}
	}
	return 1
}

// asPositiveInt coerces JSON number/string values to a positive int.
func asPositiveInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if n := int(val); n > 0 {
			return n, true
		}
	case int:
		if val > 0 {
			return val, true
		}
	case string:
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
