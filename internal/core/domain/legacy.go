package domain

import (
	"encoding/json"
	"strings"
)

// ParseLegacyStringArray repairs transcripts that older hub builds send as
// Python list literals, e.g. "['hello', 'world']". Bracketed input has its
// single quotes swapped for double quotes and is decoded as JSON. Anything
// else, including bracketed speech such as "[Music] hello [Applause]", is
// split on whitespace.
func ParseLegacyStringArray(s string) []string {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var out []string
		if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &out); err == nil {
			return out
		}
	}
	return strings.Fields(s)
}

// ParseLegacyObjectArray repairs detections sent as Python list literals.
// Anything that is not a bracketed list, or does not decode, yields an empty list.
func ParseLegacyObjectArray(s string) []DetectedObject {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return []DetectedObject{}
	}
	var out []DetectedObject
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &out); err != nil {
		return []DetectedObject{}
	}
	return out
}
