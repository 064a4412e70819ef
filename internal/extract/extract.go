// Package extract locates JSON payloads inside free-form model output.
// Models asked for "strictly valid JSON" still wrap it in markdown fences
// or surround it with prose; this package digs the payload out anyway.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	fencedAny  = regexp.MustCompile("```\\s*([\\s\\S]*?)\\s*```")
)

// JSON returns the first parseable JSON object or array found in text.
// Attempts, in order: a ```json fenced block, any fenced block, the whole
// trimmed text, the span from the first '{' to the last '}', and the span
// from the first '[' to the last ']'. Returns nil, false when nothing
// parses. It never returns an error: callers treat absence as a recoverable
// condition, not a failure.
func JSON(text string) (json.RawMessage, bool) {
	clean := strings.TrimSpace(text)

	if m := fencedJSON.FindStringSubmatch(clean); m != nil {
		if raw, ok := parse(m[1]); ok {
			return raw, true
		}
	}
	if m := fencedAny.FindStringSubmatch(clean); m != nil {
		if raw, ok := parse(m[1]); ok {
			return raw, true
		}
	}
	if raw, ok := parse(clean); ok {
		return raw, true
	}
	if raw, ok := parseSpan(text, "{", "}"); ok {
		return raw, true
	}
	if raw, ok := parseSpan(text, "[", "]"); ok {
		return raw, true
	}
	return nil, false
}

func parse(candidate string) (json.RawMessage, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// parseSpan tries the substring from the first open delimiter to the last
// closing delimiter, inclusive.
func parseSpan(text, open, closer string) (json.RawMessage, bool) {
	first := strings.Index(text, open)
	last := strings.LastIndex(text, closer)
	if first == -1 || last == -1 || last < first {
		return nil, false
	}
	return parse(text[first : last+1])
}
