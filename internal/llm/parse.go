package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models are asked to end structured replies with a fenced JSON block,
// but they don't always comply. Recovery is best-effort: fenced block
// first, then the first brace span in the raw text.

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyPattern  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// ExtractJSON recovers a JSON object embedded in a model reply. The second
// return value is false when no parseable object is present; callers must
// handle the absent case explicitly.
func ExtractJSON(text string) (map[string]interface{}, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(text); len(m) == 2 {
		if parsed, ok := parseObject(m[1]); ok {
			return parsed, true
		}
	}

	if m := fencedAnyPattern.FindStringSubmatch(text); len(m) == 2 {
		if parsed, ok := parseObject(m[1]); ok {
			return parsed, true
		}
	}

	if span, ok := firstObjectSpan(text); ok {
		if parsed, ok := parseObject(span); ok {
			return parsed, true
		}
	}

	return nil, false
}

// firstObjectSpan returns the first balanced {...} span, so trailing
// stray braces or a second object after it don't spoil the parse.
func firstObjectSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func parseObject(raw string) (map[string]interface{}, bool) {
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return nil, false
	}
	return out, true
}

// StripJSONBlock removes fenced JSON blocks from a reply so the displayed
// markdown doesn't carry the machine-readable tail.
func StripJSONBlock(text string) string {
	return strings.TrimSpace(fencedJSONPattern.ReplaceAllString(text, ""))
}

// StringField pulls a non-empty string value out of an extracted object.
func StringField(data map[string]interface{}, key string) (string, bool) {
	v, ok := data[key]
	if !ok {
		return "", false
	}

	switch value := v.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return "", false
		}
		return value, true
	case []interface{}:
		// Models sometimes return promise lists instead of a single string.
		var items []string
		for _, item := range value {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				items = append(items, "- "+s)
			}
		}
		if len(items) == 0 {
			return "", false
		}
		return strings.Join(items, "\n"), true
	default:
		return "", false
	}
}

// IntMatrix converts a decoded JSON object of numeric scores to ints.
func IntMatrix(data map[string]interface{}) map[string]int {
	out := make(map[string]int, len(data))
	for key, v := range data {
		if f, ok := v.(float64); ok {
			out[key] = int(f)
		}
	}
	return out
}
