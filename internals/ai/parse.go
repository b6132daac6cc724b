// file: internals/ai/parse.go
package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

/* =========================================================
   DEFENSIVE JSON EXTRACTION
   Providers wrap JSON in markdown fences, prepend prose, or
   leak raw control characters into string values. Everything
   here normalizes that before strict decoding.
========================================================= */

// DecodeError is the typed failure returned when a completion cannot
// be treated as the expected structure. Callers switch to their
// documented fallback on it, never propagate it to the client.
type DecodeError struct {
	Reason string
	Raw    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ai: undecodable completion: %s", e.Reason)
}

// ExtractJSON slices the first top-level JSON object or array out of a
// completion, stripping markdown code fences first.
func ExtractJSON(raw string) (string, error) {
	s := StripCodeFences(raw)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, end := -1, -1
	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		start = objStart
		end = strings.LastIndex(s, "}")
	} else if arrStart != -1 {
		start = arrStart
		end = strings.LastIndex(s, "]")
	}

	if start == -1 || end == -1 || end <= start {
		return "", &DecodeError{Reason: "no JSON object or array found", Raw: raw}
	}
	return RepairControlChars(s[start : end+1]), nil
}

// StripCodeFences removes ```json ... ``` (or plain ```) wrappers.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// RepairControlChars escapes raw control characters that appear inside
// JSON string values (models sometimes emit literal newlines/tabs).
// Characters outside string values are left alone.
func RepairControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false

	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		switch {
		case r == '\\' && inString:
			b.WriteRune(r)
			escaped = true
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case inString && r == '\n':
			b.WriteString(`\n`)
		case inString && r == '\r':
			b.WriteString(`\r`)
		case inString && r == '\t':
			b.WriteString(`\t`)
		case inString && unicode.IsControl(r):
			b.WriteString(fmt.Sprintf(`\u%04x`, r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeStrict extracts and unmarshals a completion into out. It
// returns a *DecodeError on any shape problem so call sites can fall
// back deterministically.
func DecodeStrict(raw string, out any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return &DecodeError{Reason: err.Error(), Raw: raw}
	}
	return nil
}

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	_, ok := err.(*DecodeError)
	return ok
}
