package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// fencePattern matches a whole reply wrapped in a markdown code block: ```json { ... } ```
var fencePattern = regexp.MustCompile("(?s)^```(?:json|JSON)?\\s*\\n?(.*?)\\s*```$")

var ErrEmpty = errors.New("empty response")

// Unwrap strips surrounding whitespace and a single markdown code fence.
// Anything else is returned untouched so that prose around the JSON still fails to parse.
func Unwrap(content string) string {
	content = strings.TrimSpace(content)
	if matches := fencePattern.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return content
}

// Decode parses a model reply into v. The reply must be exactly one JSON object.
func Decode(content string, v any) error {
	body := Unwrap(content)
	if body == "" {
		return ErrEmpty
	}

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	if dec.More() {
		return errors.New("decode json: unexpected content after object")
	}

	return nil
}
