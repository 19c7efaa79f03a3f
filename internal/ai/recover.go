package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONObject the response has no {...} span to recover
var ErrNoJSONObject = errors.New("no JSON object found in response")

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*\]`)
	adjacentArrays      = regexp.MustCompile(`\]\s*\[`)
)

// RecoverJSON returns valid JSON recovered from raw model output.
//
// Well-formed input is returned untouched. Otherwise the span from the first '{'
// to the last '}' is cut out and three textual repairs run in this order:
// trailing commas before '}', trailing commas before ']', then "][" becomes "],[".
// The repairs are purely textual and also rewrite matching text inside string
// literals; that narrow heuristic is kept as is.
func RecoverJSON(raw string) ([]byte, error) {
	if json.Valid([]byte(raw)) {
		return []byte(raw), nil
	}

	span, ok := outerObject(raw)
	if !ok {
		return nil, ErrNoJSONObject
	}

	repaired := repairJSON(span)
	if !json.Valid([]byte(repaired)) {
		// surface the decoder's error message
		var probe interface{}
		err := json.Unmarshal([]byte(repaired), &probe)
		return nil, fmt.Errorf("parse repaired JSON: %w", err)
	}
	return []byte(repaired), nil
}

// Recover decodes raw model output into v, repairing it first when needed.
func Recover(raw string, v interface{}) error {
	data, err := RecoverJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode recovered JSON: %w", err)
	}
	return nil
}

// outerObject greedy match from the first '{' through the last '}'
func outerObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}

func repairJSON(s string) string {
	s = trailingCommaObject.ReplaceAllString(s, "}")
	s = trailingCommaArray.ReplaceAllString(s, "]")
	s = adjacentArrays.ReplaceAllString(s, "],[")
	return s
}
