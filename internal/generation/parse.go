package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/straye-as/estimate-api/internal/domain"
)

// maxExcerpt bounds how much raw model text a ContractError keeps
const maxExcerpt = 512

// ContractError reports model text that could not be turned into a
// GenerationResult. It matches domain.ErrGenerationContract.
type ContractError struct {
	Reason  string
	Excerpt string
	Err     error
}

func (e *ContractError) Error() string {
	msg := "generation contract violated: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ContractError) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrGenerationContract}
	}
	return []error{domain.ErrGenerationContract, e.Err}
}

func contractError(reason, raw string, err error) *ContractError {
	excerpt := raw
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt]
	}
	return &ContractError{Reason: reason, Excerpt: excerpt, Err: err}
}

var errNotObject = errors.New("top-level JSON value is not an object")

// ParseResponse turns raw model text into a GenerationResult.
//
// The whole text (minus a Markdown code fence) is parsed first. If that is
// not JSON, the span from the first '{' to the last '}' is tried, then the
// last balanced top-level {...} block. Text that is valid JSON but not an
// object fails without trying the fallbacks.
func ParseResponse(raw string) (domain.GenerationResult, error) {
	body := stripFence(raw)
	if body == "" {
		return domain.GenerationResult{}, contractError("empty response", raw, nil)
	}

	obj, err := decodeObject(body)
	if err == nil {
		return normalize(obj), nil
	}
	if errors.Is(err, errNotObject) {
		return domain.GenerationResult{}, contractError("unexpected response shape", raw, err)
	}

	for _, candidate := range []string{greedyObject(body), lastObject(body)} {
		if candidate == "" {
			continue
		}
		if obj, cerr := decodeObject(candidate); cerr == nil {
			return normalize(obj), nil
		}
	}
	return domain.GenerationResult{}, contractError("no JSON object in response", raw, err)
}

// stripFence removes a surrounding ```lang ... ``` block
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// decodeObject parses s as exactly one JSON value which must be an object
func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func greedyObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// lastObject returns the last balanced {...} block that decodes as a JSON
// object. The scan restarts at every '{' so stray braces or quotes in the
// surrounding prose cannot hide a later object.
func lastObject(s string) string {
	for i := strings.LastIndexByte(s, '{'); i >= 0; i = strings.LastIndexByte(s[:i], '{') {
		end := objectEnd(s, i)
		if end == -1 {
			continue
		}
		candidate := s[i : end+1]
		if _, err := decodeObject(candidate); err == nil {
			if outer := enclosingObject(s, i); outer != "" {
				return outer
			}
			return candidate
		}
	}
	return ""
}

// enclosingObject returns a decodable object that starts before pos and
// contains it, preferring the outermost one.
func enclosingObject(s string, pos int) string {
	var found string
	for i := strings.LastIndexByte(s[:pos], '{'); i >= 0; i = strings.LastIndexByte(s[:i], '{') {
		end := objectEnd(s, i)
		if end < pos {
			continue
		}
		candidate := s[i : end+1]
		if _, err := decodeObject(candidate); err == nil {
			found = candidate
		}
	}
	return found
}

// objectEnd returns the index of the '}' that closes the '{' at start, or
// -1 when it is never closed. Braces inside JSON strings do not count.
func objectEnd(s string, start int) int {
	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return i
			}
		}
	}
	return -1
}

// ============================================================================
// Normalization
// ============================================================================

func normalize(obj map[string]any) domain.GenerationResult {
	res := domain.EmptyGenerationResult()
	res.ScopeOfWork = text(obj["scopeOfWork"])
	res.Assumptions = appendStrings(res.Assumptions, obj["assumptions"])
	res.Exclusions = appendStrings(res.Exclusions, obj["exclusions"])
	res.BOM = appendBOM(res.BOM, obj["bom"])
	res.AHJGuidance = appendStrings(res.AHJGuidance, obj["ahjGuidance"])
	return res
}

// text returns v when it is a string and "" otherwise
func text(v any) string {
	s, _ := v.(string)
	return s
}

// appendStrings adds the strings of list v to out. Numbers and booleans are
// rendered as text; nulls, objects and nested arrays are dropped.
func appendStrings(out []string, v any) []string {
	items, ok := v.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		switch x := item.(type) {
		case string:
			out = append(out, x)
		case json.Number:
			out = append(out, x.String())
		case bool:
			out = append(out, strconv.FormatBool(x))
		}
	}
	return out
}

func appendBOM(out []domain.BOMItem, v any) []domain.BOMItem {
	items, ok := v.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.BOMItem{
			Name:  text(m["name"]),
			Qty:   quantity(m["qty"]),
			Unit:  text(m["unit"]),
			Notes: text(m["notes"]),
		})
	}
	return out
}

// quantity accepts a JSON number or a numeric string; anything else is 0
func quantity(v any) float64 {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// debugExcerpt is used in log lines so a single bad answer cannot flood them
func debugExcerpt(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxExcerpt {
		return fmt.Sprintf("%s... (%d bytes)", raw[:maxExcerpt], len(raw))
	}
	return raw
}
