// Package schema decodes portal payloads into Go types and rejects anything
// that does not match the declared shape exactly.
//
// Decoding happens in two passes. The structural pass (mapstructure) reports
// unknown keys, missing keys, nulls in non-nullable fields and type
// mismatches. The constraint pass (validator) reports values that violate a
// field's `validate` tag. Every violation of both passes is collected and
// returned together as Violations.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for payload decoding
type ErrorCode string

const (
	// ErrNotJSON is returned when a body cannot be parsed as JSON at all
	ErrNotJSON ErrorCode = "NotJSON"
	// ErrViolation is returned when a payload does not match its shape
	ErrViolation ErrorCode = "SchemaViolation"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// Violation is a single field that broke its constraint.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Violations is the error returned when a value fails validation.
type Violations []Violation

func (vs Violations) Error() string {
	switch len(vs) {
	case 0:
		return "no violations"
	case 1:
		return vs[0].String()
	default:
		return fmt.Sprintf("%s (and %d more)", vs[0], len(vs)-1)
	}
}

// LogValue lists every violation, where Error only names the first.
func (vs Violations) LogValue() slog.Value {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.String()
	}
	return slog.AnyValue(lines)
}

// maxBodyContext caps how much of a non-JSON body ends up in error context.
const maxBodyContext = 512

// Decode parses body as JSON and decodes it into T. The error is either an
// ErrNotJSON failure carrying the start of the raw body, or an ErrViolation
// failure wrapping Violations.
func Decode[T any](body []byte) (T, error) {
	var zero T

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		text := string(body)
		if len(text) > maxBodyContext {
			text = text[:maxBodyContext] + "..."
		}
		return zero, failure.Translate(err, ErrNotJSON,
			failure.Message("Response is not valid JSON"),
			failure.Context{"body": text},
		)
	}

	return DecodeValue[T](raw)
}

// DecodeValue decodes an already parsed JSON value (as produced by
// encoding/json with UseNumber) into T.
func DecodeValue[T any](raw any) (T, error) {
	var out T

	violations := decodeStrict(markNulls(raw), &out)
	reported := make(map[string]bool, len(violations))
	for _, v := range violations {
		reported[v.Path] = true
	}
	// A field that failed to decode holds its zero value, so its constraint
	// failure would only repeat the structural one.
	for _, v := range check(out) {
		if !reported[v.Path] {
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		var zero T
		return zero, failure.Translate(violations, ErrViolation,
			failure.Context{"violations": fmt.Sprint(len(violations))},
		)
	}
	return out, nil
}

// Check validates a value that was built in code rather than decoded, such
// as a reshaped output document.
func Check(v any) error {
	if violations := check(v); len(violations) > 0 {
		return failure.Translate(violations, ErrViolation,
			failure.Context{"violations": fmt.Sprint(len(violations))},
		)
	}
	return nil
}

func decodeStrict(raw any, out any) Violations {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(decodeHook),
		ErrorUnused: true,
		ErrorUnset:  true,
		Squash:      true,
		TagName:     "json",
		MatchName:   func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:      out,
	})
	if err != nil {
		return Violations{{Message: err.Error()}}
	}

	err = decoder.Decode(raw)
	if err == nil {
		return nil
	}

	merr, ok := err.(*mapstructure.Error)
	if !ok {
		return parseDecodeError(err.Error())
	}
	var violations Violations
	for _, msg := range merr.Errors {
		violations = append(violations, parseDecodeError(msg)...)
	}
	return violations
}

// parseDecodeError turns a mapstructure message into violations with a path.
func parseDecodeError(msg string) []Violation {
	if path, keys, ok := splitKeyList(msg, "has invalid keys: "); ok {
		return perKey(path, keys, "unexpected field")
	}
	if path, keys, ok := splitKeyList(msg, "has unset fields: "); ok {
		return perKey(path, keys, "missing field")
	}
	if rest, ok := strings.CutPrefix(msg, "error decoding '"); ok {
		if path, reason, ok := strings.Cut(rest, "': "); ok {
			return []Violation{{Path: path, Message: reason}}
		}
	}
	if rest, ok := strings.CutPrefix(msg, "error decoding json.Number into "); ok {
		if path, reason, ok := strings.Cut(rest, ": "); ok {
			return []Violation{{Path: path, Message: "must be an integer: " + reason}}
		}
	}
	if rest, ok := strings.CutPrefix(msg, "'"); ok {
		if path, reason, ok := strings.Cut(rest, "' "); ok {
			return []Violation{{Path: path, Message: reason}}
		}
	}
	return []Violation{{Message: msg}}
}

func splitKeyList(msg, marker string) (path string, keys []string, ok bool) {
	head, list, found := strings.Cut(msg, marker)
	if !found {
		return "", nil, false
	}
	head = strings.TrimSpace(head)
	head = strings.TrimPrefix(head, "'")
	head = strings.TrimSuffix(head, "'")
	return head, strings.Split(list, ", "), true
}

func perKey(path string, keys []string, message string) []Violation {
	out := make([]Violation, 0, len(keys))
	for _, key := range keys {
		p := key
		if path != "" && !strings.HasPrefix(key, path+".") {
			p = path + "." + key
		}
		out = append(out, Violation{Path: p, Message: message})
	}
	return out
}

func check(v any) Violations {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	var err error
	switch rv.Kind() {
	case reflect.Struct:
		err = validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		err = validate.Var(rv.Interface(), "dive")
	default:
		return nil
	}
	return fieldViolations(err)
}
