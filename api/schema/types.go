package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/net/html"
)

// Null is a field that must always be JSON null.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// YesNo decodes the strings "Yes" and "No" into a boolean.
type YesNo bool

// Currency is an amount such as "$1,500". HTML entities are decoded, and a
// pointer to Currency decodes the empty string as null.
type Currency string

// Trimmed is a string with surrounding whitespace removed.
type Trimmed string

// nullMarker stands in for JSON null while decoding so the hook can tell a
// null apart from a missing key.
type nullMarker struct{}

var (
	nullMarkerType  = reflect.TypeOf(nullMarker{})
	numberType      = reflect.TypeOf(json.Number(""))
	nullType        = reflect.TypeOf(Null{})
	yesNoType       = reflect.TypeOf(YesNo(false))
	currencyType    = reflect.TypeOf(Currency(""))
	currencyPtrType = reflect.TypeOf((*Currency)(nil))
	trimmedType     = reflect.TypeOf(Trimmed(""))
)

func markNulls(v any) any {
	switch v := v.(type) {
	case nil:
		return nullMarker{}
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = markNulls(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = markNulls(e)
		}
		return out
	default:
		return v
	}
}

// unmarkNulls undoes markNulls for values kept as untyped data.
func unmarkNulls(v any) any {
	switch v := v.(type) {
	case nullMarker:
		return nil
	case map[string]any:
		for k, e := range v {
			v[k] = unmarkNulls(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = unmarkNulls(e)
		}
		return v
	default:
		return v
	}
}

func decodeHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() == reflect.Interface {
		return unmarkNulls(data), nil
	}
	if from == nullMarkerType {
		switch {
		case to == nullType:
			return Null{}, nil
		case to.Kind() == reflect.Ptr:
			return nil, nil
		default:
			return nil, errors.New("must not be null")
		}
	}

	switch to {
	case nullType:
		return nil, fmt.Errorf("must be null, got %s", describe(data))
	case currencyPtrType:
		if s, ok := data.(string); ok && s == "" {
			return nil, nil
		}
	case currencyType:
		if s, ok := data.(string); ok {
			return Currency(html.UnescapeString(s)), nil
		}
	case yesNoType:
		switch data {
		case "Yes":
			return YesNo(true), nil
		case "No":
			return YesNo(false), nil
		}
		return nil, fmt.Errorf(`must be "Yes" or "No", got %s`, describe(data))
	case trimmedType:
		if s, ok := data.(string); ok {
			return Trimmed(strings.TrimSpace(s)), nil
		}
	}

	if from == numberType && to.Kind() == reflect.String && to != numberType {
		return nil, fmt.Errorf("expected string, got number %s", data)
	}
	return data, nil
}

func describe(data any) string {
	switch v := data.(type) {
	case string:
		return fmt.Sprintf("string %q", v)
	case json.Number:
		return "number " + v.String()
	case bool:
		return fmt.Sprintf("boolean %t", v)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
