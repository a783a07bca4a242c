// Package reshape turns the portal's label/value lists into fixed records.
package reshape

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ka2n/ufvdata/api/schema"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

func init() {
	// Values are validated as their list of strings, so `dive,min=1` rejects
	// blank entries.
	schema.RegisterType(func(v reflect.Value) any {
		return v.Interface().(Value).values
	}, Value{})
}

// Item is one label/value triple as the portal sends it.
type Item struct {
	Label       string `json:"label" validate:"min=1"`
	Value       string `json:"value" validate:"min=1"`
	TreatAsHTML bool   `json:"treatAsHTML"`
}

// Label is a field the reshaper looks up. Array fields always produce a
// list, other fields produce a list only when the label occurs more than
// once.
type Label struct {
	Text  string
	Array bool
}

// Key returns the output key for the label: trailing "?:" or ":" and all
// whitespace removed, first letter lower-cased.
// "Selection Process:" becomes "selectionProcess".
func (l Label) Key() string {
	s := strings.TrimSpace(l.Text)
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSuffix(s, "?")
	s = strings.Join(strings.Fields(s), "")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Extract collects the values of every item labelled l.Text, in order.
func Extract(items []Item, l Label) Value {
	matches := lo.FilterMap(items, func(item Item, _ int) (string, bool) {
		if item.Label != l.Text {
			return "", false
		}
		v := strings.TrimSpace(item.Value)
		if item.TreatAsHTML {
			v = html.UnescapeString(v)
		}
		return v, true
	})

	switch {
	case len(matches) == 0:
		return Value{}
	case len(matches) == 1 && !l.Array:
		return Value{values: matches}
	default:
		return Value{values: matches, list: true}
	}
}

// Value is an extracted field: null, a single string, or a list of strings.
type Value struct {
	values []string
	list   bool
}

// Scalar builds a single string value.
func Scalar(s string) Value {
	return Value{values: []string{s}}
}

// List builds a list value.
func List(s ...string) Value {
	return Value{values: s, list: true}
}

// IsNull reports whether no item carried the label.
func (v Value) IsNull() bool {
	return len(v.values) == 0
}

// IsList reports whether the value is serialized as an array.
func (v Value) IsList() bool {
	return v.list && len(v.values) > 0
}

// Strings returns every extracted string in encounter order.
func (v Value) Strings() []string {
	return v.values
}

// Equal reports whether both values serialize identically.
func (v Value) Equal(o Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() == o.IsNull()
	}
	return v.IsList() == o.IsList() && slices.Equal(v.values, o.values)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}

	var out any = v.values[0]
	if v.list {
		out = v.values
	}

	// The caller's encoder decides on HTML escaping.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
