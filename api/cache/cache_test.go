package cache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

type award struct {
	Code   string
	Amount *string
	Items  []string
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "scholarships", want: "scholarships"},
		{key: "timetables/202309", want: "timetables/202309"},
		{key: "../../etc/passwd", want: "././etc/passwd"},
		{key: "a b:c", want: "a_b_c"},
		{key: "a//b", want: "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := normalizeKey(tt.key); got != tt.want {
				t.Errorf("normalizeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCache_SetGet(t *testing.T) {
	c := New[[]award](t.TempDir())
	amount := "$500"
	want := []award{
		{Code: "AB12", Amount: &amount, Items: []string{"x", "y"}},
		{Code: "CD34"},
	}

	if err := c.Set("scholarships", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Get("scholarships")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(want, got.Value); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Get() CreatedAt is zero")
	}
}

func TestCache_GetMissing(t *testing.T) {
	c := New[string](t.TempDir())
	_, err := c.Get("nothing")
	if !failure.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %s", err, ErrNotFound)
	}
}
