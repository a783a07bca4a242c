package schema

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

type testInstructor struct {
	BannerID string  `json:"bannerId" validate:"digits"`
	Email    *string `json:"emailAddress" validate:"omitnil,min=1"`
}

type testPayload struct {
	Success     bool             `json:"success" validate:"eq=true"`
	Count       int              `json:"count" validate:"min=0"`
	Term        string           `json:"term" validate:"yyyymm00"`
	Mode        Null             `json:"mode"`
	Amount      *Currency        `json:"amount" validate:"omitnil,startswith=$"`
	Docs        YesNo            `json:"docs"`
	Title       Trimmed          `json:"title" validate:"min=1"`
	Instructors []testInstructor `json:"instructors" validate:"dive"`
}

const validPayload = `{
	"success": true,
	"count": 3,
	"term": "202309",
	"mode": null,
	"amount": "&#36;1,500",
	"docs": "Yes",
	"title": "  Entrance Award ",
	"instructors": [{"bannerId": "123", "emailAddress": null}]
}`

// violationPaths extracts the paths of every violation carried by err.
func violationPaths(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !failure.Is(err, ErrViolation) {
		t.Fatalf("expected %v, got %v", ErrViolation, err)
	}
	var vs Violations
	if !errors.As(err, &vs) {
		t.Fatalf("expected Violations in chain, got %T", err)
	}
	paths := make([]string, len(vs))
	for i, v := range vs {
		paths[i] = v.Path
	}
	return paths
}

func TestDecode(t *testing.T) {
	got, err := Decode[testPayload]([]byte(validPayload))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	amount := Currency("$1,500")
	want := testPayload{
		Success:     true,
		Count:       3,
		Term:        "202309",
		Amount:      &amount,
		Docs:        true,
		Title:       "Entrance Award",
		Instructors: []testInstructor{{BannerID: "123"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_EmptyCurrencyIsNull(t *testing.T) {
	body := strings.Replace(validPayload, `"&#36;1,500"`, `""`, 1)
	got, err := Decode[testPayload]([]byte(body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Amount != nil {
		t.Errorf("Amount = %q, want nil", *got.Amount)
	}
}

func TestDecode_Violations(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPaths []string
	}{
		{
			name:      "Unknown key at the root",
			body:      strings.Replace(validPayload, `"success": true,`, `"success": true, "extra": 1,`, 1),
			wantPaths: []string{"extra"},
		},
		{
			name:      "Unknown key in a nested object",
			body:      strings.Replace(validPayload, `"bannerId": "123",`, `"bannerId": "123", "displayName": "X",`, 1),
			wantPaths: []string{"instructors[0].displayName"},
		},
		{
			name:      "Missing key",
			body:      strings.Replace(validPayload, `"count": 3,`, ``, 1),
			wantPaths: []string{"count"},
		},
		{
			name:      "Null in non-nullable field",
			body:      strings.Replace(validPayload, `"success": true`, `"success": null`, 1),
			wantPaths: []string{"success"},
		},
		{
			name:      "Literal mismatch",
			body:      strings.Replace(validPayload, `"success": true`, `"success": false`, 1),
			wantPaths: []string{"success"},
		},
		{
			name:      "Non-null where null is required",
			body:      strings.Replace(validPayload, `"mode": null`, `"mode": "x"`, 1),
			wantPaths: []string{"mode"},
		},
		{
			name:      "Number where string is expected",
			body:      strings.Replace(validPayload, `"term": "202309"`, `"term": 202309`, 1),
			wantPaths: []string{"term"},
		},
		{
			name:      "Fraction where integer is expected",
			body:      strings.Replace(validPayload, `"count": 3`, `"count": 1.5`, 1),
			wantPaths: []string{"count"},
		},
		{
			name:      "Currency without dollar sign",
			body:      strings.Replace(validPayload, `"&#36;1,500"`, `"1,500"`, 1),
			wantPaths: []string{"amount"},
		},
		{
			name:      "Yes/No with another value",
			body:      strings.Replace(validPayload, `"docs": "Yes"`, `"docs": "Maybe"`, 1),
			wantPaths: []string{"docs"},
		},
		{
			name: "Every violation is reported",
			body: `{
				"success": true,
				"count": -1,
				"term": "199901",
				"mode": null,
				"amount": "",
				"docs": "No",
				"title": "   ",
				"instructors": [{"bannerId": "A1", "emailAddress": ""}],
				"unexpected": true
			}`,
			wantPaths: []string{
				"count",
				"term",
				"title",
				"instructors[0].bannerId",
				"instructors[0].emailAddress",
				"unexpected",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[testPayload]([]byte(tt.body))
			paths := violationPaths(t, err)
			for _, want := range tt.wantPaths {
				if !slices.Contains(paths, want) {
					t.Errorf("violation for %q not reported, got %v", want, paths)
				}
			}
		})
	}
}

func TestDecode_TopLevelArray(t *testing.T) {
	got, err := Decode[[]testInstructor]([]byte(`[{"bannerId": "1", "emailAddress": "a@b.c"}]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 || got[0].BannerID != "1" {
		t.Errorf("Decode() = %+v", got)
	}

	_, err = Decode[[]testInstructor]([]byte(`[{"bannerId": "x", "emailAddress": null}]`))
	paths := violationPaths(t, err)
	if !slices.ContainsFunc(paths, func(p string) bool { return strings.HasSuffix(p, "bannerId") }) {
		t.Errorf("bannerId violation not reported, got %v", paths)
	}
}

func TestDecode_NotJSON(t *testing.T) {
	_, err := Decode[testPayload]([]byte("<html>Service Unavailable</html>"))
	if !failure.Is(err, ErrNotJSON) {
		t.Fatalf("expected %v, got %v", ErrNotJSON, err)
	}
	if failure.Is(err, ErrViolation) {
		t.Errorf("a parse error must not be reported as a violation")
	}
}

func TestDecode_WrongTopLevelType(t *testing.T) {
	_, err := Decode[testPayload]([]byte(`"maintenance"`))
	if !failure.Is(err, ErrViolation) {
		t.Fatalf("expected %v, got %v", ErrViolation, err)
	}
	var violations Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected Violations, got %T", err)
	}
	if !slices.ContainsFunc(violations, func(v Violation) bool { return strings.Contains(v.Message, "expected a map") }) {
		t.Errorf("type mismatch not reported, got %v", violations)
	}
}

func TestViolations_LogValue(t *testing.T) {
	vs := Violations{{Path: "code", Message: "too short"}, {Message: "empty"}}
	if diff := cmp.Diff([]string{"code: too short", "empty"}, vs.LogValue().Any()); diff != "" {
		t.Errorf("LogValue() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	ok := testPayload{Success: true, Term: "202301", Title: "x"}
	if err := Check(ok); err != nil {
		t.Errorf("Check() error = %v", err)
	}

	bad := testPayload{Success: true, Term: "2023", Title: "x", Count: -2}
	paths := violationPaths(t, Check(&bad))
	if diff := cmp.Diff([]string{"count", "term"}, paths); diff != "" {
		t.Errorf("Check() paths mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		ns   string
		want string
	}{
		{ns: "testPayload.count", want: "count"},
		{ns: "testPayload.instructors[0].displayName", want: "instructors[0].displayName"},
		{ns: "[3].code", want: "[3].code"},
		{ns: "Course.Section.courseTitle", want: "courseTitle"},
		{ns: "Timetable.courses[2].Section.faculty[0].term", want: "courses[2].faculty[0].term"},
		{ns: "count", want: "count"},
	}
	for _, tt := range tests {
		if got := fieldPath(tt.ns); got != tt.want {
			t.Errorf("fieldPath(%q) = %q, want %q", tt.ns, got, tt.want)
		}
	}
}

func TestDecode_UntypedKeepsNulls(t *testing.T) {
	type untyped struct {
		Extra []any `json:"extra"`
	}
	got, err := Decode[untyped]([]byte(`{"extra": [{"a": null, "b": [null, 1]}, null]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []any{map[string]any{"a": nil, "b": []any{nil, json.Number("1")}}, nil}
	if diff := cmp.Diff(want, got.Extra); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}
