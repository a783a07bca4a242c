package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	year    = `[2-9]\d{3}`
	month   = `(?:0[1-9]|1[0-2])`
	month00 = `(?:0[0-9]|1[0-2])`
	day     = `(?:[0-2][1-9]|[1-3]0|31)`
	hour24  = `(?:[0-1][0-9]|2[0-3])`
	minute  = `[0-5][0-9]`
)

var (
	yyyymmPattern      = regexp.MustCompile(`^` + year + month + `$`)
	yyyymm00Pattern    = regexp.MustCompile(`^` + year + month00 + `$`)
	mmddyyyyPattern    = regexp.MustCompile(`^` + month + `/` + day + `/` + year + `$`)
	hhmm24Pattern      = regexp.MustCompile(`^` + hour24 + minute + `$`)
	digitsPattern      = regexp.MustCompile(`^\d+$`)
	floatDigitsPattern = regexp.MustCompile(`^(?:[^0]\d*|0)\.\d+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	patterns := map[string]*regexp.Regexp{
		"yyyymm":   yyyymmPattern,
		"yyyymm00": yyyymm00Pattern,
		"mmddyyyy": mmddyyyyPattern,
		"hhmm24":   hhmm24Pattern,
		"digits":   digitsPattern,
	}
	for tag, re := range patterns {
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			f := fl.Field()
			return f.Kind() == reflect.String && re.MatchString(f.String())
		})
	}
	v.RegisterValidation("floatdigits", isFloatDigits)

	return v
}

// RegisterType makes fields of the given types validate as the value fn
// returns for them.
func RegisterType(fn func(reflect.Value) any, types ...any) {
	validate.RegisterCustomTypeFunc(fn, types...)
}

// isFloatDigits accepts numbers that print as a decimal without a redundant
// leading zero. Integers count as "n.0".
func isFloatDigits(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(f.Float(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return floatDigitsPattern.MatchString(s)
	case reflect.String:
		return floatDigitsPattern.MatchString(f.String())
	default:
		return false
	}
}

func fieldViolations(err error) Violations {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Violations{{Message: err.Error()}}
	}

	out := make(Violations, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the root type name validator puts in front of a namespace,
// along with the Go names of embedded structs, leaving the JSON path.
func fieldPath(ns string) string {
	if !strings.HasPrefix(ns, "[") {
		_, rest, ok := strings.Cut(ns, ".")
		if !ok {
			return ns
		}
		ns = rest
	}
	segments := strings.Split(ns, ".")
	kept := segments[:0]
	for _, s := range segments {
		if s != "" && unicode.IsUpper(rune(s[0])) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, ".")
}

func message(fe validator.FieldError) string {
	param := fe.Param()
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s items", param)
		default:
			return fmt.Sprintf("must be greater than or equal to %s", param)
		}
	case "max":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s items", param)
		default:
			return fmt.Sprintf("must be less than or equal to %s", param)
		}
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "len":
		if kind == reflect.Slice || kind == reflect.Array {
			return fmt.Sprintf("must contain exactly %s items", param)
		}
		return fmt.Sprintf("must have length %s", param)
	case "eq":
		return fmt.Sprintf("must equal %s, got %v", param, fe.Value())
	case "startswith":
		return fmt.Sprintf("must start with %q, got %q", param, fmt.Sprint(fe.Value()))
	case "yyyymm", "yyyymm00":
		return fmt.Sprintf("must be a YYYYMM term code, got %q", fmt.Sprint(fe.Value()))
	case "mmddyyyy":
		return fmt.Sprintf("must be a MM/DD/YYYY date, got %q", fmt.Sprint(fe.Value()))
	case "hhmm24":
		return fmt.Sprintf("must be a 24-hour HHMM time, got %q", fmt.Sprint(fe.Value()))
	case "digits":
		return fmt.Sprintf("must contain only digits, got %q", fmt.Sprint(fe.Value()))
	case "floatdigits":
		return fmt.Sprintf("must be a decimal number, got %v", fe.Value())
	default:
		if param != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), param)
		}
		return "failed " + fe.Tag()
	}
}
