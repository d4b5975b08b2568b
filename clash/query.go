package clash

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// WireValuer is implemented by values that have a distinct API representation,
// such as enums whose wire strings differ from their Go names.
type WireValuer interface {
	WireValue() string
}

// QueryStringFormatter renders query parameter values in their URL-encoded form.
// The zero value is ready to use.
type QueryStringFormatter struct{}

// Format encodes value for use as the query parameter name. A nil value is an error.
func (f QueryStringFormatter) Format(name string, value any) (string, string, error) {
	return f.FormatValue(name, value, false)
}

// FormatValue encodes value for use as the query parameter name. When allowEmpty is
// set a nil value renders as an empty string instead of failing.
func (f QueryStringFormatter) FormatValue(name string, value any, allowEmpty bool) (string, string, error) {
	if strings.TrimSpace(name) == "" {
		return "", "", NewError(ErrorTypeValidation, "query parameter name is required")
	}
	if isNil(value) {
		if !allowEmpty {
			return "", "", NewError(ErrorTypeValidation, fmt.Sprintf("query parameter %q has no value", name)).
				WithContext("parameter", name)
		}
		return name, "", nil
	}
	return name, url.QueryEscape(textOf(value)), nil
}

func textOf(value any) string {
	switch v := value.(type) {
	case WireValuer:
		return v.WireValue()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
