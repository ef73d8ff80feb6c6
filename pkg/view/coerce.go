package view

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Stringify renders a data value for display: strings as-is, booleans as
// "true"/"false", numbers in their shortest form, arrays as comma-joined
// elements (nil elements empty) and mappings as "[object Object]".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return formatFloat(f)
		}
		return v.String()
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, map[string]string:
		return "[object Object]"
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return jsExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// jsExponent drops the zero padding Go adds to exponents: "1e-07" is "1e-7".
func jsExponent(text string) string {
	mantissa, exp, ok := strings.Cut(text, "e")
	if !ok || len(exp) < 2 {
		return text
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// Truthy reports the boolean reading of a data value used by boolean-typed
// checkboxes: false, zero, NaN, the empty string and nil are false; every
// other value, including empty arrays and mappings, is true.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	}
	return true
}
