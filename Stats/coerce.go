package Stats

import (
	"regexp"
	"strconv"
	"strings"
)

// Schedule documents come from loosely typed sources, so completion flags and
// amounts can arrive as bools, numbers, numeric strings, or nothing at all.
// Both coercions are total: anything unparsable becomes the zero value.

var leadingNumber = regexp.MustCompile(`^[+-]?[0-9]*\.?[0-9]+`)

// ToBool coerces a completion flag. Missing or unrecognized values are false.
func ToBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "y":
			return true
		}
		return false
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return false
	}
}

// ToNumber coerces an amount. Strings parse their leading numeric prefix, the
// same way parseFloat would, so "10.5 RM" yields 10.5. Anything else is 0.
func ToNumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
		if m := leadingNumber.FindString(s); m != "" {
			if n, err := strconv.ParseFloat(m, 64); err == nil {
				return n
			}
		}
		return 0
	default:
		return 0
	}
}
