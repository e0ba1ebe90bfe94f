// Package mapsafe reads typed values out of decoded map[string]any documents.
package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if val, ok := m[key]; ok {
		switch any(defaultValue).(type) {
		case int:
			switch x := val.(type) {
			case int:
				return any(x).(T)
			case int64:
				return any(int(x)).(T)
			case float64:
				return any(int(x)).(T)
			}
		case float64:
			switch x := val.(type) {
			case float64:
				return any(x).(T)
			case int:
				return any(float64(x)).(T)
			case int64:
				return any(float64(x)).(T)
			}
		case string:
			if s, ok := val.(string); ok {
				return any(s).(T)
			}
		case bool:
			if b, ok := val.(bool); ok {
				return any(b).(T)
			}
		default:
			// fallback: if type matches exactly
			if v2, ok := val.(T); ok {
				return v2
			}
		}
	}
	return defaultValue
}

// Floats converts a decoded list into []float64.
// It returns false if v is not a list or any element is not numeric.
func Floats(v any) ([]float64, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}

	out := make([]float64, len(list))
	for i, item := range list {
		switch x := item.(type) {
		case float64:
			out[i] = x
		case int:
			out[i] = float64(x)
		case int64:
			out[i] = float64(x)
		default:
			return nil, false
		}
	}

	return out, true
}

// Ints converts a decoded list of whole numbers into []int.
func Ints(v any) ([]int, bool) {
	floats, ok := Floats(v)
	if !ok {
		return nil, false
	}

	out := make([]int, len(floats))
	for i, f := range floats {
		if f != float64(int(f)) {
			return nil, false
		}
		out[i] = int(f)
	}

	return out, true
}
