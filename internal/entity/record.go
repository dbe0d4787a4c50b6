package entity

import "strconv"

// Record is a backend entity kept in its raw wire shape. The backend
// names fields inconsistently between endpoints, so cached entities stay
// duck-typed and go through the normalizers before use.
type Record map[string]any

func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the canonical identifier as a string, or "" when the record
// has none. A record without an id cannot be targeted for mutation.
func (r Record) ID() string {
	if r == nil {
		return ""
	}
	return AsString(r["id"])
}

// First returns the first truthy value among the named fields.
func First(r Record, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := r[key]; ok && truthy(value) {
			return value, true
		}
	}
	return nil, false
}

// Number coerces JSON scalars to a float64 where possible. Numeric
// strings count: the backend is not consistent about quoting.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// AsString renders a scalar for comparisons and display. Numeric ids come
// back as JSON numbers from some endpoints.
func AsString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case bool:
		return v
	}
	return true
}
