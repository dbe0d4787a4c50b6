package entity

// List payload keys tried in priority order after a bare array.
var listKeys = []string{"employees", "items", "results"}

// UnwrapList extracts the entity slice from whichever envelope shape the
// backend chose for this endpoint: a bare array, {employees}, {items},
// {results}, or any of those nested under "data".
func UnwrapList(payload any) ([]Record, bool) {
	switch p := payload.(type) {
	case []any:
		return toRecords(p), true
	case map[string]any:
		for _, key := range listKeys {
			if arr, ok := p[key].([]any); ok {
				return toRecords(arr), true
			}
		}
		if data, ok := p["data"]; ok {
			return UnwrapList(data)
		}
	}
	return nil, false
}

// UnwrapRecord extracts a single entity, trying the named keys first,
// then a "data" wrapper, and finally treating the payload itself as the
// record.
func UnwrapRecord(payload any, keys ...string) (Record, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range keys {
		if nested, ok := m[key].(map[string]any); ok {
			return Record(nested), true
		}
	}
	if data, ok := m["data"]; ok {
		if nested, found := UnwrapRecord(data, keys...); found {
			return nested, true
		}
	}
	return Record(m), true
}

func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
