package entity

// Candidate id fields in priority order. The backend never settled on a
// single name, so the first truthy candidate becomes the canonical "id".
var idCandidates = []string{"id", "_id", "employeeId", "userId", "uuid", "code"}

// NormalizeID gives the record a canonical "id" field without discarding
// the original fields. A record with no candidate is returned untouched:
// that is a valid degraded outcome, not an error, and downstream mutation
// operations refuse to act on such records.
func NormalizeID(r Record) Record {
	if r == nil {
		return nil
	}
	value, ok := First(r, idCandidates...)
	if !ok {
		return r
	}
	if existing, has := r["id"]; has && existing == value {
		return r
	}
	out := r.Clone()
	out["id"] = value
	return out
}

func NormalizeIDs(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = NormalizeID(r)
	}
	return out
}
