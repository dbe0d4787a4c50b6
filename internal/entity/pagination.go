package entity

// Pagination is the per-collection page state. Every cached collection
// owns an independent tuple; they are never shared or derived from each
// other.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages,omitempty"`
}

// PaginationFrom reads pagination metadata out of a list payload, keeping
// the requested page and limit when the backend omits them.
func PaginationFrom(payload any, page, limit int) Pagination {
	pg := Pagination{Page: page, Limit: limit}
	m, ok := payload.(map[string]any)
	if !ok {
		return pg
	}
	meta, found := m["pagination"].(map[string]any)
	if !found {
		if data, ok := m["data"].(map[string]any); ok {
			meta, found = data["pagination"].(map[string]any)
		}
	}
	if !found {
		if total, ok := Number(m["total"]); ok {
			pg.Total = int(total)
		}
		return pg
	}
	if v, ok := Number(meta["page"]); ok {
		pg.Page = int(v)
	}
	if v, ok := Number(meta["limit"]); ok {
		pg.Limit = int(v)
	}
	if v, ok := Number(meta["total"]); ok {
		pg.Total = int(v)
	}
	if v, ok := Number(meta["totalPages"]); ok {
		pg.TotalPages = int(v)
	}
	return pg
}
