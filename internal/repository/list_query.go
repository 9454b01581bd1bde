package repository

import "gorm.io/gorm"

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// apply adds ordering and pagination. Only columns in sortable may be sorted
// on; anything else falls back to fallbackOrder.
func (q *ListQuery) apply(db *gorm.DB, sortable map[string]bool, fallbackOrder string) *gorm.DB {
	if q.SortBy != "" && sortable[q.SortBy] {
		order := q.SortBy
		if q.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order(fallbackOrder)
	}

	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
	}
	return db
}
