package client

import "strings"

// PageSizeOptions is the fixed set of selectable page sizes.
var PageSizeOptions = []int{5, 10, 25}

// ListView applies search filtering and pagination over a snapshot of the
// full citizen list. Both are derived on read; the snapshot itself is never
// mutated. Refresh the snapshot with SetRecords after every mutation.
type ListView struct {
	records  []Citizen
	query    string
	page     int
	pageSize int
}

// NewListView creates a view with the smallest page size selected.
func NewListView() *ListView {
	return &ListView{pageSize: PageSizeOptions[0]}
}

// SetRecords replaces the snapshot.
func (v *ListView) SetRecords(records []Citizen) {
	v.records = records
}

// SetQuery sets the live search query.
func (v *ListView) SetQuery(query string) {
	v.query = query
}

// Page returns the current zero-based page index.
func (v *ListView) Page() int {
	return v.page
}

// SetPage moves to the given zero-based page index.
func (v *ListView) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	v.page = page
}

// PageSize returns the current page size.
func (v *ListView) PageSize() int {
	return v.pageSize
}

// SetPageSize selects a page size and resets to the first page, matching the
// original table behavior. Sizes outside the fixed option set are ignored.
func (v *ListView) SetPageSize(size int) {
	for _, opt := range PageSizeOptions {
		if size == opt {
			v.pageSize = size
			v.page = 0
			return
		}
	}
}

// matches reports whether the record contains the lowercased query in its
// first name, last name, or address.
func matches(c Citizen, query string) bool {
	return strings.Contains(strings.ToLower(c.FirstName), query) ||
		strings.Contains(strings.ToLower(c.LastName), query) ||
		strings.Contains(strings.ToLower(c.Address), query)
}

// Filtered returns the records matching the current query. An empty query
// matches everything.
func (v *ListView) Filtered() []Citizen {
	query := strings.ToLower(v.query)
	if query == "" {
		return v.records
	}

	var filtered []Citizen
	for _, c := range v.records {
		if matches(c, query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// TotalFiltered returns the number of records matching the current query.
func (v *ListView) TotalFiltered() int {
	return len(v.Filtered())
}

// Visible returns the window [page*size, page*size+size) over the filtered
// records, clamped to the filtered length.
func (v *ListView) Visible() []Citizen {
	filtered := v.Filtered()

	start := v.page * v.pageSize
	if start >= len(filtered) {
		return nil
	}

	end := start + v.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
