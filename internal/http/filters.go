package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/volunteerhub/webclient/internal/domain/activity"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// getPageParams extracts page/page_size from the query string, clamping to
// sane bounds.
func getPageParams(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			pageSize = n
		}
	}
	return page, pageSize
}

// parseActivityFilters builds upstream filter params from the query string.
// Unknown category/status values are dropped rather than forwarded.
func parseActivityFilters(r *http.Request) activity.FilterParams {
	q := r.URL.Query()
	page, pageSize := getPageParams(r)

	f := activity.FilterParams{
		Page:      page,
		Limit:     pageSize,
		Search:    strings.TrimSpace(q.Get("search")),
		StartDate: strings.TrimSpace(q.Get("start_date")),
		EndDate:   strings.TrimSpace(q.Get("end_date")),
	}
	if c := activity.Category(strings.ToUpper(strings.TrimSpace(q.Get("category")))); c.Valid() {
		f.Category = c
	}
	if s := activity.Status(strings.ToUpper(strings.TrimSpace(q.Get("status")))); s.Valid() {
		f.Status = s
	}
	if v := q.Get("faculty_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.FacultyID = n
		}
	}
	if v := q.Get("major_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.MajorID = n
		}
	}
	return f
}

// pathID extracts a positive int64 path value, returning false when absent or
// malformed.
func pathID(r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
