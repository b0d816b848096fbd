package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	CurrentPage string
}

// PaginationData contains pagination information for list views.
type PaginationData struct {
	Page       int
	PageSize   int
	TotalCount int
	BasePath   string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a TemplateDataBuilder initialized with the common
// page data derived from the request's session snapshot.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	data := map[string]any{
		"Title":       meta.Title,
		"CurrentPage": meta.CurrentPage,
		// Always present so field-error lookups in templates never hit nil.
		"Errors": map[string]string{},
	}
	if snap, ok := SnapshotFromContext(r.Context()); ok && snap.User != nil {
		data["User"] = snap.User
		data["IsAuthenticated"] = true
		data["Role"] = string(snap.User.Role)
	}
	return &TemplateDataBuilder{data: data, r: r}
}

// WithPagination adds pagination data and builds PrevURL/NextURL. Next-page
// availability comes from the server-reported total.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	hasPrev := opts.Page > 1
	hasNext := opts.TotalCount > opts.Page*opts.PageSize

	b.data["Page"] = opts.Page
	b.data["PageSize"] = opts.PageSize
	b.data["HasPrev"] = hasPrev
	b.data["HasNext"] = hasNext
	if opts.TotalCount > 0 {
		b.data["TotalCount"] = opts.TotalCount
	}
	if hasPrev {
		b.data["PrevURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page-1, opts.PageSize)
	}
	if hasNext {
		b.data["NextURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page+1, opts.PageSize)
	}
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns a URL with page and page_size set, preserving other
// query params and filtering whitespace-only values.
func buildPageURL(basePath string, q url.Values, page, pageSize int) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if len(v) == 0 {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	qq.Set("page", strconv.Itoa(page))
	qq.Set("page_size", strconv.Itoa(pageSize))
	if enc := qq.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}
