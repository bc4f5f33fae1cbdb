package listkit

import (
	"net/url"
	"strconv"
)

// Pagination defaults shared by the admin list views.
const (
	DefaultPageSize      = 10
	SortDirectionAsc     = "ASC"
	SortDirectionDesc    = "DESC"
	defaultSortDirection = SortDirectionAsc
)

// PageOptions is a sparse description of a paged, sorted, searched list
// request. PageNumber is 0-based internally; the URL form is 1-based.
type PageOptions struct {
	Query         string
	PageNumber    int
	PageSize      int
	Sort          string
	SortDirection string
}

// DefaultPageOptions returns the defaults the admin UI starts from.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		PageSize:      DefaultPageSize,
		SortDirection: defaultSortDirection,
	}
}

// SortDirectionFor maps a reversed flag to the wire value.
func SortDirectionFor(reversed bool) string {
	if reversed {
		return SortDirectionDesc
	}
	return SortDirectionAsc
}

// Encode builds the canonical query string, emitting only present fields in a
// fixed key order. Page number and size always get values so the backend
// never guesses paging state.
func (o PageOptions) Encode() string {
	size := o.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := o.PageNumber
	if page < 0 {
		page = 0
	}

	params := make([]string, 0, 5)
	if o.Query != "" {
		params = append(params, "query="+url.QueryEscape(o.Query))
	}
	params = append(params,
		"pageNumber="+strconv.Itoa(page+1),
		"pageSize="+strconv.Itoa(size),
	)
	if o.Sort != "" {
		params = append(params, "sort="+url.QueryEscape(o.Sort))
	}
	if o.SortDirection != "" {
		params = append(params, "sortDirection="+url.QueryEscape(o.SortDirection))
	}

	query := ""
	for _, p := range params {
		query += p + "&"
	}
	return query
}
