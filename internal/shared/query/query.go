package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Default and ceiling page sizes. A zero, negative or absent limit always
// clamps to DefaultLimit so the page-count division cannot blow up.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter is a single equality predicate translated from a query parameter.
// Column is the database column name resolved through the whitelist.
type Filter struct {
	Column string
	Value  string
}

// Sort is a whitelisted sort order.
type Sort struct {
	Column string
	Desc   bool
}

// ListQuery is the bounded translation of a free-form listing query string:
// equality filters, one sort order and limit/skip pagination.
type ListQuery struct {
	Filters []Filter
	Sort    Sort
	Limit   int
	Skip    int
}

// Options declares which parameters a listing endpoint accepts.
// Both maps go from API parameter name to database column. Anything not in
// the whitelist is ignored rather than rejected, matching the forgiving
// behavior of free-form query translation.
type Options struct {
	Filterable  map[string]string
	Sortable    map[string]string
	DefaultSort Sort
}

// Reserved parameter names that never become filters.
var reserved = map[string]bool{
	"limit": true,
	"skip":  true,
	"sort":  true,
}

// Parse translates raw query values into a ListQuery.
func Parse(values url.Values, opts Options) ListQuery {
	q := ListQuery{
		Limit: DefaultLimit,
		Sort:  opts.DefaultSort,
	}

	// 1. LIMIT / SKIP
	// Zero and negative values clamp instead of propagating into the
	// totalPages division.
	if raw := values.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if raw := values.Get("skip"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Skip = n
		}
	}

	// 2. SORT
	// "sort=-createdAt" means descending, "sort=title" ascending.
	if raw := values.Get("sort"); raw != "" {
		field := raw
		desc := false
		if strings.HasPrefix(raw, "-") {
			field = raw[1:]
			desc = true
		}
		if column, ok := opts.Sortable[field]; ok {
			q.Sort = Sort{Column: column, Desc: desc}
		}
	}

	// 3. FILTERS
	// Every remaining whitelisted parameter becomes an equality predicate.
	for param, column := range opts.Filterable {
		if reserved[param] {
			continue
		}
		if v := values.Get(param); v != "" {
			q.Filters = append(q.Filters, Filter{Column: column, Value: v})
		}
	}

	return q
}

// TotalPages computes ceil(total/limit). Limit is re-clamped so a caller
// constructing a ListQuery by hand cannot divide by zero either.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Links builds first/prev/next/last navigation links for the current page.
// Non-pagination parameters of the original query are preserved.
func Links(basePath string, values url.Values, limit, skip, total int) map[string]string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	totalPages := TotalPages(total, limit)
	lastSkip := 0
	if totalPages > 0 {
		lastSkip = (totalPages - 1) * limit
	}

	links := map[string]string{
		"first": pageLink(basePath, values, limit, 0),
		"last":  pageLink(basePath, values, limit, lastSkip),
	}

	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		links["prev"] = pageLink(basePath, values, limit, prev)
	}

	if skip+limit < total {
		links["next"] = pageLink(basePath, values, limit, skip+limit)
	}

	return links
}

func pageLink(basePath string, values url.Values, limit, skip int) string {
	params := url.Values{}
	for k, vs := range values {
		if k == "limit" || k == "skip" {
			continue
		}
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))

	return fmt.Sprintf("%s?%s", basePath, params.Encode())
}
