package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testOpts = Options{
	Filterable: map[string]string{
		"category": "category",
		"title":    "title",
		"author":   "author_id",
	},
	Sortable: map[string]string{
		"createdAt": "created_at",
		"title":     "title",
	},
	DefaultSort: Sort{Column: "created_at", Desc: true},
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	q := Parse(url.Values{}, testOpts)

	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Skip)
	assert.Empty(t, q.Filters)
	assert.Equal(t, Sort{Column: "created_at", Desc: true}, q.Sort)
}

func TestParse_ClampsZeroAndNegativeLimit(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0", "-5", "garbage"} {
		q := Parse(url.Values{"limit": {raw}}, testOpts)
		assert.Equal(t, DefaultLimit, q.Limit, "limit=%s must clamp to default", raw)
	}

	q := Parse(url.Values{"limit": {"500"}}, testOpts)
	assert.Equal(t, MaxLimit, q.Limit)

	q = Parse(url.Values{"skip": {"-3"}}, testOpts)
	assert.Equal(t, 0, q.Skip)
}

func TestParse_FiltersAndSort(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"category": {"tech"},
		"sort":     {"-createdAt"},
		"limit":    {"5"},
		"skip":     {"10"},
		"bogus":    {"ignored"},
	}

	q := Parse(values, testOpts)

	assert.Equal(t, []Filter{{Column: "category", Value: "tech"}}, q.Filters)
	assert.Equal(t, Sort{Column: "created_at", Desc: true}, q.Sort)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, 10, q.Skip)
}

func TestParse_UnknownSortFallsBackToDefault(t *testing.T) {
	t.Parallel()

	q := Parse(url.Values{"sort": {"password_hash"}}, testOpts)
	assert.Equal(t, testOpts.DefaultSort, q.Sort)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	// 25 filtered items at 10 per page → 3 pages.
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	// Zero limit must not divide by zero.
	assert.Equal(t, 3, TotalPages(25, 0))
}

func TestLinks(t *testing.T) {
	t.Parallel()

	values := url.Values{"category": {"tech"}, "limit": {"10"}, "skip": {"10"}}
	links := Links("/api/v1/blogs", values, 10, 10, 25)

	assert.Equal(t, "/api/v1/blogs?category=tech&limit=10&skip=0", links["first"])
	assert.Equal(t, "/api/v1/blogs?category=tech&limit=10&skip=0", links["prev"])
	assert.Equal(t, "/api/v1/blogs?category=tech&limit=10&skip=20", links["next"])
	assert.Equal(t, "/api/v1/blogs?category=tech&limit=10&skip=20", links["last"])
}

func TestLinks_FirstPageHasNoPrev(t *testing.T) {
	t.Parallel()

	links := Links("/api/v1/blogs", url.Values{}, 10, 0, 25)

	assert.NotContains(t, links, "prev")
	assert.Contains(t, links, "next")
}

func TestLinks_LastPageHasNoNext(t *testing.T) {
	t.Parallel()

	links := Links("/api/v1/blogs", url.Values{}, 10, 20, 25)

	assert.NotContains(t, links, "next")
	assert.Contains(t, links, "prev")
}
