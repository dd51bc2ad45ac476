package dto

import (
	"strconv"
	"strings"
)

// Defaults for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// Filter operators accepted as field[op]=value.
var filterOps = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
	"eq":  "=",
}

// SortField is one entry of the sort query parameter.
type SortField struct {
	Field string
	Desc  bool
}

// Filter is a comparison on one field.
type Filter struct {
	Field string
	Op    string // SQL operator
	Value string
}

// ListQuery carries pagination, sorting, projection, keyword search and
// filters for list endpoints. Field names are API (JSON) names; repositories
// map them to columns and drop unknown ones.
type ListQuery struct {
	Page    int
	Limit   int
	Sort    []SortField
	Fields  []string
	Keyword string
	Filters []Filter
}

// Offset is the number of records skipped for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

var reserved = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

// ParseListQuery builds a ListQuery from raw query parameters such as
// page=2&limit=10&sort=-price,title&fields=title,price&keyword=phone&price[gte]=10.
func ParseListQuery(params map[string]string) ListQuery {
	q := ListQuery{Page: DefaultPage, Limit: DefaultLimit}

	if n, err := strconv.Atoi(params["page"]); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(params["limit"]); err == nil && n > 0 {
		q.Limit = min(n, MaxLimit)
	}
	for _, f := range splitList(params["sort"]) {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			q.Sort = append(q.Sort, SortField{Field: name, Desc: true})
			continue
		}
		q.Sort = append(q.Sort, SortField{Field: f})
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortField{{Field: "createdAt", Desc: true}}
	}
	q.Fields = splitList(params["fields"])
	q.Keyword = strings.TrimSpace(params["keyword"])

	for key, value := range params {
		if reserved[key] || value == "" {
			continue
		}
		field, op := key, "eq"
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			field, op = key[:i], key[i+1:len(key)-1]
		}
		sqlOp, ok := filterOps[op]
		if !ok {
			continue
		}
		q.Filters = append(q.Filters, Filter{Field: field, Op: sqlOp, Value: value})
	}
	return q
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Pagination is the paginationResult block of list responses.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	Next          *int `json:"next,omitempty"`
	Prev          *int `json:"prev,omitempty"`
}

// NewPagination computes the pagination block for total matching records.
func NewPagination(q ListQuery, total int64) Pagination {
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	p := Pagination{CurrentPage: q.Page, Limit: q.Limit, NumberOfPages: pages}
	if q.Page < pages {
		next := q.Page + 1
		p.Next = &next
	}
	if q.Page > 1 {
		prev := q.Page - 1
		p.Prev = &prev
	}
	return p
}

// Page is one page of records and its pagination block.
type Page[T any] struct {
	Results    int        `json:"results"`
	Pagination Pagination `json:"paginationResult"`
	Data       []T        `json:"data"`
}
