package paginate

import (
	"maps"
	"slices"
)

// State is the top-level value a reducer consumes and produces: either a
// *Page (single bucket) or Pages (keyed). A nil State is uninitialized.
type State[ID comparable] interface {
	paginationState()
}

// Page is the fetch progress of one logical list.
type Page[ID comparable] struct {
	// IsFetching is true between a request and its success or failure.
	IsFetching bool `json:"is_fetching"`

	// NextPageURL is the cursor set by the last success. Empty when absent.
	NextPageURL string `json:"next_page_url,omitempty"`

	// PageCount is the number of successful page fetches absorbed.
	PageCount int `json:"page_count"`

	// IDs holds the accumulated identifiers in first-seen order.
	IDs []ID `json:"ids"`

	// Extra holds caller extension fields. Transitions carry it over as is.
	Extra map[string]any `json:"extra,omitempty"`
}

// Zero returns the default bucket.
func Zero[ID comparable]() Page[ID] {
	return Page[ID]{IDs: []ID{}}
}

func (*Page[ID]) paginationState() {}

// HasNextPage reports whether a cursor for a further fetch is known.
func (p *Page[ID]) HasNextPage() bool {
	return p != nil && p.NextPageURL != ""
}

// normalized returns a copy of p, or the default bucket when p is
// uninitialized.
func (p *Page[ID]) normalized() Page[ID] {
	if p == nil {
		return Zero[ID]()
	}
	next := *p
	if next.IDs == nil {
		next.IDs = []ID{}
	}
	return next
}

// Pages maps a bucket key to its Page. Reducers treat it as copy-on-write.
type Pages[ID comparable] map[string]*Page[ID]

func (Pages[ID]) paginationState() {}

// Lookup returns the bucket for key, or the default bucket when the key has
// not been seen. It never returns nil.
func (p Pages[ID]) Lookup(key string) *Page[ID] {
	if page, ok := p[key]; ok && page != nil {
		return page
	}
	zero := Zero[ID]()
	return &zero
}

// Keys returns the bucket keys in sorted order.
func (p Pages[ID]) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}
