// Package search implements the room query engine: filter parsing,
// predicate evaluation, sorting, pagination and facet counting over an
// in-memory listing collection. Every function is pure; the collection is
// never reordered or modified.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
)

// Search returns the page of listings matching filter, sorted per filter.Sort.
// Total counts every match before pagination; a page past the end is empty.
func Search(listings []entity.Listing, filter dto.RoomFilter) dto.ResultPage {
	filter = Normalize(filter)
	m := newMatcher(filter)

	matched := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if m.matches(l) {
			matched = append(matched, l)
		}
	}
	sortListings(matched, filter.Sort)

	total := len(matched)
	return dto.ResultPage{
		Items:      paginate(matched, filter.Page, filter.PageSize),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: (total + filter.PageSize - 1) / filter.PageSize,
	}
}

// sortListings orders items in place. The sort is stable so equal keys keep
// their collection order.
func sortListings(items []entity.Listing, order dto.SortOrder) {
	switch order {
	case dto.SortPriceAsc:
		slices.SortStableFunc(items, func(a, b entity.Listing) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case dto.SortPriceDesc:
		slices.SortStableFunc(items, func(a, b entity.Listing) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		// Missing dates compare as "" and therefore land at the end.
		slices.SortStableFunc(items, func(a, b entity.Listing) int {
			return strings.Compare(b.MoveInDate, a.MoveInDate)
		})
	}
}

func paginate(items []entity.Listing, page, pageSize int) []entity.Listing {
	skip := page - 1
	if skip > len(items)/pageSize {
		return []entity.Listing{}
	}
	start := skip * pageSize
	if start >= len(items) {
		return []entity.Listing{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}
