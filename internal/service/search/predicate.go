package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
)

// matcher evaluates the individual filter predicates for one request.
// It is not safe for concurrent use: the case folder keeps internal state.
type matcher struct {
	filter dto.RoomFilter
	fold   cases.Caser
	city   string
}

func newMatcher(filter dto.RoomFilter) *matcher {
	fold := cases.Fold()
	return &matcher{
		filter: filter,
		fold:   fold,
		city:   fold.String(filter.City),
	}
}

// matches reports whether l satisfies every predicate.
func (m *matcher) matches(l entity.Listing) bool {
	return m.matchCity(l) &&
		m.matchBudget(l) &&
		m.matchRoomType(l) &&
		m.matchMoveIn(l) &&
		m.matchAmenities(l)
}

// matchCity is a case-insensitive substring test against city OR neighborhood.
func (m *matcher) matchCity(l entity.Listing) bool {
	if m.city == "" {
		return true
	}
	return strings.Contains(m.fold.String(l.City), m.city) ||
		strings.Contains(m.fold.String(l.Neighborhood), m.city)
}

func (m *matcher) matchBudget(l entity.Listing) bool {
	if m.filter.Budget == nil {
		return true
	}
	return m.filter.Budget.Contains(l.Price)
}

func (m *matcher) matchRoomType(l entity.Listing) bool {
	return m.filter.RoomType == "" || m.filter.RoomType == l.RoomType
}

// matchMoveIn keeps listings available on or after the requested date.
// ISO dates order correctly as plain strings.
func (m *matcher) matchMoveIn(l entity.Listing) bool {
	return m.filter.MoveInDate == "" || l.MoveInDate >= m.filter.MoveInDate
}

// matchAmenities requires every requested tag to be present.
func (m *matcher) matchAmenities(l entity.Listing) bool {
	for _, tag := range m.filter.Amenities {
		if !l.HasAmenity(tag) {
			return false
		}
	}
	return true
}
