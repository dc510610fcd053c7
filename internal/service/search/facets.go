package search

import (
	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
)

// CountFacets reports, for every budget bucket, room type and amenity, how many
// listings would match if that facet's own constraint were lifted while all
// other filters stay as requested.
//
// Room types partition the matches. Budget buckets are closed ranges like the
// search predicate, so a price on a shared bound (600, 800, 1000) counts in
// both neighbours and the bucket counts are not disjoint: their sum can exceed
// the number of matches. Each bucket count equals the total a search with that
// budget would return. Amenity counts are per tag and one listing can add to
// several of them.
func CountFacets(listings []entity.Listing, filter dto.RoomFilter) dto.FacetCounts {
	filter = Normalize(filter)
	m := newMatcher(filter)

	counts := dto.FacetCounts{
		BudgetRanges: make(map[string]int, len(dto.BudgetBuckets)),
		RoomTypes:    make(map[string]int, len(entity.RoomTypes)),
		Amenities:    make(map[string]int, len(entity.Amenities)),
	}
	for _, bucket := range dto.BudgetBuckets {
		counts.BudgetRanges[bucket.Label()] = 0
	}
	for _, roomType := range entity.RoomTypes {
		counts.RoomTypes[string(roomType)] = 0
	}
	for _, tag := range entity.Amenities {
		counts.Amenities[tag] = 0
	}

	// One pass: each predicate is evaluated once per listing and the
	// "all but X" set for every group is derived from those results.
	for _, l := range listings {
		if !m.matchCity(l) || !m.matchMoveIn(l) {
			continue
		}
		budget := m.matchBudget(l)
		roomType := m.matchRoomType(l)
		amenities := m.matchAmenities(l)

		if roomType && amenities {
			for _, bucket := range dto.BudgetBuckets {
				if bucket.Contains(l.Price) {
					counts.BudgetRanges[bucket.Label()]++
				}
			}
		}
		if budget && amenities {
			if _, known := counts.RoomTypes[string(l.RoomType)]; known {
				counts.RoomTypes[string(l.RoomType)]++
			}
		}
		if budget && roomType {
			for _, tag := range l.Amenities {
				if _, known := counts.Amenities[tag]; known {
					counts.Amenities[tag]++
				}
			}
		}
	}

	return counts
}
