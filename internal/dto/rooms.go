package dto

import (
	"fmt"

	"github.com/roomus/rooms-api/internal/entity"
)

// SortOrder selects how matching rooms are ordered.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// SortOrders lists the recognised sort values.
var SortOrders = []SortOrder{SortNewest, SortPriceAsc, SortPriceDesc}

// Pagination defaults applied by the filter parser.
const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// BudgetRange is a closed price interval.
type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether price lies inside the interval, bounds included.
func (b BudgetRange) Contains(price int) bool {
	return price >= b.Min && price <= b.Max
}

// Label renders the range the way the browser sends it, e.g. "€400-600".
func (b BudgetRange) Label() string {
	return fmt.Sprintf("€%d-%d", b.Min, b.Max)
}

// BudgetBuckets are the budget ranges offered as facets.
var BudgetBuckets = []BudgetRange{
	{Min: 400, Max: 600},
	{Min: 600, Max: 800},
	{Min: 800, Max: 1000},
	{Min: 1000, Max: 1200},
}

// RoomFilter is the normalized form of a room search request.
// Zero values mean "unconstrained" for every field except Sort, Page and PageSize.
type RoomFilter struct {
	City       string
	Budget     *BudgetRange
	RoomType   entity.RoomType
	Amenities  []string
	MoveInDate string
	Sort       SortOrder
	Page       int
	PageSize   int
}

// ResultPage is one page of the sorted match list.
type ResultPage struct {
	Items      []entity.Listing `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// FacetCounts holds per-value match counts for each facet group.
type FacetCounts struct {
	BudgetRanges map[string]int `json:"budgetRanges"`
	RoomTypes    map[string]int `json:"roomTypes"`
	Amenities    map[string]int `json:"amenities"`
}

// FilterOptions describes the values a client may offer in its filter controls.
type FilterOptions struct {
	BudgetRanges []string `json:"budgetRanges"`
	RoomTypes    []string `json:"roomTypes"`
	Amenities    []string `json:"amenities"`
	Sorts        []string `json:"sorts"`
}
