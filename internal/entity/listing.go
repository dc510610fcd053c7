package entity

// RoomType classifies how a room is let.
type RoomType string

const (
	RoomTypePrivate RoomType = "private"
	RoomTypeShared  RoomType = "shared"
	RoomTypeStudio  RoomType = "studio"
)

// RoomTypes lists the recognised room types in display order.
var RoomTypes = []RoomType{RoomTypePrivate, RoomTypeShared, RoomTypeStudio}

// Amenities lists the recognised amenity tags in display order.
var Amenities = []string{"wifi", "washing_machine", "dishwasher", "balcony"}

// Valid reports whether t is one of the recognised room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypePrivate, RoomTypeShared, RoomTypeStudio:
		return true
	}
	return false
}

// Listing is a room offered for rent. Listings are loaded once and never mutated.
type Listing struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	City         string   `json:"city" yaml:"city"`
	Neighborhood string   `json:"neighborhood" yaml:"neighborhood"`
	Price        int      `json:"price" yaml:"price"`
	RoomType     RoomType `json:"roomType" yaml:"roomType"`
	Amenities    []string `json:"amenities" yaml:"amenities"`
	// MoveInDate is an ISO date (YYYY-MM-DD); empty when unknown.
	MoveInDate  string `json:"moveInDate" yaml:"moveInDate"`
	Description string `json:"description" yaml:"description"`
}

// HasAmenity reports whether the listing offers the given tag.
func (l Listing) HasAmenity(tag string) bool {
	for _, a := range l.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}
