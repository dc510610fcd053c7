package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roomus/rooms-api/internal/entity"
)

// ListingsRepository exposes the read-only room collection.
type ListingsRepository interface {
	List(ctx context.Context) ([]entity.Listing, error)
	FindByID(ctx context.Context, id string) (*entity.Listing, error)
}

// ErrListingNotFound indicates there is no listing with the given id.
var ErrListingNotFound = errors.New("listing not found")

// ListingValidationError reports a listing that breaks the data model rules.
type ListingValidationError struct {
	ID      string
	Message string
}

// Error implements the error interface.
func (e ListingValidationError) Error() string {
	if e.ID == "" {
		return e.Message
	}
	return fmt.Sprintf("listing %q: %s", e.ID, e.Message)
}

// MemoryListingsRepository serves a fixed collection loaded at startup.
// It never changes after construction and is safe for concurrent readers.
type MemoryListingsRepository struct {
	listings []entity.Listing
	byID     map[string]int
}

// NewMemoryListingsRepository validates listings and indexes them by id.
func NewMemoryListingsRepository(listings []entity.Listing) (*MemoryListingsRepository, error) {
	repo := &MemoryListingsRepository{
		listings: make([]entity.Listing, 0, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}

	for i, l := range listings {
		l.Amenities = normalizeAmenities(l.Amenities)
		if err := validateListing(l); err != nil {
			return nil, err
		}
		if _, dup := repo.byID[l.ID]; dup {
			return nil, ListingValidationError{ID: l.ID, Message: "duplicate id"}
		}
		repo.byID[l.ID] = i
		repo.listings = append(repo.listings, l)
	}

	return repo, nil
}

var _ ListingsRepository = (*MemoryListingsRepository)(nil)

// List returns the collection in source order. Callers must not modify it.
func (r *MemoryListingsRepository) List(_ context.Context) ([]entity.Listing, error) {
	return r.listings, nil
}

// FindByID looks a listing up by its id.
func (r *MemoryListingsRepository) FindByID(_ context.Context, id string) (*entity.Listing, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	listing := r.listings[idx]
	return &listing, nil
}

// Len reports the collection size.
func (r *MemoryListingsRepository) Len() int {
	return len(r.listings)
}

func validateListing(l entity.Listing) error {
	if l.ID == "" {
		return ListingValidationError{Message: "listing id must not be empty"}
	}
	if l.Price <= 0 {
		return ListingValidationError{ID: l.ID, Message: "price must be positive"}
	}
	if !l.RoomType.Valid() {
		return ListingValidationError{ID: l.ID, Message: fmt.Sprintf("unknown room type %q", l.RoomType)}
	}
	if l.MoveInDate != "" {
		if _, err := time.Parse(time.DateOnly, l.MoveInDate); err != nil {
			return ListingValidationError{ID: l.ID, Message: fmt.Sprintf("move-in date %q is not YYYY-MM-DD", l.MoveInDate)}
		}
	}
	seen := make(map[string]struct{}, len(l.Amenities))
	for _, tag := range l.Amenities {
		if tag == "" {
			return ListingValidationError{ID: l.ID, Message: "amenity must not be empty"}
		}
		if _, dup := seen[tag]; dup {
			return ListingValidationError{ID: l.ID, Message: fmt.Sprintf("duplicate amenity %q", tag)}
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// normalizeAmenities copies tags trimmed and lower-cased, the form filters use.
func normalizeAmenities(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	return out
}
