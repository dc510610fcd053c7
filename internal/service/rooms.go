package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
	"github.com/roomus/rooms-api/internal/repository"
	"github.com/roomus/rooms-api/internal/service/search"
)

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// RoomsService answers search, facet and lookup queries over the listing collection.
type RoomsService struct {
	repo repository.ListingsRepository
}

// NewRoomsService creates a new instance of RoomsService.
func NewRoomsService(repo repository.ListingsRepository) *RoomsService {
	return &RoomsService{repo: repo}
}

// Search returns one page of matching rooms.
func (s *RoomsService) Search(ctx context.Context, filter dto.RoomFilter) (dto.ResultPage, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return dto.ResultPage{}, fmt.Errorf("list listings: %w", err)
	}
	return search.Search(listings, filter), nil
}

// Counts returns the facet counts for filter.
func (s *RoomsService) Counts(ctx context.Context, filter dto.RoomFilter) (dto.FacetCounts, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return dto.FacetCounts{}, fmt.Errorf("list listings: %w", err)
	}
	return search.CountFacets(listings, filter), nil
}

// GetRoom looks a single room up by id.
func (s *RoomsService) GetRoom(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return listing, nil
}

// Options lists the filter values a client can offer.
func (s *RoomsService) Options() dto.FilterOptions {
	opts := dto.FilterOptions{
		BudgetRanges: make([]string, 0, len(dto.BudgetBuckets)),
		RoomTypes:    make([]string, 0, len(entity.RoomTypes)),
		Amenities:    append([]string(nil), entity.Amenities...),
		Sorts:        make([]string, 0, len(dto.SortOrders)),
	}
	for _, b := range dto.BudgetBuckets {
		opts.BudgetRanges = append(opts.BudgetRanges, b.Label())
	}
	for _, t := range entity.RoomTypes {
		opts.RoomTypes = append(opts.RoomTypes, string(t))
	}
	for _, o := range dto.SortOrders {
		opts.Sorts = append(opts.Sorts, string(o))
	}
	return opts
}
