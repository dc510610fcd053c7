package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomus/rooms-api/internal/entity"
)

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ pgxQuerier = (*pgxpool.Pool)(nil)

const selectListingsQuery = `
    SELECT
        id,
        title,
        city,
        neighborhood,
        price,
        room_type,
        amenities,
        to_char(move_in_date, 'YYYY-MM-DD'),
        description
    FROM listings
    ORDER BY id
`

// LoadListingsFromPostgres takes a one-off snapshot of the listings table.
// The result is meant to seed a MemoryListingsRepository; the table is not
// read again afterwards.
func LoadListingsFromPostgres(ctx context.Context, db pgxQuerier) ([]entity.Listing, error) {
	rows, err := db.Query(ctx, selectListingsQuery)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows pgx.Rows) ([]entity.Listing, error) {
	listings := make([]entity.Listing, 0)
	for rows.Next() {
		var (
			listing      entity.Listing
			roomType     string
			neighborhood sql.NullString
			moveInDate   sql.NullString
			description  sql.NullString
			amenities    []string
		)
		if err := rows.Scan(
			&listing.ID,
			&listing.Title,
			&listing.City,
			&neighborhood,
			&listing.Price,
			&roomType,
			&amenities,
			&moveInDate,
			&description,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		listing.RoomType = entity.RoomType(roomType)
		listing.Amenities = amenities
		if neighborhood.Valid {
			listing.Neighborhood = neighborhood.String
		}
		if moveInDate.Valid {
			listing.MoveInDate = moveInDate.String
		}
		if description.Valid {
			listing.Description = description.String
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}
