package repository

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/roomus/rooms-api/internal/entity"
)

//go:embed fixtures/rooms.json fixtures/listings.schema.json
var fixtures embed.FS

const (
	defaultFixturePath = "fixtures/rooms.json"
	schemaPath         = "fixtures/listings.schema.json"
)

// ErrUnsupportedFormat is returned for listing files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported listings file format")

// DefaultListings returns the bundled Amsterdam sample collection.
func DefaultListings() ([]entity.Listing, error) {
	raw, err := fixtures.ReadFile(defaultFixturePath)
	if err != nil {
		return nil, fmt.Errorf("read default fixture: %w", err)
	}
	return DecodeJSONListings(bytes.NewReader(raw))
}

// LoadListingsFile reads listings from a .json, .yaml/.yml or .csv file.
func LoadListingsFile(path string) ([]entity.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listings file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSONListings(f)
	case ".yaml", ".yml":
		return DecodeYAMLListings(f)
	case ".csv":
		return DecodeCSVListings(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

var listingsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := fixtures.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read listings schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("listings.schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add listings schema: %w", err)
	}
	schema, err := compiler.Compile("listings.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile listings schema: %w", err)
	}
	return schema, nil
})

// DecodeJSONListings parses a JSON array of listings after validating it
// against the bundled schema.
func DecodeJSONListings(r io.Reader) ([]entity.Listing, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read listings json: %w", err)
	}

	schema, err := listingsSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("listings body is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, ListingValidationError{Message: fmt.Sprintf("schema validation failed: %v", err)}
	}

	var listings []entity.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("decode listings json: %w", err)
	}
	return listings, nil
}

// DecodeYAMLListings parses a YAML sequence of listings. An empty document
// yields an empty collection.
func DecodeYAMLListings(r io.Reader) ([]entity.Listing, error) {
	var listings []entity.Listing
	if err := yaml.NewDecoder(r).Decode(&listings); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode listings yaml: %w", err)
	}
	return listings, nil
}

var requiredCSVHeaders = []string{"id", "title", "city", "price", "room_type"}

// DecodeCSVListings parses a CSV export with a header row. Amenities are
// separated by ';' or '|' inside their column.
func DecodeCSVListings(r io.Reader) ([]entity.Listing, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ListingValidationError{Message: "csv file is empty"}
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index, err := buildHeaderIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		listings []entity.Listing
		rowNum   = 1
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rowNum++

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		price, err := strconv.Atoi(field("price"))
		if err != nil {
			return nil, ListingValidationError{ID: field("id"), Message: fmt.Sprintf("invalid price value on row %d", rowNum)}
		}

		listings = append(listings, entity.Listing{
			ID:           field("id"),
			Title:        field("title"),
			City:         field("city"),
			Neighborhood: field("neighborhood"),
			Price:        price,
			RoomType:     entity.RoomType(strings.ToLower(field("room_type"))),
			Amenities:    splitAmenityColumn(field("amenities")),
			MoveInDate:   field("move_in_date"),
			Description:  field("description"),
		})
	}

	return listings, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, ListingValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func splitAmenityColumn(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
