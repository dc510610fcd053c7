package search

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
)

const isoDate = "2006-01-02"

// ParseFilter turns raw query parameters into a normalized RoomFilter.
// It never fails: missing or malformed values fall back to "unconstrained"
// or to the documented default.
func ParseFilter(params url.Values) dto.RoomFilter {
	filter := dto.RoomFilter{
		City:       strings.TrimSpace(params.Get("city")),
		Budget:     parseBudget(params.Get("budgetRange")),
		RoomType:   entity.RoomType(strings.ToLower(strings.TrimSpace(params.Get("roomType")))),
		Amenities:  splitAmenities(params["amenities"]),
		MoveInDate: strings.TrimSpace(params.Get("moveInDate")),
		Sort:       dto.SortOrder(strings.TrimSpace(params.Get("sort"))),
		Page:       parseIntDefault(params.Get("page"), dto.DefaultPage),
		PageSize:   parseIntDefault(params.Get("pageSize"), dto.DefaultPageSize),
	}
	return Normalize(filter)
}

// Normalize enforces the RoomFilter invariants on a filter built by hand or by ParseFilter.
func Normalize(filter dto.RoomFilter) dto.RoomFilter {
	filter.City = strings.TrimSpace(filter.City)

	if filter.Budget != nil {
		budget := *filter.Budget
		if budget.Min > budget.Max {
			budget.Min, budget.Max = budget.Max, budget.Min
		}
		filter.Budget = &budget
	}

	if !filter.RoomType.Valid() {
		filter.RoomType = ""
	}

	filter.Amenities = dedupeTokens(filter.Amenities)

	if filter.MoveInDate != "" {
		if _, err := time.Parse(isoDate, filter.MoveInDate); err != nil {
			filter.MoveInDate = ""
		}
	}

	if !slices.Contains(dto.SortOrders, filter.Sort) {
		filter.Sort = dto.SortNewest
	}

	if filter.Page < 1 {
		filter.Page = dto.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = dto.DefaultPageSize
	}
	if filter.PageSize > dto.MaxPageSize {
		filter.PageSize = dto.MaxPageSize
	}
	return filter
}

// parseBudget reads "<min>-<max>" after dropping currency symbols, letters and
// spaces. Bounds may use "." or "," as a thousands separator; anything else,
// decimals included, is treated as no budget constraint.
func parseBudget(raw string) *dto.BudgetRange {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return nil
	}

	parts := strings.Split(cleaned, "-")
	if len(parts) != 2 {
		return nil
	}
	lo, ok := parseBudgetBound(parts[0])
	if !ok {
		return nil
	}
	hi, ok := parseBudgetBound(parts[1])
	if !ok {
		return nil
	}
	return &dto.BudgetRange{Min: lo, Max: hi}
}

var groupedAmount = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)

func parseBudgetBound(value string) (int, bool) {
	if groupedAmount.MatchString(value) {
		value = strings.NewReplacer(".", "", ",", "").Replace(value)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func splitAmenities(values []string) []string {
	var tokens []string
	for _, value := range values {
		tokens = append(tokens, strings.Split(value, ",")...)
	}
	return tokens
}

func dedupeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseIntDefault(input string, fallback int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
