package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roomus/rooms-api/internal/dto"
	"github.com/roomus/rooms-api/internal/entity"
	"github.com/roomus/rooms-api/internal/repository"
	"github.com/roomus/rooms-api/internal/service"
)

type failingListingsRepository struct{}

func (failingListingsRepository) List(context.Context) ([]entity.Listing, error) {
	return nil, errors.New("connection reset")
}

func (failingListingsRepository) FindByID(context.Context, string) (*entity.Listing, error) {
	return nil, errors.New("connection reset")
}

func newRoomsHandler(t *testing.T) *RoomsHandler {
	t.Helper()
	repo, err := repository.NewMemoryListingsRepository([]entity.Listing{
		{ID: "1", City: "Amsterdam", Price: 500, RoomType: entity.RoomTypePrivate, Amenities: []string{"wifi"}, MoveInDate: "2024-01-01"},
		{ID: "2", City: "Amsterdam", Price: 700, RoomType: entity.RoomTypeShared, Amenities: []string{"wifi", "balcony"}, MoveInDate: "2024-03-01"},
	})
	if err != nil {
		t.Fatalf("build repository: %v", err)
	}
	return NewRoomsHandler(service.NewRoomsService(repo))
}

func TestRoomsHandler_Search(t *testing.T) {
	h := newRoomsHandler(t)
	e := echo.New()

	target := "/api/rooms/search?budgetRange=%E2%82%AC400-600&sort=newest&page=1&pageSize=12"
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var page dto.ResultPage
	payload := decodeEnvelope(t, rec, &page)
	if payload.Status != "success" {
		t.Fatalf("unexpected envelope: %+v", payload)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != "1" || page.Page != 1 || page.PageSize != 12 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestRoomsHandler_SearchEmptyPageSerializesItems(t *testing.T) {
	h := newRoomsHandler(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/search?page=99", nil), rec)
	_ = h.Search(c)

	var page struct {
		Items []entity.Listing `json:"items"`
		Total int              `json:"total"`
	}
	decodeEnvelope(t, rec, &page)
	if page.Items == nil || len(page.Items) != 0 || page.Total != 2 {
		t.Fatalf("expected empty items array with total 2, got %+v", page)
	}
}

func TestRoomsHandler_Counts(t *testing.T) {
	h := newRoomsHandler(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/counts?amenities=wifi", nil), rec)
	if err := h.Counts(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var counts dto.FacetCounts
	decodeEnvelope(t, rec, &counts)
	if counts.BudgetRanges["€400-600"] != 1 || counts.BudgetRanges["€600-800"] != 1 || counts.BudgetRanges["€800-1000"] != 0 {
		t.Fatalf("unexpected budget counts: %v", counts.BudgetRanges)
	}
	if counts.RoomTypes["private"] != 1 || counts.RoomTypes["shared"] != 1 || counts.RoomTypes["studio"] != 0 {
		t.Fatalf("unexpected room type counts: %v", counts.RoomTypes)
	}
}

func TestRoomsHandler_Options(t *testing.T) {
	h := newRoomsHandler(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/options", nil), rec)
	_ = h.Options(c)

	var opts dto.FilterOptions
	decodeEnvelope(t, rec, &opts)
	if len(opts.BudgetRanges) != 4 || len(opts.RoomTypes) != 3 || len(opts.Amenities) != 4 || len(opts.Sorts) != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestRoomsHandler_Get(t *testing.T) {
	h := newRoomsHandler(t)
	e := echo.New()

	tests := map[string]struct {
		id         string
		wantStatus int
	}{
		"existing": {id: "2", wantStatus: http.StatusOK},
		"missing":  {id: "404", wantStatus: http.StatusNotFound},
		"blank":    {id: " ", wantStatus: http.StatusNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			c.SetPath("/api/rooms/:id")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			if err := h.Get(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var room entity.Listing
			payload := decodeEnvelope(t, rec, &room)
			if tt.wantStatus == http.StatusOK && room.ID != tt.id {
				t.Fatalf("unexpected room: %+v", room)
			}
			if tt.wantStatus == http.StatusNotFound && payload.Message != "room not found" {
				t.Fatalf("unexpected message: %q", payload.Message)
			}
		})
	}
}

func TestRoomsHandler_RepositoryFailures(t *testing.T) {
	h := NewRoomsHandler(service.NewRoomsService(failingListingsRepository{}))
	e := echo.New()

	handlers := map[string]echo.HandlerFunc{
		"search": h.Search,
		"counts": h.Counts,
		"get":    h.Get,
	}
	for name, fn := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			c.SetParamNames("id")
			c.SetParamValues("1")

			_ = fn(c)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if payload := decodeEnvelope(t, rec, nil); payload.Message == "connection reset" {
				t.Fatalf("internal error leaked to client")
			}
		})
	}
}
