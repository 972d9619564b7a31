package dto

import (
	"net/url"
	"strconv"
	"time"

	"github.com/culturalite/backend/internal/application/event"
	"github.com/culturalite/backend/internal/domain"
)

type CategoryView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type EventView struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	City        string       `json:"city"`
	EventDate   string       `json:"event_date"`
	ImageURL    string       `json:"image_url"`
	Category    CategoryView `json:"category"`
}

func NewEventView(e domain.Event) EventView {
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		City:        e.City,
		EventDate:   e.EventDate.UTC().Format(time.RFC3339),
		ImageURL:    e.ImageURL,
		Category:    CategoryView{Name: e.Category.Name, Slug: e.Category.Slug},
	}
}

// EventListResponse is the offset-paginated envelope. Next and Previous are
// relative URLs (path plus query) so cached pages stay host-independent.
type EventListResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []EventView `json:"results"`
}

// NewEventListResponse builds the envelope from a listing page, deriving
// next/previous links from the requested path and filter.
func NewEventListResponse(path string, f event.ListFilter, res event.ListResult) EventListResponse {
	out := EventListResponse{
		Count:   res.Count,
		Results: make([]EventView, 0, len(res.Items)),
	}
	for _, e := range res.Items {
		out.Results = append(out.Results, NewEventView(e))
	}

	if res.Page < res.TotalPages {
		out.Next = pageURL(path, f, res.Page+1)
	}
	if res.Page > 1 {
		out.Previous = pageURL(path, f, res.Page-1)
	}
	return out
}

func pageURL(path string, f event.ListFilter, page int) *string {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if f.PageSize != event.DefaultPageSize {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}

	u := path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return &u
}
