package handlers

import (
	"net/http"
	"strconv"

	"github.com/culturalite/backend/internal/application/event"
	"github.com/culturalite/backend/internal/domain"
	"github.com/culturalite/backend/internal/transport/http/dto"
	"github.com/culturalite/backend/internal/transport/http/response"
)

type EventHandler struct {
	svc *event.Service
}

func NewEventHandler(svc *event.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// List serves the public approved-event listing with optional city and
// category filters and offset pagination.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := event.ListFilter{
		City:     q.Get("city"),
		Category: q.Get("category"),
	}

	var err error
	if f.Page, err = intParam(q.Get("page"), 1); err != nil {
		response.WriteError(w, r, domain.ErrValidationFields("Invalid query parameter.", map[string][]string{
			"page": {"A valid integer is required."},
		}))
		return
	}
	if f.PageSize, err = intParam(q.Get("page_size"), event.DefaultPageSize); err != nil {
		response.WriteError(w, r, domain.ErrValidationFields("Invalid query parameter.", map[string][]string{
			"page_size": {"A valid integer is required."},
		}))
		return
	}

	// page numbering starts at 1; an explicit zero or negative page does not
	// exist, unlike the absent param which means the first page
	if f.Page < 1 {
		response.WriteError(w, r, domain.ErrPageNotFound(f.Page))
		return
	}

	f.Normalize()
	res, err := h.svc.ListPublic(r.Context(), f)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewEventListResponse(r.URL.Path, f, res))
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
