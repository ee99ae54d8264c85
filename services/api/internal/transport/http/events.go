package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/app"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

// EventCatalog is the slice of the event service the event endpoints need.
type EventCatalog interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in app.UpdateEventInput) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (app.EventDetails, error)
	DeleteEvent(ctx context.Context, id string) error
	Upcoming(ctx context.Context) ([]domain.Event, error)
	Past(ctx context.Context) ([]domain.Event, error)
	Recent(ctx context.Context, limit int) ([]domain.Event, error)
	Free(ctx context.Context) ([]domain.Event, error)
}

// HandleEvents serves the /events collection: scoped listings and creation.
func HandleEvents(svc EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleListEvents(svc, w, r)
		case http.MethodPost:
			handleCreateEvent(svc, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func handleListEvents(svc EventCatalog, w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "upcoming"
	}

	var (
		events []domain.Event
		err    error
	)
	switch scope {
	case "upcoming":
		events, err = svc.Upcoming(r.Context())
	case "past":
		events, err = svc.Past(r.Context())
	case "free":
		events, err = svc.Free(r.Context())
	case "recent":
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidScope, "limit must be a positive integer")
				return
			}
		}
		events, err = svc.Recent(r.Context(), limit)
	default:
		writeError(w, http.StatusBadRequest, codeInvalidScope, "scope must be upcoming, past, recent or free")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, newEventResponse(event))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func handleCreateEvent(svc EventCatalog, w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}

	event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PriceCents:    req.PriceCents,
		Capacity:      req.Capacity,
		StartsAt:      req.startsAt,
		ImageFileName: req.ImageFileName,
	})
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newEventResponse(event))
}

func handleEventItem(svc EventCatalog, w http.ResponseWriter, r *http.Request, eventID string) {
	switch r.Method {
	case http.MethodGet:
		details, err := svc.GetEvent(r.Context(), eventID)
		if err != nil {
			writeEventError(w, err)
			return
		}
		resp := eventDetailsResponse{
			eventResponse: newEventResponse(details.Event),
			Free:          details.Event.Free(),
			SoldOut:       details.Event.SoldOut(details.Registered),
			SpotsLeft:     details.Event.SpotsLeft(details.Registered),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPut:
		req, ok := decodeEventRequest(w, r)
		if !ok {
			return
		}
		event, err := svc.UpdateEvent(r.Context(), eventID, app.UpdateEventInput{
			Name:          req.Name,
			Description:   req.Description,
			Location:      req.Location,
			PriceCents:    req.PriceCents,
			Capacity:      req.Capacity,
			StartsAt:      req.startsAt,
			ImageFileName: req.ImageFileName,
		})
		if err != nil {
			writeEventError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newEventResponse(event))
	case http.MethodDelete:
		if err := svc.DeleteEvent(r.Context(), eventID); err != nil {
			writeEventError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func writeEventError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeValidationError(w, verrs)
		return
	}
	switch err {
	case domain.ErrInvalidID:
		writeError(w, http.StatusNotFound, codeInvalidID, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type eventRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	PriceCents    int64  `json:"price_cents"`
	Capacity      int    `json:"capacity"`
	StartsAt      string `json:"starts_at,omitempty"`
	ImageFileName string `json:"image_file_name,omitempty"`

	startsAt *time.Time
}

func decodeEventRequest(w http.ResponseWriter, r *http.Request) (eventRequest, bool) {
	var req eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return eventRequest{}, false
	}
	if req.StartsAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid starts_at format")
			return eventRequest{}, false
		}
		req.startsAt = &parsed
	}
	return req, true
}

type eventResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PriceCents    int64     `json:"price_cents"`
	Capacity      int       `json:"capacity"`
	StartsAt      time.Time `json:"starts_at"`
	ImageFileName string    `json:"image_file_name,omitempty"`
}

func newEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:            event.ID,
		Name:          event.Name,
		Description:   event.Description,
		Location:      event.Location,
		PriceCents:    event.PriceCents,
		Capacity:      event.Capacity,
		StartsAt:      event.StartsAt,
		ImageFileName: event.ImageFileName,
	}
}

type eventDetailsResponse struct {
	eventResponse
	Free      bool `json:"free"`
	SoldOut   bool `json:"sold_out"`
	SpotsLeft int  `json:"spots_left"`
}

// EventTree routes /events/{id} and its nested like and registration
// resources. The mux cannot express these shapes, so paths are parsed here
// the same way the collection handlers parse theirs.
func EventTree(events EventCatalog, likes LikeManager, regs RegistrationManager, sessions SessionVerifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "events" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		eventID := parts[1]

		switch {
		case len(parts) == 2:
			handleEventItem(events, w, r, eventID)
		case parts[2] == "likes" && len(parts) == 3:
			handleEventLikes(likes, sessions, w, r, eventID)
		case parts[2] == "likes" && len(parts) == 4 && parts[3] != "":
			handleEventLike(likes, sessions, w, r, eventID, parts[3])
		case parts[2] == "registrations" && len(parts) == 3:
			handleEventRegistrations(regs, sessions, w, r, eventID)
		case parts[2] == "registrations" && len(parts) == 4 && parts[3] != "":
			handleEventRegistration(regs, sessions, w, r, eventID, parts[3])
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	})
}
