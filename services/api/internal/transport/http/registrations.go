package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/app"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

// RegistrationManager is the slice of the registration service the
// registration endpoints need.
type RegistrationManager interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.Registration, error)
	Cancel(ctx context.Context, eventID, registrationID string) error
	ListForEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

// handleEventRegistrations serves /events/{id}/registrations. Both the
// listing and creation require a session.
func handleEventRegistrations(svc RegistrationManager, sessions SessionVerifier, w http.ResponseWriter, r *http.Request, eventID string) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := currentUserID(r, sessions); !ok {
			redirectToSignIn(w, r)
			return
		}
		regs, err := svc.ListForEvent(r.Context(), eventID)
		if err != nil {
			writeRegistrationError(w, err)
			return
		}
		resp := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			resp = append(resp, newRegistrationResponse(reg))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPost:
		userID, ok := currentUserID(r, sessions)
		if !ok {
			redirectToSignIn(w, r)
			return
		}
		reg, err := svc.Register(r.Context(), app.RegisterInput{EventID: eventID, UserID: userID})
		if err != nil {
			writeRegistrationError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newRegistrationResponse(reg))
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

// handleEventRegistration serves /events/{id}/registrations/{regID}:
// session-gated cancellation.
func handleEventRegistration(svc RegistrationManager, sessions SessionVerifier, w http.ResponseWriter, r *http.Request, eventID, registrationID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	if _, ok := currentUserID(r, sessions); !ok {
		redirectToSignIn(w, r)
		return
	}

	if err := svc.Cancel(r.Context(), eventID, registrationID); err != nil {
		writeRegistrationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRegistrationError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidID:
		writeError(w, http.StatusNotFound, codeInvalidID, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrRegistrationNotFound:
		writeError(w, http.StatusNotFound, codeRegistrationNotFound, err.Error())
	case domain.ErrSoldOut:
		writeError(w, http.StatusConflict, codeSoldOut, err.Error())
	case domain.ErrAlreadyRegistered:
		writeError(w, http.StatusConflict, codeAlreadyRegistered, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type registrationResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newRegistrationResponse(reg domain.Registration) registrationResponse {
	return registrationResponse{
		ID:        reg.ID,
		EventID:   reg.EventID,
		UserID:    reg.UserID,
		CreatedAt: reg.CreatedAt,
	}
}
