package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/app"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

// LikeManager is the slice of the like service the like endpoints need.
type LikeManager interface {
	Like(ctx context.Context, in app.LikeInput) (domain.Like, error)
	Unlike(ctx context.Context, eventID, likeID, userID string) error
	Likers(ctx context.Context, eventID string) ([]domain.User, error)
}

// handleEventLikes serves /events/{id}/likes: a public likers listing and
// session-gated creation. Unauthenticated writes are redirected to sign-in
// before the service is touched.
func handleEventLikes(svc LikeManager, sessions SessionVerifier, w http.ResponseWriter, r *http.Request, eventID string) {
	switch r.Method {
	case http.MethodGet:
		likers, err := svc.Likers(r.Context(), eventID)
		if err != nil {
			writeLikeError(w, err)
			return
		}
		resp := make([]likerResponse, 0, len(likers))
		for _, u := range likers {
			resp = append(resp, likerResponse{ID: u.ID, Name: u.Name})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPost:
		userID, ok := currentUserID(r, sessions)
		if !ok {
			redirectToSignIn(w, r)
			return
		}
		like, err := svc.Like(r.Context(), app.LikeInput{EventID: eventID, UserID: userID})
		if err != nil {
			writeLikeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(likeResponse{
			ID:        like.ID,
			EventID:   like.EventID,
			UserID:    like.UserID,
			CreatedAt: like.CreatedAt,
		})
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

// handleEventLike serves /events/{id}/likes/{likeID}: session-gated removal.
func handleEventLike(svc LikeManager, sessions SessionVerifier, w http.ResponseWriter, r *http.Request, eventID, likeID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	userID, ok := currentUserID(r, sessions)
	if !ok {
		redirectToSignIn(w, r)
		return
	}

	if err := svc.Unlike(r.Context(), eventID, likeID, userID); err != nil {
		writeLikeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeLikeError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidID:
		writeError(w, http.StatusNotFound, codeInvalidID, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrLikeNotFound:
		writeError(w, http.StatusNotFound, codeLikeNotFound, err.Error())
	case domain.ErrAlreadyLiked:
		writeError(w, http.StatusConflict, codeAlreadyLiked, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type likeResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type likerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
