package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/app"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

// AuthManager is the slice of the auth service the auth endpoints need.
type AuthManager interface {
	SignUp(ctx context.Context, in app.SignUpInput) (domain.User, error)
	SignIn(ctx context.Context, in app.SignInInput) (domain.User, error)
}

// SessionIssuer mints a session token for a signed-in user.
type SessionIssuer interface {
	Issue(userID string) (string, error)
}

// HandleSignUp serves POST /signup.
func HandleSignUp(svc AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req signUpRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.SignUp(r.Context(), app.SignUpInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch err {
			case domain.ErrUserNameRequired:
				writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
			case domain.ErrEmailRequired:
				writeError(w, http.StatusBadRequest, codeEmailRequired, err.Error())
			case domain.ErrPasswordTooShort:
				writeError(w, http.StatusBadRequest, codePasswordTooShort, err.Error())
			case domain.ErrEmailTaken:
				writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(userResponse{ID: user.ID, Name: user.Name, Email: user.Email})
	}
}

// HandleSignIn serves /signin. GET returns a prompt so the path works as a
// redirect target for unauthenticated writes; POST checks credentials and
// sets the session cookie.
func HandleSignIn(svc AuthManager, sessions SessionIssuer, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(signInPrompt{
				Message: "sign in by posting email and password to /signin",
			})
		case http.MethodPost:
			var req signInRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			user, err := svc.SignIn(r.Context(), app.SignInInput{
				Email:    req.Email,
				Password: req.Password,
			})
			if err != nil {
				if err == domain.ErrInvalidCredentials {
					writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}

			token, err := sessions.Issue(user.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(userResponse{ID: user.ID, Name: user.Name, Email: user.Email})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleSignOut serves POST /signout by expiring the session cookie.
func HandleSignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInPrompt struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
