package http

import "net/http"

const (
	sessionCookieName = "session"
	signInPath        = "/signin"
)

// SessionVerifier checks a session token and returns the user id it carries.
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// currentUserID extracts the signed-in user from the session cookie.
// The second return is false when no valid session is present.
func currentUserID(r *http.Request, sessions SessionVerifier) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	userID, err := sessions.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return userID, true
}

// redirectToSignIn short-circuits unauthenticated writes. The client is sent
// to the sign-in page instead of receiving a 401, and no state is touched.
func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, signInPath, http.StatusSeeOther)
}
