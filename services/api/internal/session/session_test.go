package session

import (
	"testing"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
)

func TestManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mgr := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(now))

	token, err := mgr.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be set")
	}

	userID, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %s", userID)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	issuer := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(issuedAt))

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	later := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(issuedAt.Add(2*time.Hour)))
	if _, err := later.Verify(token); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	justBefore := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(issuedAt.Add(59*time.Minute)))
	if _, err := justBefore.Verify(token); err != nil {
		t.Fatalf("expected token still valid, got %v", err)
	}
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	issuer := NewManager([]byte("secret-a"), time.Hour, clock.NewFixed(now))
	verifier := NewManager([]byte("secret-b"), time.Hour, clock.NewFixed(now))

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestManager_Verify_Garbage(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mgr := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(now))

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := mgr.Verify(token); err != ErrInvalidSession {
			t.Fatalf("expected ErrInvalidSession for %q, got %v", token, err)
		}
	}
}

func TestManager_Issue_EmptyUser(t *testing.T) {
	t.Parallel()

	mgr := NewManager([]byte("test-secret"), time.Hour, clock.NewFixed(time.Now()))
	if _, err := mgr.Issue(""); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
