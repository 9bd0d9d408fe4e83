package repositories

import (
	"errors"
	"testing"
	"time"

	"alfredoptarigan/resume-matcher/internal/models"
)

func TestSessionRepositoryLifecycle(t *testing.T) {
	repo := NewSessionRepository()
	s := models.NewSession("abc", time.Now())

	if err := repo.Create(s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := repo.Create(s); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}

	got, err := repo.FindByID("abc")
	if err != nil {
		t.Fatalf("find session: %v", err)
	}
	if got != s {
		t.Fatalf("expected the stored session pointer")
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", repo.Count())
	}

	if err := repo.Delete("abc"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := repo.FindByID("abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := repo.Delete("abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestFindIdleOrdersOldestFirst(t *testing.T) {
	repo := NewSessionRepository()
	now := time.Now()

	fresh := models.NewSession("fresh", now)
	old := models.NewSession("old", now.Add(-2*time.Hour))
	older := models.NewSession("older", now.Add(-3*time.Hour))
	for _, s := range []*models.Session{fresh, old, older} {
		if err := repo.Create(s); err != nil {
			t.Fatalf("create %s: %v", s.ID, err)
		}
	}

	idle := repo.FindIdle(now.Add(-time.Hour))
	if len(idle) != 2 {
		t.Fatalf("expected 2 idle sessions, got %d", len(idle))
	}
	if idle[0].ID != "older" || idle[1].ID != "old" {
		t.Fatalf("unexpected order: %s, %s", idle[0].ID, idle[1].ID)
	}

	old.Touch(now)
	if idle := repo.FindIdle(now.Add(-time.Hour)); len(idle) != 1 {
		t.Fatalf("expected touched session to stop being idle, got %d idle", len(idle))
	}
	if len(repo.FindAll()) != 3 {
		t.Fatalf("expected 3 sessions in FindAll")
	}
}
