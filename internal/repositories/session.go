package repositories

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id string) (*models.Session, error)
	Delete(id string) error
	FindIdle(before time.Time) []*models.Session
	FindAll() []*models.Session
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*models.Session),
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("failed to create session %s: already exists", session.ID)
	}
	r.sessions[session.ID] = session

	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)

	return nil
}

// FindIdle returns sessions not seen since before, oldest first.
func (r *sessionRepository) FindIdle(before time.Time) []*models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []*models.Session
	for _, s := range r.sessions {
		if s.LastSeen().Before(before) {
			idle = append(idle, s)
		}
	}

	sortByLastSeen(idle)
	return idle
}

// FindAll implements SessionRepository.
func (r *sessionRepository) FindAll() []*models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	return all
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func sortByLastSeen(sessions []*models.Session) {
	slices.SortFunc(sessions, func(a, b *models.Session) int {
		return a.LastSeen().Compare(b.LastSeen())
	})
}
