// Package memory is an in-process transport backend: the same five verbs a
// REST endpoint offers, over a map. It backs local development and package
// tests without standing up a server.
package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"hostel_manager/internal/domain"
)

type Store struct {
	name string

	mu   sync.Mutex
	recs []map[string]any
}

// New returns a store whose GetAll payload is keyed by name, exercising the
// object-form extraction path of the assembler.
func New(name string, seed []map[string]any) *Store {
	s := &Store{name: name}
	for _, rec := range seed {
		s.recs = append(s.recs, cloneRecord(rec))
	}
	return s
}

func (s *Store) GetAll(_ context.Context) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(map[string]any{s.name: s.recs})
	if err != nil {
		return domain.Result{}, err
	}
	return ok(http.StatusOK, data), nil
}

func (s *Store) GetByID(_ context.Context, id string) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		data, err := json.Marshal(s.recs[i])
		if err != nil {
			return domain.Result{}, err
		}
		return ok(http.StatusOK, data), nil
	}
	return notFound(), nil
}

func (s *Store) Create(_ context.Context, record map[string]any) (domain.Result, error) {
	rec := cloneRecord(record)
	if id, _ := rec["id"].(string); id == "" {
		rec["id"] = uuid.NewString()
	}

	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return domain.Result{}, err
	}
	return ok(http.StatusCreated, data), nil
}

func (s *Store) Update(_ context.Context, id string, record map[string]any) (domain.Result, error) {
	rec := cloneRecord(record)
	rec["id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return notFound(), nil
	}
	s.recs[i] = rec
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.Result{}, err
	}
	return ok(http.StatusOK, data), nil
}

func (s *Store) Delete(_ context.Context, id string) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return notFound(), nil
	}
	s.recs = append(s.recs[:i], s.recs[i+1:]...)
	return ok(http.StatusNoContent, nil), nil
}

// index must be called with the lock held.
func (s *Store) index(id string) int {
	for i, rec := range s.recs {
		if v, _ := rec["id"].(string); v == id {
			return i
		}
	}
	return -1
}

func cloneRecord(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func ok(status int, data []byte) domain.Result {
	return domain.Result{Status: status, Reason: http.StatusText(status), Data: data}
}

func notFound() domain.Result {
	return domain.Result{Status: http.StatusNotFound, Reason: http.StatusText(http.StatusNotFound)}
}
