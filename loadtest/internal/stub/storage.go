package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NoteStorage keeps every note posted to the stub, grouped by entry.
type NoteStorage struct {
	mu    sync.RWMutex
	notes map[string][]Note // entryID -> notes
}

func NewNoteStorage() *NoteStorage {
	return &NoteStorage{
		notes: make(map[string][]Note),
	}
}

func (s *NoteStorage) Add(entryID string, req NoteRequest, requestID string) Note {
	note := Note{
		ID:        uuid.NewString(),
		EntryID:   entryID,
		Body:      req.Body,
		Private:   req.Private,
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[entryID] = append(s.notes[entryID], note)
	return note
}

func (s *NoteStorage) ForEntry(entryID string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]Note, len(s.notes[entryID]))
	copy(notes, s.notes[entryID])
	return notes
}

func (s *NoteStorage) All() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []Note
	for _, notes := range s.notes {
		all = append(all, notes...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (s *NoteStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string][]Note)
}
