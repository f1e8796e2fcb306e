package tasks

import (
	"sync"

	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// Store keeps upload tasks keyed by ID in insertion order. Finished
// tasks stay until removed explicitly so the console can show history.
type Store struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]types.UploadTask
	clock   tool.Clock
	changes chan struct{}
}

func NewStore() *Store {
	return NewStoreWithClock(tool.RealClock{})
}

func NewStoreWithClock(clock tool.Clock) *Store {
	return &Store{
		byID:    make(map[string]types.UploadTask),
		clock:   clock,
		changes: make(chan struct{}, 1),
	}
}

// Add inserts the task, or replaces it whole when the ID is known.
func (s *Store) Add(task types.UploadTask) {
	s.mu.Lock()
	now := s.clock.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if _, ok := s.byID[task.ID]; !ok {
		s.order = append(s.order, task.ID)
	}
	s.byID[task.ID] = task
	s.mu.Unlock()
	s.signal()
}

func (s *Store) Get(id string) (types.UploadTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.byID[id]
	return task, ok
}

// Snapshot returns all tasks in insertion order.
func (s *Store) Snapshot() []types.UploadTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.UploadTask, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// UpdateProgress raises the task's progress percentage. Updates for
// unknown tasks, tasks not uploading, or values at or below the current
// progress are dropped, so progress never moves backwards.
func (s *Store) UpdateProgress(id string, pct int) bool {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	s.mu.Lock()
	task, ok := s.byID[id]
	if !ok || task.Status != types.TaskUploading || pct <= task.Progress {
		s.mu.Unlock()
		return false
	}
	task.Progress = pct
	task.UpdatedAt = s.clock.Now()
	s.byID[id] = task
	s.mu.Unlock()
	s.signal()
	return true
}

// MarkUploading moves a queued or failed task into the uploading state
// with progress reset to 0. Any other state refuses the transition.
func (s *Store) MarkUploading(id string) bool {
	s.mu.Lock()
	task, ok := s.byID[id]
	if !ok || (task.Status != types.TaskQueued && task.Status != types.TaskError) {
		s.mu.Unlock()
		return false
	}
	task.Status = types.TaskUploading
	task.Progress = 0
	task.ErrorMessage = ""
	task.UpdatedAt = s.clock.Now()
	s.byID[id] = task
	s.mu.Unlock()
	s.signal()
	return true
}

// MarkSuccess finishes the task with progress forced to 100 and records
// the document ID the backend assigned.
func (s *Store) MarkSuccess(id, documentID string) bool {
	s.mu.Lock()
	task, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	task.Status = types.TaskSuccess
	task.Progress = 100
	task.ErrorMessage = ""
	task.DocumentID = documentID
	task.UpdatedAt = s.clock.Now()
	s.byID[id] = task
	s.mu.Unlock()
	s.signal()
	return true
}

// MarkError records the failure message. Progress keeps its last value.
func (s *Store) MarkError(id, msg string) bool {
	s.mu.Lock()
	task, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	task.Status = types.TaskError
	task.ErrorMessage = msg
	task.UpdatedAt = s.clock.Now()
	s.byID[id] = task
	s.mu.Unlock()
	s.signal()
	return true
}

// Remove deletes the task. Late results for a removed ID are dropped by
// the mark functions returning false.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, id)
	for i, known := range s.order {
		if known == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.signal()
	return true
}

// Changes delivers a coalesced signal after every mutation.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
