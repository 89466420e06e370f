// Package store holds the ordered, in-memory task list and its JSON persistence.
//
// A Store is owned by a single caller and is not safe for concurrent use.
// Queries return copies; the only way to change a Store is through its methods.
package store

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"todo/internal/task"
)

// ErrIDsExhausted is returned by Add once the id counter has reached the largest int64.
var ErrIDsExhausted = errors.New("no task ids left")

// Store is an ordered collection of tasks. Insertion order is display order.
type Store struct {
	tasks  []task.Task
	lastID int64 // highest id handed out or loaded; 0 when none
	log    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty store. Ids start at 1.
func New(opts ...Option) *Store {
	s := &Store{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a task from text and appends it.
// Blank text returns a *task.ValidationError and leaves the store unchanged.
// ErrIDsExhausted is returned when no larger id can be assigned.
func (s *Store) Add(text string) (task.Task, error) {
	if s.lastID == math.MaxInt64 {
		return task.Task{}, ErrIDsExhausted
	}
	t, err := task.New(s.lastID+1, text)
	if err != nil {
		return task.Task{}, err
	}
	s.lastID = t.ID
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Delete removes the task with the given id.
// It reports whether a task was removed; an unknown id is not an error.
func (s *Store) Delete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true
}

// ToggleComplete flips the completion flag of the task with the given id
// and returns the new value. An unknown id yields a *task.NotFoundError.
func (s *Store) ToggleComplete(id int64) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, &task.NotFoundError{ID: id}
	}
	s.tasks[i] = s.tasks[i].Toggled()
	return s.tasks[i].Completed, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (task.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// All returns every task in insertion order.
func (s *Store) All() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Pending returns the tasks not yet completed, in insertion order.
func (s *Store) Pending() []task.Task {
	return s.filter(false)
}

// Completed returns the completed tasks, in insertion order.
func (s *Store) Completed() []task.Task {
	return s.filter(true)
}

// CountPending returns the number of tasks not yet completed.
func (s *Store) CountPending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Clear removes all tasks. Ids already handed out are not reused.
func (s *Store) Clear() {
	s.tasks = nil
}

func (s *Store) filter(completed bool) []task.Task {
	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
