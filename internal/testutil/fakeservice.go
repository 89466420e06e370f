// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks
	seq   int

	// Error injection for testing
	DefaultListErr   error
	ResolveListErr   error
	ListOpenTasksErr error
	CreateTaskErr    error

	// ListCalls counts ListOpenTasks calls.
	ListCalls int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	return &FakeService{
		lists: []service.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks: map[string][]service.Task{DefaultListID: nil},
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, title string) {
	f.AddTaskWithStatus(listID, title, service.StatusNeedsAction)
}

// AddTaskWithStatus adds a task with an explicit status to a list.
func (f *FakeService) AddTaskWithStatus(listID, title, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     fmt.Sprintf("t%d", f.seq),
		Title:  title,
		Status: status,
	})
}

// Titles returns the titles of every task in a list, open or not, in insertion order.
func (f *FakeService) Titles(listID string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []string
	for _, t := range f.tasks[listID] {
		out = append(out, t.Title)
	}
	return out
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.TrimSpace(name)
	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrAmbiguousList, name)
	}
}

// ListOpenTasks implements service.Service.
// Page tokens are decimal offsets into the list's open tasks.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID, pageToken string) (service.TaskPage, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()

	if f.ListOpenTasksErr != nil {
		return service.TaskPage{}, f.ListOpenTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.TaskPage{}, errors.New("not found")
	}

	var open []service.Task
	for _, t := range tasks {
		if t.Status == service.StatusNeedsAction {
			open = append(open, t)
		}
	}

	start := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 {
			return service.TaskPage{}, fmt.Errorf("invalid page token: %q", pageToken)
		}
		start = n
	}
	if start >= len(open) {
		return service.TaskPage{}, nil
	}
	end := min(start+service.PageSize, len(open))
	page := service.TaskPage{Tasks: open[start:end]}
	if end < len(open) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.RLock()
	_, ok := f.tasks[listID]
	f.mu.RUnlock()
	if !ok {
		return errors.New("not found")
	}
	f.AddTask(listID, title)
	return nil
}
