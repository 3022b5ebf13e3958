package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nimble-ui/core/example/components"
)

// Store is an in-memory todo store that implements components.TodoStore.
type Store struct {
	mu     sync.RWMutex
	todos  map[string]*components.Todo
	nextID int
	now    func() time.Time
}

// NewStore creates a store with sample data.
func NewStore() *Store {
	s := &Store{
		todos:  make(map[string]*components.Todo),
		nextID: 1,
		now:    time.Now,
	}
	s.Add("Buy groceries", []components.Tag{components.TagPersonal})
	s.Add("Review PR #123", []components.Tag{components.TagWork, components.TagUrgent})
	s.Add("Write documentation", []components.Tag{components.TagWork})
	s.Add("Call dentist", []components.Tag{components.TagPersonal, components.TagLater})
	return s
}

// Add creates a todo and returns its ID.
func (s *Store) Add(title string, tags []components.Tag) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("todo-%d", s.nextID)
	s.nextID++
	s.todos[id] = &components.Todo{
		ID:        id,
		Title:     title,
		Status:    components.StatusPending,
		Tags:      tags,
		CreatedAt: s.now(),
	}
	return id
}

// Get returns a copy of the todo, or nil.
func (s *Store) Get(id string) *components.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.todos[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

// Toggle flips a todo between pending and completed.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return false
	}
	if todo.Status == components.StatusCompleted {
		todo.Status = components.StatusPending
	} else {
		todo.Status = components.StatusCompleted
	}
	return true
}

// Delete removes a todo.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return false
	}
	delete(s.todos, id)
	return true
}

// List returns todos with the given status, oldest first. An empty status
// matches all.
func (s *Store) List(status components.Status) []*components.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*components.Todo
	for _, todo := range s.todos {
		if status != "" && todo.Status != status {
			continue
		}
		cp := *todo
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Stats returns counts across all todos.
func (s *Store) Stats() components.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := components.Stats{ByTag: make(map[components.Tag]int)}
	for _, todo := range s.todos {
		stats.Total++
		if todo.Status == components.StatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		for _, tag := range todo.Tags {
			stats.ByTag[tag]++
		}
	}
	return stats
}
