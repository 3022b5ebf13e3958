// Package components holds the todo app's views.
package components

import "time"

// Status is the completion state of a todo.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Tag labels a todo.
type Tag string

const (
	TagWork     Tag = "work"
	TagPersonal Tag = "personal"
	TagUrgent   Tag = "urgent"
	TagLater    Tag = "later"
)

// AllTags lists the tags in display order.
var AllTags = []Tag{TagWork, TagPersonal, TagUrgent, TagLater}

// Todo is one task.
type Todo struct {
	ID        string
	Title     string
	Status    Status
	Tags      []Tag
	CreatedAt time.Time
}

// Done reports whether the todo is completed.
func (t *Todo) Done() bool { return t.Status == StatusCompleted }

// HasTag reports whether the todo carries tag.
func (t *Todo) HasTag(tag Tag) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

// Stats summarises the store.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	ByTag     map[Tag]int
}

// TodoStore is the data source the views read from.
type TodoStore interface {
	Get(id string) *Todo
	List(status Status) []*Todo
	Stats() Stats
}
