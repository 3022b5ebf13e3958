package components

import (
	"strings"
	"testing"

	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/lib/tree"
)

type fakeStore struct {
	todos []*Todo
}

func (s *fakeStore) Get(id string) *Todo {
	for _, t := range s.todos {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *fakeStore) List(status Status) []*Todo {
	var out []*Todo
	for _, t := range s.todos {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeStore) Stats() Stats {
	st := Stats{ByTag: map[Tag]int{}}
	for _, t := range s.todos {
		st.Total++
		if t.Done() {
			st.Completed++
		}
		for _, tag := range t.Tags {
			st.ByTag[tag]++
		}
	}
	return st
}

func newFixture() (*fakeStore, *core.Component[TodoListProps]) {
	store := &fakeStore{todos: []*Todo{
		{ID: "1", Title: "Milk", Status: StatusPending, Tags: []Tag{TagPersonal}},
		{ID: "2", Title: "Deploy", Status: StatusCompleted, Tags: []Tag{TagWork}},
	}}
	return store, NewTodoList(store, NewTodoItem(store))
}

func TestTodoListHTML(t *testing.T) {
	_, list := newFixture()
	res, err := core.RenderTest(core.C(list, core.Static(TodoListProps{})))
	if err != nil {
		t.Fatalf("RenderTest() error = %v", err)
	}
	for _, want := range []string{
		`<!--nb:for:item(1)-->`,
		`<li class="todo"><button hx-post="/todos/1/toggle"`,
		`<s>Deploy</s>`,
		`<span>Milk</span>`,
	} {
		if !res.HTMLContains(want) {
			t.Errorf("html missing %q:\n%s", want, res.HTML)
		}
	}
}

func TestTodoListFilterShowsEmpty(t *testing.T) {
	store, list := newFixture()
	store.todos = store.todos[:1]
	html, err := core.RenderString(core.C(list, core.Static(TodoListProps{Status: StatusCompleted})))
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if !strings.Contains(html, "Nothing to do.") {
		t.Errorf("html = %q, want empty fallback", html)
	}
}

func TestTodoListKeepsRowsOnToggle(t *testing.T) {
	store, list := newFixture()
	root := tree.Mount(core.C(list, core.Static(TodoListProps{})))
	d := root.Directives()[0]
	before, _ := d.Block(core.ItemKey("2"))

	store.todos[0].Status = StatusCompleted
	root.Update()

	after, ok := d.Block(core.ItemKey("2"))
	if !ok || after[0] != before[0] {
		t.Error("untouched row was remounted")
	}
	if got := root.HTML(); !strings.Contains(got, "<s>Milk</s>") {
		t.Errorf("HTML() = %q, want toggled row", got)
	}
}

func TestSidebarCounts(t *testing.T) {
	store, _ := newFixture()
	html, err := core.RenderString(core.C(NewSidebar(store), core.Static(TodoListProps{Status: StatusPending})))
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	for _, want := range []string{
		"1 of 2 done",
		`<a href="/?status=pending" class="active">Pending</a>`,
		"<li>work: 1</li>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
}
