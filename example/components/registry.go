package components

import "github.com/nimble-ui/core"

// Set holds the app's component definitions.
type Set struct {
	TodoList *core.Component[TodoListProps]
	TodoItem *core.Component[TodoItemProps]
	Sidebar  *core.Component[TodoListProps]
	AddTodo  *core.Component[struct{}]
}

// Init creates the components over store and registers them with reg.
func Init(store TodoStore, reg *core.Registry) *Set {
	item := NewTodoItem(store)
	s := &Set{
		TodoList: NewTodoList(store, item),
		TodoItem: item,
		Sidebar:  NewSidebar(store),
		AddTodo:  NewAddTodo(),
	}
	reg.Add(s.TodoList, s.TodoItem, s.Sidebar, s.AddTodo)
	return s
}

// Layout is the full page for the given filter.
func (s *Set) Layout(status Status) core.Render {
	props := core.Static(TodoListProps{Status: status})
	return core.E("html", nil,
		core.E("head", nil,
			core.E("title", nil, core.T("Todos")),
			core.E("script", []core.Attrs{core.Attr("src", core.Static("https://unpkg.com/htmx.org@2.0.4"))}),
		),
		core.E("body", nil,
			core.C(s.Sidebar, props),
			core.E("main", nil,
				core.C(s.AddTodo, core.Static(struct{}{})),
				core.C(s.TodoList, props),
			),
		),
	)
}
