package components

import (
	"github.com/nimble-ui/core"
)

// TodoListProps selects which todos the list shows. An empty Status shows
// all of them.
type TodoListProps struct {
	Status Status
}

// NewTodoList returns the list view. Rows are keyed by todo ID so a toggle
// or delete keeps the other rows in place.
func NewTodoList(store TodoStore, item *core.Component[TodoItemProps]) *core.Component[TodoListProps] {
	return core.NewComponent("todolist", func(ctx core.Context[TodoListProps]) core.Render {
		status := core.Prop(func(p TodoListProps) Status { return p.Status })(ctx)
		todos := func() []*Todo { return store.List(status()) }

		return core.E("ul", []core.Attrs{core.Attr("id", core.Static("todo-list"))},
			core.Each(todos,
				func(todo core.Accessor[*Todo], _ core.Accessor[int], _ core.Accessor[[]*Todo]) core.Render {
					return core.C(item, func() TodoItemProps { return TodoItemProps{ID: todo().ID} })
				},
				core.TrackBy(func(t *Todo, _ int, _ []*Todo) any { return t.ID }),
				core.Empty[*Todo](core.E("li", []core.Attrs{core.Attr("class", core.Static("empty"))},
					core.T("Nothing to do."))),
			),
		)
	})
}
