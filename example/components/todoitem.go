package components

import (
	"strings"

	"github.com/nimble-ui/core"
)

// TodoItemProps identifies the todo a row shows.
type TodoItemProps struct {
	ID string
}

// NewTodoItem returns the row view. Its toggle button posts to
// /todos/{id}/toggle and swaps the whole list.
func NewTodoItem(store TodoStore) *core.Component[TodoItemProps] {
	return core.NewComponent("todoitem", func(ctx core.Context[TodoItemProps]) core.Render {
		id := core.Prop(func(p TodoItemProps) string { return p.ID })(ctx)
		todo := func() *Todo {
			if t := store.Get(id()); t != nil {
				return t
			}
			return &Todo{ID: id(), Title: "(deleted)"}
		}
		done := func() bool { return todo().Done() }

		class := func() string {
			if done() {
				return "todo done"
			}
			return "todo"
		}
		title := func() string { return todo().Title }
		tags := func() string {
			parts := make([]string, len(todo().Tags))
			for i, tag := range todo().Tags {
				parts[i] = string(tag)
			}
			return strings.Join(parts, ", ")
		}

		return core.E("li", []core.Attrs{core.Attr("class", class)},
			core.E("button", []core.Attrs{
				core.Attr("hx-post", func() string { return "/todos/" + id() + "/toggle" }),
				core.Attr("hx-target", core.Static("#todo-list")),
				core.Attr("hx-swap", core.Static("outerHTML")),
			},
				core.When(done, core.T("Undo"), core.T("Done")),
			),
			core.When(done,
				core.E("s", nil, core.Dyn(title)),
				core.E("span", nil, core.Dyn(title)),
			),
			core.E("small", nil, core.Dyn(tags)),
		)
	})
}
