package components

import "github.com/nimble-ui/core"

// NewAddTodo returns the form that posts a new todo and swaps the list.
func NewAddTodo() *core.Component[struct{}] {
	return core.NewComponent("addtodo", func(core.Context[struct{}]) core.Render {
		checkbox := func(tag Tag) core.Render {
			return core.E("label", nil,
				core.E("input", []core.Attrs{
					core.Attr("type", core.Static("checkbox")),
					core.Attr("name", core.Static("tag")),
					core.Attr("value", core.Static(string(tag))),
				}),
				core.T(string(tag)),
			)
		}
		tags := make([]core.Render, len(AllTags))
		for i, tag := range AllTags {
			tags[i] = checkbox(tag)
		}

		return core.E("form", []core.Attrs{
			core.Attr("hx-post", core.Static("/todos")),
			core.Attr("hx-target", core.Static("#todo-list")),
			core.Attr("hx-swap", core.Static("outerHTML")),
		},
			core.E("input", []core.Attrs{
				core.Attr("name", core.Static("title")),
				core.Attr("placeholder", core.Static("What needs doing?")),
				core.Attr("required", core.Static("")),
			}),
			core.F(tags...),
			core.E("button", []core.Attrs{core.Attr("type", core.Static("submit"))}, core.T("Add")),
		)
	})
}
