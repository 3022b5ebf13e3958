package components

import (
	"strconv"

	"github.com/nimble-ui/core"
)

// NewSidebar returns the filter and statistics panel.
func NewSidebar(store TodoStore) *core.Component[TodoListProps] {
	return core.NewComponent("sidebar", func(ctx core.Context[TodoListProps]) core.Render {
		current := core.Prop(func(p TodoListProps) Status { return p.Status })(ctx)
		stats := func() Stats { return store.Stats() }

		filter := func(label string, status Status) core.Render {
			class := func() string {
				if current() == status {
					return "active"
				}
				return ""
			}
			href := "/"
			if status != "" {
				href += "?status=" + string(status)
			}
			return core.E("a", []core.Attrs{
				core.Attr("href", core.Static(href)),
				core.Attr("class", class),
			}, core.T(label))
		}
		count := func(fn func(Stats) int) core.Render {
			return core.Dyn(func() string { return strconv.Itoa(fn(stats())) })
		}

		return core.E("aside", nil,
			core.E("nav", nil,
				filter("All", ""),
				filter("Pending", StatusPending),
				filter("Completed", StatusCompleted),
			),
			core.E("p", nil,
				count(func(s Stats) int { return s.Completed }), core.T(" of "),
				count(func(s Stats) int { return s.Total }), core.T(" done"),
			),
			core.E("ul", []core.Attrs{core.Attr("class", core.Static("tags"))},
				core.Each(core.Static(AllTags),
					func(tag core.Accessor[Tag], _ core.Accessor[int], _ core.Accessor[[]Tag]) core.Render {
						return core.E("li", nil,
							core.Dyn(func() string { return string(tag()) }), core.T(": "),
							count(func(s Stats) int { return s.ByTag[tag()] }),
						)
					},
					core.TrackBy(func(tag Tag, _ int, _ []Tag) any { return tag }),
				),
			),
		)
	})
}
