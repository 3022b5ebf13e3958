// Package core is the declarative authoring layer of nimble: combinators
// that describe a tree of renderable nodes and a component's capabilities
// without binding either description to a backend.
//
// # Render instructions
//
// A Render is a deferred call against the Renderer interface. Builders
// produce Render values and never do work themselves:
//
//	view := core.E("ul", []core.Attrs{core.Attr("class", core.Static("todos"))},
//	    core.Each(todos, renderTodo, core.TrackBy(func(t Todo, _ int, _ []Todo) any { return t.ID })),
//	)
//
// T and Dyn render static and dynamic text, E elements, F fragments and C
// components. Attr and On build attribute instructions.
//
// # Keyed blocks
//
// Directive hands the renderer an ordered sequence of Blocks, each identified
// by a Key. The renderer matches blocks across passes by key, re-invokes
// templates of retained blocks, mounts new keys and unmounts missing ones.
// When and Each are built on Directive:
//
//   - When yields one block keyed ThenKey or ElseKey, so flipping the
//     condition always remounts.
//   - Each yields EmptyKey for an empty list, otherwise one ItemKey per item.
//     Items are tracked by position unless TrackBy is given; positional
//     tracking misattributes identity when items move.
//
// Keys are structured values compared with ==. Key.String gives the
// familiar textual form (if:then, for:item(3)) for markers and logs only.
//
// # Middleware
//
// A component's setup function receives a Context (live props, refresh
// trigger, lifecycle hooks) and composes Middleware to obtain capabilities:
//
//	var Counter = core.NewComponent("counter", func(ctx core.Context[Props]) core.Render {
//	    step := core.Prop(func(p Props) int { return p.Step })(ctx)
//	    count := core.State[Props](0)(ctx)
//	    ...
//	})
//
// Prop is a live projection of props, Refresh and Lifecycle expose the
// engine's trigger and hook registry, and State creates a Cell whose every
// write triggers a refresh, equal value or not.
//
// # Backends
//
// The package ships a string-serialising HTMLRenderer (with a templ
// adapter and an HTTP Registry for re-rendering components by URL).
// lib/tree is a retained-mode backend that keeps a node tree, reconciles
// blocks across passes and batches refreshes. The core itself schedules
// nothing and owns no output.
package core
