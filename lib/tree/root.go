// Package tree is a retained-mode backend: it mounts a view into a node
// tree, keeps it up to date across passes, and reconciles keyed blocks.
//
// A Root is driven from one goroutine:
//
//	root := tree.Mount(view)
//	root.Find("id", "add").Dispatch("click", nil) // handlers call Cell.Set
//	root.Flush()                                  // re-render refreshed components
//	fmt.Println(root.HTML())
//
// Component refreshes are never applied synchronously. They queue the
// instance and Flush re-renders each queued instance once, however many
// times it was refreshed.
package tree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/lib/engine"
)

// ErrRefreshLoop is returned by Flush when components keep refreshing each
// other beyond the configured number of passes.
var ErrRefreshLoop = errors.New("tree: refresh loop")

// DefaultMaxPasses bounds the passes of a single Flush.
const DefaultMaxPasses = 100

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithMarkers makes HTML bracket directive blocks with key comments, in the
// same format as core.WithBlockMarkers.
func WithMarkers() Option {
	return func(r *Root) {
		r.markers = true
	}
}

// WithMaxPasses bounds the passes of a single Flush.
func WithMaxPasses(n int) Option {
	return func(r *Root) {
		r.maxPasses = n
	}
}

// Root is a mounted view.
type Root struct {
	nodes        []Node
	sched        *engine.Scheduler
	components   map[*engine.Instance]*Component
	pendingMount []*engine.Instance

	logger    *slog.Logger
	markers   bool
	maxPasses int
}

// Mount builds view into a tree and fires mount hooks, innermost
// components first.
func Mount(view core.Render, opts ...Option) *Root {
	r := &Root{
		sched:      engine.NewScheduler(),
		components: make(map[*engine.Instance]*Component),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxPasses:  DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.nodes = r.build(view)
	r.mountPending()
	return r
}

// Nodes returns the top-level nodes.
func (r *Root) Nodes() []Node { return r.nodes }

// Pending returns the number of component instances waiting for Flush.
func (r *Root) Pending() int { return r.sched.Len() }

// Update runs one full pass: every dynamic text, attribute, listener and
// directive is re-evaluated and every component's update hooks fire.
func (r *Root) Update() {
	updateAll(r, r.nodes)
	r.mountPending()
}

// Flush re-renders the components refreshed since the last flush and
// fires their update hooks. Refreshes issued while flushing are handled in
// further passes, up to the configured limit. It returns the number of
// component re-renders.
func (r *Root) Flush() (int, error) {
	total := 0
	for pass := 0; r.sched.Len() > 0; pass++ {
		if pass == r.maxPasses {
			return total, fmt.Errorf("%w: %d instances still pending after %d passes",
				ErrRefreshLoop, r.sched.Len(), pass)
		}
		total += r.sched.Drain(func(in *engine.Instance) {
			if c, ok := r.components[in]; ok {
				c.update(r)
			}
		})
		r.mountPending()
	}
	return total, nil
}

// Unmount tears the whole tree down, firing unmount hooks.
func (r *Root) Unmount() {
	unmountAll(r, r.nodes)
	r.nodes = nil
}

// Find returns the first element, in document order, whose attribute
// name has the given value.
func (r *Root) Find(name, value string) *Element {
	var found *Element
	walk(r.nodes, func(n Node) bool {
		if el, ok := n.(*Element); ok {
			if v, ok := el.Attr(name); ok && v == value {
				found = el
				return false
			}
		}
		return true
	})
	return found
}

// Directives returns every mounted directive in document order.
func (r *Root) Directives() []*Directive {
	var out []*Directive
	walk(r.nodes, func(n Node) bool {
		if d, ok := n.(*Directive); ok {
			out = append(out, d)
		}
		return true
	})
	return out
}

// HTML serialises the tree as of the last pass.
func (r *Root) HTML() string {
	var sb strings.Builder
	for _, n := range r.nodes {
		n.writeHTML(r, &sb)
	}
	return sb.String()
}

func (r *Root) mountPending() {
	pending := r.pendingMount
	r.pendingMount = nil
	for _, in := range pending {
		in.Mounted()
	}
}

// walk visits nodes depth first until fn returns false.
func walk(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		var children []Node
		switch n := n.(type) {
		case *Element:
			children = n.children
		case *Fragment:
			children = n.children
		case *Component:
			children = n.children
		case *Directive:
			for _, s := range n.slots {
				if !walk(s.children, fn) {
					return false
				}
			}
		}
		if !walk(children, fn) {
			return false
		}
	}
	return true
}
