package tree

import (
	"strings"

	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/lib/engine"
)

// Node is one node of a mounted tree.
type Node interface {
	update(r *Root)
	unmount(r *Root)
	writeHTML(r *Root, sb *strings.Builder)
}

// Text is a static or dynamic text node.
type Text struct {
	value  string
	source core.Accessor[string]
}

// Value returns the text as of the last pass.
func (t *Text) Value() string { return t.value }

// Dynamic reports whether the node re-reads an accessor on every pass.
func (t *Text) Dynamic() bool { return t.source != nil }

func (t *Text) update(*Root) {
	if t.source != nil {
		t.value = t.source()
	}
}

func (t *Text) unmount(*Root) {}

type attribute struct {
	name   string
	value  string
	source core.Accessor[string]
}

type listener struct {
	name    string
	handler core.Handler
	source  core.Accessor[core.Handler]
}

// Element is an element node.
type Element struct {
	Tag       string
	attrs     []*attribute
	listeners []*listener
	children  []Node
}

// Children returns the element's child nodes.
func (e *Element) Children() []Node { return e.children }

// Attr returns the value of the named attribute as of the last pass.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// Listening reports whether a non-nil handler is attached for event.
func (e *Element) Listening(event string) bool {
	for _, l := range e.listeners {
		if l.name == event && l.handler != nil {
			return true
		}
	}
	return false
}

// Dispatch calls every attached handler for event in binding order and
// reports whether any ran. Detached (nil) handlers are skipped.
func (e *Element) Dispatch(event string, arg any) bool {
	fired := false
	for _, l := range e.listeners {
		if l.name == event && l.handler != nil {
			l.handler(arg)
			fired = true
		}
	}
	return fired
}

// TextContent concatenates all text below the element.
func (e *Element) TextContent() string {
	var sb strings.Builder
	collectText(e.children, &sb)
	return sb.String()
}

func (e *Element) update(r *Root) {
	for _, a := range e.attrs {
		a.value = a.source()
	}
	for _, l := range e.listeners {
		l.handler = l.source()
	}
	updateAll(r, e.children)
}

func (e *Element) unmount(r *Root) {
	unmountAll(r, e.children)
}

// Fragment groups children without a wrapping node.
type Fragment struct {
	children []Node
}

// Children returns the fragment's child nodes.
func (f *Fragment) Children() []Node { return f.children }

func (f *Fragment) update(r *Root)  { updateAll(r, f.children) }
func (f *Fragment) unmount(r *Root) { unmountAll(r, f.children) }

// Component is a mounted component instance.
type Component struct {
	def      core.Definition
	inst     *engine.Instance
	props    core.Accessor[any]
	children []Node
}

// Name returns the component's name.
func (c *Component) Name() string { return c.def.Name() }

// Instance returns the component's runtime record.
func (c *Component) Instance() *engine.Instance { return c.inst }

// Children returns the component's rendered nodes.
func (c *Component) Children() []Node { return c.children }

func (c *Component) update(r *Root) {
	c.inst.Clean()
	updateAll(r, c.children)
	c.inst.Updated()
}

func (c *Component) unmount(r *Root) {
	unmountAll(r, c.children)
	c.inst.Unmounted()
	delete(r.components, c.inst)
	r.logger.Debug("component unmounted", "component", c.def.Name())
}

// slot holds one mounted block of a directive. ctx is what the block's
// template accessor reads.
type slot struct {
	key      core.Key
	ctx      any
	children []Node
}

// Directive is a mounted keyed-block sequence.
type Directive struct {
	source core.Accessor[[]core.Block]
	slots  []*slot
}

// Keys returns the keys of the mounted blocks in document order.
func (d *Directive) Keys() []core.Key {
	keys := make([]core.Key, len(d.slots))
	for i, s := range d.slots {
		keys[i] = s.key
	}
	return keys
}

// Block returns the nodes of the block mounted under key.
func (d *Directive) Block(key core.Key) ([]Node, bool) {
	for _, s := range d.slots {
		if s.key == key {
			return s.children, true
		}
	}
	return nil, false
}

func (d *Directive) unmount(r *Root) {
	for _, s := range d.slots {
		unmountAll(r, s.children)
	}
	d.slots = nil
}

func updateAll(r *Root, nodes []Node) {
	for _, n := range nodes {
		n.update(r)
	}
}

func unmountAll(r *Root, nodes []Node) {
	for _, n := range nodes {
		n.unmount(r)
	}
}

func collectText(nodes []Node, sb *strings.Builder) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			sb.WriteString(n.value)
		case *Element:
			collectText(n.children, sb)
		case *Fragment:
			collectText(n.children, sb)
		case *Component:
			collectText(n.children, sb)
		case *Directive:
			for _, s := range n.slots {
				collectText(s.children, sb)
			}
		}
	}
}
