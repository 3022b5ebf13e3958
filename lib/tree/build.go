package tree

import (
	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/lib/engine"
)

// builder turns render instructions into nodes appended to out.
type builder struct {
	root *Root
	out  []Node
}

var (
	_ core.Renderer = (*builder)(nil)
	_ core.AttrSink = (*attrSink)(nil)
)

// build evaluates views in order and returns the resulting nodes.
func (r *Root) build(views ...core.Render) []Node {
	b := &builder{root: r}
	for _, v := range views {
		v(b)
	}
	return b.out
}

func (b *builder) Text(value string) {
	b.out = append(b.out, &Text{value: value})
}

func (b *builder) Dynamic(value core.Accessor[string]) {
	b.out = append(b.out, &Text{value: value(), source: value})
}

func (b *builder) Element(tag string, attrs []core.Attrs, children []core.Render) {
	el := &Element{Tag: tag}
	sink := attrSink{el: el}
	for _, a := range attrs {
		a(&sink)
	}
	el.children = b.root.build(children...)
	b.out = append(b.out, el)
}

func (b *builder) Fragment(children []core.Render) {
	b.out = append(b.out, &Fragment{children: b.root.build(children...)})
}

// Component runs setup, builds the view, and queues the mount hooks so
// they fire children first once the surrounding pass completes.
func (b *builder) Component(def core.Definition, props core.Accessor[any]) {
	r := b.root
	inst := engine.New(r.sched.Schedule)
	c := &Component{def: def, inst: inst, props: props}
	r.components[inst] = c

	view := def.Setup(func() any { return c.props() }, inst.Refresh, inst)
	c.children = r.build(view)
	r.pendingMount = append(r.pendingMount, inst)
	r.logger.Debug("component mounted", "component", def.Name())

	b.out = append(b.out, c)
}

func (b *builder) Directive(blocks core.Accessor[[]core.Block]) {
	d := &Directive{source: blocks}
	for _, blk := range blocks() {
		d.slots = append(d.slots, b.root.mountBlock(blk))
	}
	b.out = append(b.out, d)
}

// mountBlock invokes the block's template; the accessor it receives reads
// the slot's current context.
func (r *Root) mountBlock(blk core.Block) *slot {
	s := &slot{key: blk.ID, ctx: blk.Context}
	view := blk.Template(func() any { return s.ctx })
	s.children = r.build(view)
	return s
}

type attrSink struct {
	el *Element
}

func (s *attrSink) Attr(name string, value core.Accessor[string]) {
	s.el.attrs = append(s.el.attrs, &attribute{name: name, value: value(), source: value})
}

func (s *attrSink) On(name string, handler core.Accessor[core.Handler]) {
	s.el.listeners = append(s.el.listeners, &listener{name: name, handler: handler(), source: handler})
}
