package tree

import (
	"github.com/nimble-ui/core"
)

// patcher re-runs render instructions over an existing node list. Nodes are
// matched by position: an old node of the same kind (same tag, same
// component definition) is updated in place, anything else is unmounted
// and built afresh. Reused components keep their instance and state.
type patcher struct {
	root *Root
	old  []Node
	pos  int
	out  []Node
}

var _ core.Renderer = (*patcher)(nil)

// patch evaluates views against old and returns the resulting nodes. Old
// nodes left over at the end are unmounted.
func (r *Root) patch(old []Node, views ...core.Render) []Node {
	p := &patcher{root: r, old: old}
	for _, v := range views {
		v(p)
	}
	for _, n := range old[p.pos:] {
		n.unmount(r)
	}
	return p.out
}

// take returns the old node at the current position, or nil.
func (p *patcher) take() Node {
	if p.pos >= len(p.old) {
		return nil
	}
	n := p.old[p.pos]
	p.pos++
	return n
}

// replace unmounts n and appends what b builds in its place.
func (p *patcher) replace(n Node, build func(b *builder)) {
	if n != nil {
		n.unmount(p.root)
	}
	b := &builder{root: p.root}
	build(b)
	p.out = append(p.out, b.out...)
}

func (p *patcher) Text(value string) {
	n := p.take()
	if t, ok := n.(*Text); ok {
		t.value, t.source = value, nil
		p.out = append(p.out, t)
		return
	}
	p.replace(n, func(b *builder) { b.Text(value) })
}

func (p *patcher) Dynamic(value core.Accessor[string]) {
	n := p.take()
	if t, ok := n.(*Text); ok {
		t.value, t.source = value(), value
		p.out = append(p.out, t)
		return
	}
	p.replace(n, func(b *builder) { b.Dynamic(value) })
}

func (p *patcher) Element(tag string, attrs []core.Attrs, children []core.Render) {
	n := p.take()
	if el, ok := n.(*Element); ok && el.Tag == tag {
		el.attrs, el.listeners = nil, nil
		sink := attrSink{el: el}
		for _, a := range attrs {
			a(&sink)
		}
		el.children = p.root.patch(el.children, children...)
		p.out = append(p.out, el)
		return
	}
	p.replace(n, func(b *builder) { b.Element(tag, attrs, children) })
}

func (p *patcher) Fragment(children []core.Render) {
	n := p.take()
	if f, ok := n.(*Fragment); ok {
		f.children = p.root.patch(f.children, children...)
		p.out = append(p.out, f)
		return
	}
	p.replace(n, func(b *builder) { b.Fragment(children) })
}

func (p *patcher) Component(def core.Definition, props core.Accessor[any]) {
	n := p.take()
	if c, ok := n.(*Component); ok && c.def == def {
		c.props = props
		c.update(p.root)
		p.out = append(p.out, c)
		return
	}
	p.replace(n, func(b *builder) { b.Component(def, props) })
}

func (p *patcher) Directive(blocks core.Accessor[[]core.Block]) {
	n := p.take()
	if d, ok := n.(*Directive); ok {
		d.source = blocks
		d.update(p.root)
		p.out = append(p.out, d)
		return
	}
	p.replace(n, func(b *builder) { b.Directive(blocks) })
}
