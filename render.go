package core

// Accessor is a live read of a value. Every call returns the latest logical
// value; callers must not cache the result across render passes.
type Accessor[T any] func() T

// Static returns an accessor that always yields v.
func Static[T any](v T) Accessor[T] {
	return func() T { return v }
}

// Handler is an event listener attached through On. A nil Handler means
// "no listener": renderers detach instead of failing.
type Handler func(event any)

// Render is a deferred render instruction. It performs no work until a
// Renderer invokes it, so a Render value can be built once and evaluated
// against any backend.
type Render func(r Renderer)

// Attrs is a deferred attribute instruction, evaluated against an AttrSink.
type Attrs func(s AttrSink)

// Renderer is the contract every backend implements. Structural calls receive
// instruction slices unevaluated and must invoke them in slice order.
type Renderer interface {
	Text(value string)
	Dynamic(value Accessor[string])
	Element(tag string, attrs []Attrs, children []Render)
	Component(def Definition, props Accessor[any])
	Fragment(children []Render)
	Directive(blocks Accessor[[]Block])
}

// AttrSink receives attribute and listener bindings for one element.
type AttrSink interface {
	Attr(name string, value Accessor[string])
	On(name string, handler Accessor[Handler])
}

// T renders static text. The value is never re-read, so use Dyn for
// anything that changes between passes.
func T(text string) Render {
	return func(r Renderer) {
		r.Text(text)
	}
}

// Dyn renders dynamic text. The accessor itself is forwarded so the renderer
// can re-invoke it on later passes.
func Dyn(value Accessor[string]) Render {
	return func(r Renderer) {
		r.Dynamic(value)
	}
}

// Attr binds an attribute to a dynamic value.
func Attr(name string, value Accessor[string]) Attrs {
	return func(s AttrSink) {
		s.Attr(name, value)
	}
}

// On binds an event to an accessor producing the current handler.
func On(name string, handler Accessor[Handler]) Attrs {
	return func(s AttrSink) {
		s.On(name, handler)
	}
}

// E renders an element. The order of attrs and children is significant.
//
//	core.E("button", []core.Attrs{core.On("click", onClick)}, core.T("Add"))
func E(tag string, attrs []Attrs, children ...Render) Render {
	return func(r Renderer) {
		r.Element(tag, attrs, children)
	}
}

// F renders a fragment: children grouped without a wrapping node.
func F(children ...Render) Render {
	return func(r Renderer) {
		r.Fragment(children)
	}
}

// C instantiates a component. The renderer owns instantiation, re-invocation
// and teardown; props stays live for the lifetime of the instance.
func C[P any](comp *Component[P], props Accessor[P]) Render {
	return func(r Renderer) {
		r.Component(comp, func() any { return props() })
	}
}
