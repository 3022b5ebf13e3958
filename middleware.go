package core

// Hooks is the lifecycle registry supplied by the component engine. Its
// implementation and firing order belong to the engine.
type Hooks interface {
	OnMount(fn func())
	OnUpdate(fn func())
	OnUnmount(fn func())
}

// Context is the execution context an engine hands to a component instance.
type Context[P any] struct {
	Props   Accessor[P]
	Refresh func()
	On      Hooks
}

// Middleware turns a component context into one capability. Building a
// Middleware value never touches a context; applying it does, once per
// component instance.
type Middleware[P, C any] func(ctx Context[P]) C

// Prop returns a live projection of the props. Every read re-applies
// selector to the current props snapshot.
func Prop[P, T any](selector func(P) T) Middleware[P, Accessor[T]] {
	return func(ctx Context[P]) Accessor[T] {
		return func() T {
			return selector(ctx.Props())
		}
	}
}

// Refresh exposes the instance's refresh trigger.
func Refresh[P any]() Middleware[P, func()] {
	return func(ctx Context[P]) func() {
		return ctx.Refresh
	}
}

// Lifecycle exposes the engine's lifecycle registry as is.
func Lifecycle[P any]() Middleware[P, Hooks] {
	return func(ctx Context[P]) Hooks {
		return ctx.On
	}
}

// State returns a middleware creating a Cell owned by the component
// instance it is applied to.
func State[P, V any](init V) Middleware[P, *Cell[V]] {
	return func(ctx Context[P]) *Cell[V] {
		return &Cell[V]{value: init, refresh: ctx.Refresh}
	}
}

// Cell is single-owner mutable component state. Every write triggers a
// refresh, including writes of an equal value.
//
// Cell is not safe for concurrent use.
type Cell[V any] struct {
	value   V
	refresh func()
}

// Get returns the current value.
func (c *Cell[V]) Get() V {
	return c.value
}

// Set replaces the value and triggers a refresh.
func (c *Cell[V]) Set(v V) {
	c.value = v
	c.refresh()
}

// Update applies fn to the current value and triggers one refresh.
func (c *Cell[V]) Update(fn func(V) V) {
	c.Set(fn(c.value))
}
