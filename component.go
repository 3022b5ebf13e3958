package core

import "fmt"

// Definition is the non-generic view of a Component that renderers work
// with. Component[P] is the only implementation.
type Definition interface {
	// Name identifies the component for markers and HTTP routing.
	Name() string
	// Setup applies the component's middleware and returns its view. Engines
	// call it exactly once per instance.
	Setup(props Accessor[any], refresh func(), hooks Hooks) Render
	// DecodeProps decodes a transported props value into the component's
	// props type.
	DecodeProps(dec PropsDecoder, encoded string) (any, error)
}

// PropsDecoder decodes props transported as strings (see lib/encoding).
type PropsDecoder interface {
	Decode(encoded string, sensitive bool, v any) error
}

// Component[P] is a component identity. P is the props type.
//
// The setup function receives a Context and composes middleware to obtain
// the capabilities it needs:
//
//	var Counter = core.NewComponent("counter", func(ctx core.Context[CounterProps]) core.Render {
//	    label := core.Prop(func(p CounterProps) string { return p.Label })(ctx)
//	    count := core.State[CounterProps](0)(ctx)
//	    return core.E("button",
//	        []core.Attrs{core.On("click", core.Static[core.Handler](func(any) {
//	            count.Update(func(n int) int { return n + 1 })
//	        }))},
//	        core.Dyn(func() string { return fmt.Sprintf("%s: %d", label(), count.Get()) }),
//	    )
//	})
type Component[P any] struct {
	name      string
	sensitive bool
	setup     func(ctx Context[P]) Render
}

// NewComponent creates a component identity.
func NewComponent[P any](name string, setup func(ctx Context[P]) Render) *Component[P] {
	return &Component[P]{name: name, setup: setup}
}

// Sensitive marks the component's transported props as encrypted rather
// than signed.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Setup builds the typed Context for one instance and runs the setup
// function.
func (c *Component[P]) Setup(props Accessor[any], refresh func(), hooks Hooks) Render {
	ctx := Context[P]{
		Props: func() P {
			v, _ := props().(P)
			return v
		},
		Refresh: refresh,
		On:      hooks,
	}
	return c.setup(ctx)
}

// DecodeProps decodes encoded into a fresh P.
func (c *Component[P]) DecodeProps(dec PropsDecoder, encoded string) (any, error) {
	var props P
	if encoded == "" {
		return props, nil
	}
	if err := dec.Decode(encoded, c.sensitive, &props); err != nil {
		return nil, fmt.Errorf("core: decode props for %q: %w", c.name, err)
	}
	return props, nil
}
