// Package nbecho mounts a component registry on the Echo framework.
//
//	e := echo.New()
//	reg := nbecho.Mount(e, nbecho.WithKey(key))
//	reg.Add(TodoList, Counter)
//	e.GET("/", nbecho.Page(reg, views.Home()))
//
// Or mount on a group so component routes share its middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := nbecho.MountGroup(g, "/app")
package nbecho

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nimble-ui/core"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	regOpts []core.RegistryOption
}

// WithKey sets the props encryption key. It should be at least 32 bytes of
// random data. Without it a random key is generated, which only suits
// development: encoded props do not survive a restart.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithRegistryOptions passes options through to core.NewRegistry.
func WithRegistryOptions(opts ...core.RegistryOption) Option {
	return func(o *options) {
		o.regOpts = append(o.regOpts, opts...)
	}
}

// Mount creates a registry and serves its components on e.
func Mount(e *echo.Echo, opts ...Option) *core.Registry {
	reg := newRegistry(opts)
	e.Any(reg.Path()+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and serves its components on g, whose
// prefix must be passed as prefix. The configured path is taken relative to
// the group, so URLs built by the registry include the prefix.
//
//	g := e.Group("/app", authMiddleware)
//	reg := nbecho.MountGroup(g, "/app") // components under /app/_nb/
func MountGroup(g *echo.Group, prefix string, opts ...Option) *core.Registry {
	reg := newRegistry(opts)
	rel := reg.Path()
	core.WithPath(strings.TrimSuffix(prefix, "/") + rel)(reg)
	g.Any(rel+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountConfig creates a registry from cfg and serves it on e.
func MountConfig(e *echo.Echo, cfg *core.Config, opts ...core.RegistryOption) *core.Registry {
	reg := cfg.NewRegistry(opts...)
	e.Any(reg.Path()+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(opts []Option) *core.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("nbecho: failed to generate random key: %v", err))
		}
	}
	return core.NewRegistry(key, o.regOpts...)
}

// Render writes view to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return nbecho.Render(c, views.About())
//	}
func Render(c echo.Context, view core.Render, opts ...core.HTMLOption) error {
	return core.Respond(c.Response(), c.Request(), view, opts...)
}

// Page returns a handler rendering view through reg, so its components
// carry encoded props and can be re-rendered on their own.
func Page(reg *core.Registry, view core.Render) echo.HandlerFunc {
	return echo.WrapHandler(reg.Page(view))
}
