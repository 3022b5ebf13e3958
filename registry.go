package core

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// DefaultPath is where the registry handler is mounted unless configured
// otherwise.
const DefaultPath = "/_nb/"

// Registry serves components over HTTP so a client can re-render one
// component with the props it was last rendered with. Pages rendered
// through the registry carry encoded props on every component boundary
// (see WithPropsEncoder); a GET to URL(def, props) returns that component's
// fresh markup.
//
//	reg := core.NewRegistry(key)
//	reg.Add(TodoList, Counter)
//	mux.Handle(core.DefaultPath, reg.Handler())
//	mux.Handle("/", reg.Page(views.Home()))
type Registry struct {
	mu         sync.RWMutex
	encoder    *Encoder
	components map[string]Definition
	path       string
	markers    bool
	logger     *slog.Logger

	// OnError is called when decoding or rendering fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPath sets the URL prefix components are served under. Defaults to
// DefaultPath.
func WithPath(path string) RegistryOption {
	return func(reg *Registry) {
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		reg.path = path
	}
}

// WithLogger sets the registry's logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.logger = logger
	}
}

// WithMarkers enables block markers in everything the registry renders.
func WithMarkers(enabled bool) RegistryOption {
	return func(reg *Registry) {
		reg.markers = enabled
	}
}

// NewRegistry creates a registry whose props encoder is keyed with key.
func NewRegistry(key []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("core: failed to create encoder: %v", err))
	}

	reg := &Registry{
		encoder:    enc,
		components: make(map[string]Definition),
		path:       DefaultPath,
		logger:     discardLogger,
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if IsDecodeError(err) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Encoder returns the registry's props encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Path returns the URL prefix the handler expects.
func (reg *Registry) Path() string {
	return reg.path
}

// Add registers components. Panics on a name collision or a name that
// cannot be used as a path segment.
func (reg *Registry) Add(defs ...Definition) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, def := range defs {
		name := def.Name()
		if name == "" || strings.ContainsAny(name, "/?#") {
			panic(fmt.Sprintf("core: invalid component name %q", name))
		}
		if _, exists := reg.components[name]; exists {
			panic(fmt.Sprintf("core: component name collision for %q", name))
		}
		reg.components[name] = def
	}
}

// Lookup returns the component registered under name.
func (reg *Registry) Lookup(name string) (Definition, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	def, ok := reg.components[name]
	return def, ok
}

// URL returns the re-render URL of def for props.
func (reg *Registry) URL(def Definition, props any) (string, error) {
	encoded, err := reg.encoder.Encode(props, isSensitive(def))
	if err != nil {
		return "", fmt.Errorf("core: encode props for %q: %w", def.Name(), err)
	}
	return reg.path + url.PathEscape(def.Name()) + "?p=" + encoded, nil
}

// HTMLOptions returns the render options matching the registry's
// configuration.
func (reg *Registry) HTMLOptions() []HTMLOption {
	opts := []HTMLOption{WithPropsEncoder(reg.encoder), WithHTMLLogger(reg.logger)}
	if reg.markers {
		opts = append(opts, WithBlockMarkers())
	}
	return opts
}

// Page returns a handler rendering view as a full response.
func (reg *Registry) Page(view Render) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reg.render(w, r, view)
	})
}

// Handler returns the HTTP handler for component routes.
// Mount this at the registry's path.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		name, ok := strings.CutPrefix(r.URL.Path, reg.path)
		if !ok {
			reg.fail(w, r, fmt.Errorf("%w: path %q", ErrNotFound, r.URL.Path))
			return
		}
		def, ok := reg.Lookup(name)
		if !ok {
			reg.fail(w, r, fmt.Errorf("%w: %q", ErrNotFound, name))
			return
		}

		props, err := def.DecodeProps(reg.encoder, r.FormValue("p"))
		if err != nil {
			reg.fail(w, r, wrapEncodingError(err))
			return
		}

		reg.logger.Debug("component re-render", "component", name, "target", TargetID(r))
		reg.render(w, r, func(rn Renderer) {
			rn.Component(def, func() any { return props })
		})
	})
}

// render buffers the output so a failed render never sends partial markup.
func (reg *Registry) render(w http.ResponseWriter, r *http.Request, view Render) {
	var buf bytes.Buffer
	if err := RenderHTML(r.Context(), &buf, view, reg.HTMLOptions()...); err != nil {
		reg.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (reg *Registry) fail(w http.ResponseWriter, r *http.Request, err error) {
	reg.logger.Warn("component request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	reg.OnError(w, r, err)
}
