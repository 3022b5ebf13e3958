package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/a-h/templ"

	"github.com/nimble-ui/core/lib/engine"
)

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag is an HTML void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// IsValidName reports whether s can be written as a tag or attribute name
// without breaking the surrounding markup.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c <= ' ' || c == 0x7f || strings.ContainsRune(`"'<>/=`, c) {
			return false
		}
	}
	return true
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*htmlOptions)

type htmlOptions struct {
	markers bool
	encoder *Encoder
	logger  *slog.Logger
}

// WithBlockMarkers brackets every directive block with comments carrying
// its key, so a client can pick up reconciliation where the server left off:
//
//	<!--nb:for:item(42)-->...<!--/nb-->
func WithBlockMarkers() HTMLOption {
	return func(o *htmlOptions) {
		o.markers = true
	}
}

// WithPropsEncoder wraps every component in an <nb-component> element whose
// props attribute holds the encoded props, which the Registry accepts to
// re-render that component on its own.
func WithPropsEncoder(enc *Encoder) HTMLOption {
	return func(o *htmlOptions) {
		o.encoder = enc
	}
}

// WithHTMLLogger sets the logger used for debug output.
func WithHTMLLogger(logger *slog.Logger) HTMLOption {
	return func(o *htmlOptions) {
		o.logger = logger
	}
}

// HTMLRenderer is the string-serialising backend. It evaluates every
// accessor once, so it suits server-side and static rendering where there
// is no second pass.
//
// Component instances live for one render: setup runs, the view is written,
// and the instance is dropped. Lifecycle hooks never fire and refresh calls
// are only logged.
//
// Write errors are sticky: after the first failure the renderer stops
// writing and Err returns that failure.
type HTMLRenderer struct {
	ctx  context.Context
	w    io.Writer
	opts htmlOptions
	err  error
}

var (
	_ Renderer = (*HTMLRenderer)(nil)
	_ AttrSink = (*htmlAttrs)(nil)
)

// NewHTMLRenderer creates a renderer writing to w.
func NewHTMLRenderer(ctx context.Context, w io.Writer, opts ...HTMLOption) *HTMLRenderer {
	o := htmlOptions{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return &HTMLRenderer{ctx: ctx, w: w, opts: o}
}

// RenderHTML writes view to w as HTML.
func RenderHTML(ctx context.Context, w io.Writer, view Render, opts ...HTMLOption) error {
	h := NewHTMLRenderer(ctx, w, opts...)
	view(h)
	return h.Err()
}

// RenderString renders view to a string.
func RenderString(view Render, opts ...HTMLOption) (string, error) {
	var sb strings.Builder
	if err := RenderHTML(context.Background(), &sb, view, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Templ adapts view to a templ.Component so it can be embedded in templ
// layouts:
//
//	@core.Templ(views.TodoList(store))
func Templ(view Render, opts ...HTMLOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderHTML(ctx, w, view, opts...)
	})
}

// Err returns the first error encountered while rendering.
func (h *HTMLRenderer) Err() error {
	return h.err
}

func (h *HTMLRenderer) write(s string) {
	if h.err != nil {
		return
	}
	if _, err := io.WriteString(h.w, s); err != nil {
		h.err = fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
}

func (h *HTMLRenderer) fail(err error) {
	if h.err == nil {
		h.err = fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
}

func (h *HTMLRenderer) Text(value string) {
	h.write(templ.EscapeString(value))
}

func (h *HTMLRenderer) Dynamic(value Accessor[string]) {
	h.write(templ.EscapeString(value()))
}

func (h *HTMLRenderer) Element(tag string, attrs []Attrs, children []Render) {
	if h.err != nil {
		return
	}
	if err := h.ctx.Err(); err != nil {
		h.fail(err)
		return
	}
	if !IsValidName(tag) {
		h.fail(fmt.Errorf("invalid tag %q", tag))
		return
	}

	h.write("<" + tag)
	sink := htmlAttrs{h: h}
	for _, a := range attrs {
		a(&sink)
	}
	h.write(">")

	if IsVoidElement(tag) {
		if len(children) > 0 {
			h.opts.logger.Debug("children of void element dropped", "tag", tag, "count", len(children))
		}
		return
	}
	h.children(children)
	h.write("</" + tag + ">")
}

func (h *HTMLRenderer) Fragment(children []Render) {
	h.children(children)
}

func (h *HTMLRenderer) children(children []Render) {
	for _, child := range children {
		if h.err != nil {
			return
		}
		child(h)
	}
}

func (h *HTMLRenderer) Component(def Definition, props Accessor[any]) {
	if h.err != nil {
		return
	}
	name := def.Name()
	inst := engine.New(func(*engine.Instance) {
		h.opts.logger.Debug("refresh ignored during server render", "component", name)
	})
	view := def.Setup(props, inst.Refresh, inst)

	if h.opts.encoder == nil {
		view(h)
		return
	}

	encoded, err := h.opts.encoder.Encode(props(), isSensitive(def))
	if err != nil {
		h.fail(fmt.Errorf("encode props for %q: %w", name, err))
		return
	}
	h.write(`<nb-component name="` + templ.EscapeString(name) + `" props="` + templ.EscapeString(encoded) + `">`)
	view(h)
	h.write("</nb-component>")
}

func (h *HTMLRenderer) Directive(blocks Accessor[[]Block]) {
	for _, b := range blocks() {
		if h.err != nil {
			return
		}
		if h.opts.markers {
			h.write(BlockMarker(b.ID))
		}
		ctx := b.Context
		b.Template(func() any { return ctx })(h)
		if h.opts.markers {
			h.write(BlockMarkerEnd)
		}
	}
}

// htmlAttrs writes attributes of the element currently being opened.
type htmlAttrs struct {
	h *HTMLRenderer
}

func (s *htmlAttrs) Attr(name string, value Accessor[string]) {
	if !IsValidName(name) {
		s.h.fail(fmt.Errorf("invalid attribute name %q", name))
		return
	}
	s.h.write(" " + name + `="` + templ.EscapeString(value()) + `"`)
}

// On is a no-op: listeners cannot be serialised.
func (s *htmlAttrs) On(name string, handler Accessor[Handler]) {}

// BlockMarkerEnd closes the comment pair opened by BlockMarker.
const BlockMarkerEnd = "<!--/nb-->"

// BlockMarker returns the comment opening a block keyed k. The key text is
// escaped so it cannot terminate the comment.
func BlockMarker(k Key) string {
	return "<!--nb:" + strings.ReplaceAll(templ.EscapeString(k.String()), "--", "&#45;&#45;") + "-->"
}

func isSensitive(def Definition) bool {
	s, ok := def.(interface{ IsSensitive() bool })
	return ok && s.IsSensitive()
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
