package core

import (
	"bytes"
	"context"
	"strings"
)

// Call is one renderer or attribute-sink call captured by a Recorder.
// Accessors are read once at record time and their value stored in Value.
type Call struct {
	Method   string
	Name     string
	Value    string
	Attrs    []Call
	Children []Call
}

// Recorder is a Renderer and AttrSink that records calls as a tree instead
// of producing output. Use it to assert on the instruction stream a view
// produces:
//
//	var rec core.Recorder
//	view(&rec)
//	if diff := cmp.Diff(want, rec.Calls); diff != "" { ... }
//
// Components are recorded by name and not instantiated. Directive blocks
// are recorded as "block" calls named by Key.String, with the block's
// template output as children.
type Recorder struct {
	Calls []Call
}

// Record invokes view against a fresh Recorder and returns its calls.
func Record(view Render) []Call {
	var rec Recorder
	view(&rec)
	return rec.Calls
}

func (rec *Recorder) Text(value string) {
	rec.Calls = append(rec.Calls, Call{Method: "text", Value: value})
}

func (rec *Recorder) Dynamic(value Accessor[string]) {
	rec.Calls = append(rec.Calls, Call{Method: "dynamic", Value: value()})
}

func (rec *Recorder) Element(tag string, attrs []Attrs, children []Render) {
	var sink Recorder
	for _, a := range attrs {
		a(&sink)
	}
	rec.Calls = append(rec.Calls, Call{
		Method:   "element",
		Name:     tag,
		Attrs:    sink.Calls,
		Children: recordAll(children),
	})
}

func (rec *Recorder) Component(def Definition, props Accessor[any]) {
	rec.Calls = append(rec.Calls, Call{Method: "component", Name: def.Name()})
}

func (rec *Recorder) Fragment(children []Render) {
	rec.Calls = append(rec.Calls, Call{Method: "fragment", Children: recordAll(children)})
}

func (rec *Recorder) Directive(blocks Accessor[[]Block]) {
	var out []Call
	for _, b := range blocks() {
		ctx := b.Context
		out = append(out, Call{
			Method:   "block",
			Name:     b.ID.String(),
			Children: Record(b.Template(func() any { return ctx })),
		})
	}
	rec.Calls = append(rec.Calls, Call{Method: "directive", Children: out})
}

func (rec *Recorder) Attr(name string, value Accessor[string]) {
	rec.Calls = append(rec.Calls, Call{Method: "attr", Name: name, Value: value()})
}

func (rec *Recorder) On(name string, handler Accessor[Handler]) {
	v := "detached"
	if handler() != nil {
		v = "attached"
	}
	rec.Calls = append(rec.Calls, Call{Method: "on", Name: name, Value: v})
}

func recordAll(views []Render) []Call {
	var rec Recorder
	for _, v := range views {
		v(&rec)
	}
	return rec.Calls
}

// TestResult holds the HTML produced by RenderTest.
type TestResult struct {
	HTML string
}

// HTMLContains checks whether the output contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLNotContains checks whether the output does not contain substr.
func (r *TestResult) HTMLNotContains(substr string) bool {
	return !strings.Contains(r.HTML, substr)
}

// RenderTest renders view with the HTML renderer and returns testable
// output. Block markers are enabled so tests can assert on keys.
//
//	result, err := core.RenderTest(view)
//	if !result.HTMLContains("<!--nb:for:item(1)-->") { ... }
func RenderTest(view Render, opts ...HTMLOption) (*TestResult, error) {
	var buf bytes.Buffer
	opts = append([]HTMLOption{WithBlockMarkers()}, opts...)
	if err := RenderHTML(context.Background(), &buf, view, opts...); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String()}, nil
}
