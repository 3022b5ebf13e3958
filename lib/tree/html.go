package tree

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/nimble-ui/core"
)

func (t *Text) writeHTML(_ *Root, sb *strings.Builder) {
	sb.WriteString(templ.EscapeString(t.value))
}

// writeHTML skips an element with an invalid tag and any attribute with an
// invalid name.
func (e *Element) writeHTML(r *Root, sb *strings.Builder) {
	if !core.IsValidName(e.Tag) {
		r.logger.Warn("element with invalid tag skipped", "tag", e.Tag)
		return
	}
	sb.WriteString("<" + e.Tag)
	for _, a := range e.attrs {
		if !core.IsValidName(a.name) {
			r.logger.Warn("invalid attribute name skipped", "tag", e.Tag, "attr", a.name)
			continue
		}
		sb.WriteString(" " + a.name + `="` + templ.EscapeString(a.value) + `"`)
	}
	sb.WriteString(">")
	if core.IsVoidElement(e.Tag) {
		return
	}
	writeAll(r, e.children, sb)
	sb.WriteString("</" + e.Tag + ">")
}

func (f *Fragment) writeHTML(r *Root, sb *strings.Builder) {
	writeAll(r, f.children, sb)
}

func (c *Component) writeHTML(r *Root, sb *strings.Builder) {
	writeAll(r, c.children, sb)
}

func (d *Directive) writeHTML(r *Root, sb *strings.Builder) {
	for _, s := range d.slots {
		if r.markers {
			sb.WriteString(core.BlockMarker(s.key))
		}
		writeAll(r, s.children, sb)
		if r.markers {
			sb.WriteString(core.BlockMarkerEnd)
		}
	}
}

func writeAll(r *Root, nodes []Node, sb *strings.Builder) {
	for _, n := range nodes {
		n.writeHTML(r, sb)
	}
}
