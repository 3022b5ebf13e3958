package tree

import (
	"github.com/nimble-ui/core"
	"github.com/nimble-ui/core/lib/reconcile"
)

// update reconciles the mounted slots against the directive's current
// blocks. Retained slots get the new context and their template is re-run
// over the existing nodes, so nested component instances survive. New keys
// are mounted, missing keys are unmounted, and the slot order becomes the
// block order.
func (d *Directive) update(r *Root) {
	blocks := d.source()

	next := make([]core.Key, len(blocks))
	for i, b := range blocks {
		next[i] = b.ID
	}
	plan := reconcile.Diff(d.Keys(), next)

	for _, i := range plan.Removed {
		unmountAll(r, d.slots[i].children)
	}

	slots := make([]*slot, len(blocks))
	for i, op := range plan.Ops {
		if op.State == reconcile.Retained {
			s := d.slots[op.From]
			s.ctx = blocks[i].Context
			s.children = r.patch(s.children, blocks[i].Template(func() any { return s.ctx }))
			slots[i] = s
			continue
		}
		slots[i] = r.mountBlock(blocks[i])
	}
	d.slots = slots

	retained, created, removed := plan.Counts()
	r.logger.Debug("directive reconciled",
		"retained", retained, "new", created, "removed", removed, "moved", plan.Moved())
}
