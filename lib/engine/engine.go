// Package engine provides the per-instance runtime that backends use to
// execute components: lifecycle hook registries, refresh tracking and a
// batching scheduler.
//
// The package has no dependency on the DSL. An *Instance satisfies
// core.Hooks structurally, and its Refresh method is what a component's
// Context.Refresh points at.
package engine

// Instance is the runtime record of one component instance.
//
// Instance is not safe for concurrent use; a mounted tree is driven from a
// single goroutine.
type Instance struct {
	mount    []func()
	update   []func()
	unmount  []func()
	schedule func(*Instance)

	dirty     bool
	refreshes int
	mounted   bool
	gone      bool
}

// New creates an instance. schedule is called on every Refresh and may be
// nil, in which case refreshes are only recorded.
func New(schedule func(*Instance)) *Instance {
	return &Instance{schedule: schedule}
}

// OnMount registers fn to run once the instance's first output is in place.
func (in *Instance) OnMount(fn func()) {
	in.mount = append(in.mount, fn)
}

// OnUpdate registers fn to run after every re-render of the instance.
func (in *Instance) OnUpdate(fn func()) {
	in.update = append(in.update, fn)
}

// OnUnmount registers fn to run when the instance is torn down.
func (in *Instance) OnUnmount(fn func()) {
	in.unmount = append(in.unmount, fn)
}

// Refresh marks the instance stale and hands it to the scheduler. It never
// re-renders synchronously. Refreshing an unmounted instance is a no-op.
func (in *Instance) Refresh() {
	if in.gone {
		return
	}
	in.refreshes++
	in.dirty = true
	if in.schedule != nil {
		in.schedule(in)
	}
}

// Dirty reports whether a refresh is pending.
func (in *Instance) Dirty() bool { return in.dirty }

// Clean clears the pending-refresh flag. Backends call it right before
// re-rendering so refreshes issued during the render are not lost.
func (in *Instance) Clean() { in.dirty = false }

// RefreshCount returns how many times Refresh was called while mounted.
func (in *Instance) RefreshCount() int { return in.refreshes }

// IsMounted reports whether Mounted ran and Unmounted has not.
func (in *Instance) IsMounted() bool { return in.mounted && !in.gone }

// Mounted fires mount hooks in registration order. Only the first call has
// an effect.
func (in *Instance) Mounted() {
	if in.mounted || in.gone {
		return
	}
	in.mounted = true
	for _, fn := range in.mount {
		fn()
	}
}

// Updated fires update hooks in registration order.
func (in *Instance) Updated() {
	if in.gone {
		return
	}
	for _, fn := range in.update {
		fn()
	}
}

// Unmounted fires unmount hooks in reverse registration order, so teardown
// mirrors setup. Only the first call has an effect.
func (in *Instance) Unmounted() {
	if in.gone {
		return
	}
	in.gone = true
	in.dirty = false
	for i := len(in.unmount) - 1; i >= 0; i-- {
		in.unmount[i]()
	}
}
