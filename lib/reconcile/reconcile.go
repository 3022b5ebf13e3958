// Package reconcile computes keyed diffs between two ordered key sequences.
//
// Per pass every previous key is either retained or removed, and every next
// key is either retained or new. There is no separate "moved" state: a
// retained key at a different position is expressed by its place in the
// next sequence.
package reconcile

// State is the reconciliation state of one entry of the next sequence.
type State uint8

const (
	// New means the key was absent from the previous sequence.
	New State = iota + 1
	// Retained means the key matched an entry of the previous sequence.
	Retained
)

func (s State) String() string {
	switch s {
	case New:
		return "new"
	case Retained:
		return "retained"
	default:
		return "unknown"
	}
}

// Op describes one entry of the next sequence, in next order.
type Op[K comparable] struct {
	Key   K
	State State
	// From is the index in the previous sequence for Retained ops, -1 for New.
	From int
}

// Plan is the result of Diff.
type Plan[K comparable] struct {
	Ops []Op[K]
	// Removed lists previous indexes with no match, ascending.
	Removed []int
}

// Moved reports whether any retained entry changed relative order.
func (p Plan[K]) Moved() bool {
	last := -1
	for _, op := range p.Ops {
		if op.State != Retained {
			continue
		}
		if op.From < last {
			return true
		}
		last = op.From
	}
	return false
}

// Counts returns the number of retained, new and removed entries.
func (p Plan[K]) Counts() (retained, created, removed int) {
	for _, op := range p.Ops {
		if op.State == Retained {
			retained++
		} else {
			created++
		}
	}
	return retained, created, len(p.Removed)
}

// Diff matches next against prev by key.
//
// Keys are expected to be unique in each sequence. If they are not, the
// first occurrence in next claims the first unclaimed occurrence in prev,
// unmatched duplicates in next are New and unmatched ones in prev are
// Removed.
func Diff[K comparable](prev, next []K) Plan[K] {
	index := make(map[K][]int, len(prev))
	for i, k := range prev {
		index[k] = append(index[k], i)
	}

	claimed := make([]bool, len(prev))
	plan := Plan[K]{Ops: make([]Op[K], 0, len(next))}
	for _, k := range next {
		op := Op[K]{Key: k, State: New, From: -1}
		if slots := index[k]; len(slots) > 0 {
			op.State = Retained
			op.From = slots[0]
			claimed[slots[0]] = true
			index[k] = slots[1:]
		}
		plan.Ops = append(plan.Ops, op)
	}

	for i, ok := range claimed {
		if !ok {
			plan.Removed = append(plan.Removed, i)
		}
	}
	return plan
}
