package core

import "fmt"

// KeyKind discriminates reconciliation keys.
type KeyKind uint8

const (
	// KeyBlock is a caller-chosen key for hand-built blocks.
	KeyBlock KeyKind = iota + 1
	// KeyThen marks the truthy branch of When.
	KeyThen
	// KeyElse marks the falsy branch of When.
	KeyElse
	// KeyEmpty marks the empty-list fallback of Each.
	KeyEmpty
	// KeyItem marks a list item; the payload is the trackBy result.
	KeyItem
)

// Key is the reconciliation identity of a Block. Two blocks are the same
// iff their keys are equal (==). The payload is kept as a value rather than
// spliced into a string, so a trackBy result containing "(" or ":" can never
// collide with another kind of key.
//
// The payload must be comparable. Keys with non-comparable payloads panic
// when compared; that is a caller error.
type Key struct {
	kind    KeyKind
	payload any
}

// BlockKey returns a caller-chosen key.
func BlockKey(id string) Key { return Key{kind: KeyBlock, payload: id} }

// ThenKey is the key of When's truthy branch.
func ThenKey() Key { return Key{kind: KeyThen} }

// ElseKey is the key of When's falsy branch.
func ElseKey() Key { return Key{kind: KeyElse} }

// EmptyKey is the key of Each's empty fallback.
func EmptyKey() Key { return Key{kind: KeyEmpty} }

// ItemKey is the key of a list item tracked by v.
func ItemKey(v any) Key { return Key{kind: KeyItem, payload: v} }

// Kind returns the key's discriminator.
func (k Key) Kind() KeyKind { return k.kind }

// Payload returns the block id or trackBy value, nil for marker keys.
func (k Key) Payload() any { return k.payload }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.kind == 0 }

// String renders the key in its textual form. It is meant for markers and
// logs only; identity is always Key equality.
func (k Key) String() string {
	switch k.kind {
	case KeyBlock:
		return fmt.Sprint(k.payload)
	case KeyThen:
		return "if:then"
	case KeyElse:
		return "if:else"
	case KeyEmpty:
		return "for:empty"
	case KeyItem:
		return fmt.Sprintf("for:item(%v)", k.payload)
	default:
		return ""
	}
}

// Block is the unit of keyed reconciliation. The renderer invokes Template
// with a live accessor over Context whenever the block's content needs
// (re)rendering, including when a retained block gets a new Context. Reads
// made while building the view see the context of that invocation; reads
// inside Dyn or Attr closures follow later updates as well.
type Block struct {
	ID       Key
	Template func(ctx Accessor[any]) Render
	Context  any
}

// NewBlock builds a Block with a typed template.
func NewBlock[C any](id Key, template func(ctx Accessor[C]) Render, ctx C) Block {
	return Block{
		ID: id,
		Template: func(acc Accessor[any]) Render {
			return template(func() C {
				v, _ := acc().(C)
				return v
			})
		},
		Context: ctx,
	}
}

// Directive forwards a block sequence to the renderer, which matches blocks
// across passes by ID, re-invokes templates of retained blocks, mounts new
// IDs and unmounts missing ones. Slice order is document order: a retained
// ID at a new position is a move, not a remount.
func Directive(blocks Accessor[[]Block]) Render {
	return func(r Renderer) {
		r.Directive(blocks)
	}
}

// When renders then while cond holds and alt (default: empty fragment)
// otherwise. The two branches have distinct keys, so flipping cond always
// remounts the other branch.
func When(cond Accessor[bool], then Render, alt ...Render) Render {
	return Directive(func() []Block {
		return WhenBlocks(cond, then, alt...)
	})
}

// WhenBlocks computes the single block yielded by When for the current
// value of cond.
func WhenBlocks(cond Accessor[bool], then Render, alt ...Render) []Block {
	if cond() {
		return []Block{staticBlock(ThenKey(), then)}
	}
	return []Block{staticBlock(ElseKey(), fallback(alt))}
}

// TrackFunc derives an item's reconciliation key. Results must be
// comparable and unique within one list; duplicates leave reconciliation
// undefined.
type TrackFunc[T any] func(item T, idx int, items []T) any

// EachOption configures Each.
type EachOption[T any] func(*eachOptions[T])

type eachOptions[T any] struct {
	trackBy TrackFunc[T]
	empty   Render
}

// TrackBy sets the key extractor. Without it items are tracked by position,
// which misattributes identity when items are inserted, removed or
// reordered anywhere but at the end of the list.
func TrackBy[T any](fn TrackFunc[T]) EachOption[T] {
	return func(o *eachOptions[T]) {
		o.trackBy = fn
	}
}

// Empty sets what Each renders for an empty list.
func Empty[T any](alt Render) EachOption[T] {
	return func(o *eachOptions[T]) {
		o.empty = alt
	}
}

// ItemRender renders one list item from live accessors. It runs again
// whenever the item's block is re-rendered, so reading item() eagerly is
// fine.
type ItemRender[T any] func(item Accessor[T], idx Accessor[int], array Accessor[[]T]) Render

// Each renders one keyed block per element of items, or a single empty
// block when there are none.
//
//	core.Each(todos, func(todo core.Accessor[Todo], _ core.Accessor[int], _ core.Accessor[[]Todo]) core.Render {
//	    return core.E("li", nil, core.Dyn(func() string { return todo().Title }))
//	}, core.TrackBy(func(t Todo, _ int, _ []Todo) any { return t.ID }))
func Each[T any](items Accessor[[]T], renderItem ItemRender[T], opts ...EachOption[T]) Render {
	return Directive(func() []Block {
		return EachBlocks(items, renderItem, opts...)
	})
}

// itemContext is the per-block context of an Each item.
type itemContext[T any] struct {
	item  T
	idx   int
	array []T
}

// EachBlocks computes the blocks Each yields for the current items.
func EachBlocks[T any](items Accessor[[]T], renderItem ItemRender[T], opts ...EachOption[T]) []Block {
	o := eachOptions[T]{trackBy: positional[T]}
	for _, opt := range opts {
		opt(&o)
	}

	list := items()
	if len(list) == 0 {
		alt := o.empty
		if alt == nil {
			alt = F()
		}
		return []Block{staticBlock(EmptyKey(), alt)}
	}

	blocks := make([]Block, 0, len(list))
	for idx, item := range list {
		blocks = append(blocks, NewBlock(
			ItemKey(o.trackBy(item, idx, list)),
			func(ctx Accessor[itemContext[T]]) Render {
				return renderItem(
					func() T { return ctx().item },
					func() int { return ctx().idx },
					func() []T { return ctx().array },
				)
			},
			itemContext[T]{item: item, idx: idx, array: list},
		))
	}
	return blocks
}

func positional[T any](_ T, idx int, _ []T) any {
	return idx
}

// staticBlock wraps a fixed Render as a context-free block.
func staticBlock(id Key, view Render) Block {
	return Block{
		ID:       id,
		Template: func(Accessor[any]) Render { return view },
	}
}

func fallback(alt []Render) Render {
	if len(alt) > 0 && alt[0] != nil {
		return alt[0]
	}
	return F()
}
