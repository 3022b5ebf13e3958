package tree

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nimble-ui/core"
)

type item struct {
	ID    string
	Title string
}

type listProps struct {
	Items []item
}

// hookLog collects lifecycle events across components.
type hookLog []string

func (l *hookLog) add(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

type rowProps struct {
	ID string
}

// newRow returns a component that logs its lifecycle under its ID.
func newRow(log *hookLog) *core.Component[rowProps] {
	return core.NewComponent("row", func(ctx core.Context[rowProps]) core.Render {
		id := core.Prop(func(p rowProps) string { return p.ID })(ctx)
		hooks := core.Lifecycle[rowProps]()(ctx)
		created := id()
		hooks.OnMount(func() { log.add("mount %s", created) })
		hooks.OnUnmount(func() { log.add("unmount %s", created) })
		return core.E("span", nil, core.Dyn(id))
	})
}

func TestMountAndHTML(t *testing.T) {
	view := core.E("div", []core.Attrs{core.Attr("id", core.Static("root"))},
		core.T("a & b"),
		core.E("br", nil),
		core.F(core.T("x"), core.T("y")),
	)
	root := Mount(view)
	if got, want := root.HTML(), `<div id="root">a &amp; b<br>xy</div>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if el := root.Find("id", "root"); el == nil || el.Tag != "div" {
		t.Errorf("Find() = %v", el)
	}
	if root.Find("id", "missing") != nil {
		t.Error("Find() returned an element for a missing id")
	}
}

func TestUpdateReevaluatesDynamicParts(t *testing.T) {
	title, class := "one", "a"
	view := core.E("p", []core.Attrs{core.Attr("class", func() string { return class })},
		core.T("static "), core.Dyn(func() string { return title }))

	root := Mount(view)
	title, class = "two", "b"
	if got := root.HTML(); got != `<p class="a">static one</p>` {
		t.Errorf("HTML() before Update = %q", got)
	}
	root.Update()
	if got := root.HTML(); got != `<p class="b">static two</p>` {
		t.Errorf("HTML() after Update = %q", got)
	}
}

var counter = core.NewComponent("counter", func(ctx core.Context[struct{}]) core.Render {
	count := core.State[struct{}](0)(ctx)
	return core.E("button",
		[]core.Attrs{
			core.Attr("id", core.Static("inc")),
			core.On("click", core.Static[core.Handler](func(any) {
				count.Update(func(n int) int { return n + 1 })
			})),
		},
		core.Dyn(func() string { return strconv.Itoa(count.Get()) }),
	)
})

func TestRefreshIsBatchedUntilFlush(t *testing.T) {
	root := Mount(core.C(counter, core.Static(struct{}{})))
	btn := root.Find("id", "inc")
	if btn == nil {
		t.Fatal("button not found")
	}

	for i := 0; i < 3; i++ {
		if !btn.Dispatch("click", nil) {
			t.Fatal("click handler not attached")
		}
	}
	if got := btn.TextContent(); got != "0" {
		t.Errorf("text before Flush = %q, want unchanged %q", got, "0")
	}
	if root.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", root.Pending())
	}

	n, err := root.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Flush() re-rendered %d times, want 1", n)
	}
	if got := btn.TextContent(); got != "3" {
		t.Errorf("text after Flush = %q, want %q", got, "3")
	}
	if n, _ := root.Flush(); n != 0 {
		t.Errorf("second Flush() re-rendered %d times, want 0", n)
	}
}

func TestListenerDetach(t *testing.T) {
	enabled := true
	fired := 0
	view := core.E("button", []core.Attrs{
		core.Attr("id", core.Static("b")),
		core.On("click", func() core.Handler {
			if !enabled {
				return nil
			}
			return func(any) { fired++ }
		}),
	})

	root := Mount(view)
	btn := root.Find("id", "b")
	btn.Dispatch("click", nil)

	enabled = false
	root.Update()
	if btn.Listening("click") {
		t.Error("nil handler did not detach")
	}
	if btn.Dispatch("click", nil) {
		t.Error("Dispatch reported a detached handler as fired")
	}
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
}

func TestEachKeyedReorderRetainsNodes(t *testing.T) {
	var log hookLog
	row := newRow(&log)
	items := []item{{ID: "x"}, {ID: "y"}, {ID: "z"}}

	view := core.E("ul", nil, core.Each(func() []item { return items },
		func(it core.Accessor[item], _ core.Accessor[int], _ core.Accessor[[]item]) core.Render {
			return core.C(row, func() rowProps { return rowProps{ID: it().ID} })
		},
		core.TrackBy(func(it item, _ int, _ []item) any { return it.ID }),
	))
	root := Mount(view)
	d := root.Directives()[0]

	before := map[string]Node{}
	for _, id := range []string{"x", "y", "z"} {
		nodes, ok := d.Block(core.ItemKey(id))
		if !ok {
			t.Fatalf("block %s not mounted", id)
		}
		before[id] = nodes[0]
	}

	items = []item{{ID: "z"}, {ID: "x"}, {ID: "y"}}
	root.Update()

	wantKeys := []core.Key{core.ItemKey("z"), core.ItemKey("x"), core.ItemKey("y")}
	if diff := cmp.Diff(wantKeys, d.Keys(), cmp.Comparer(func(a, b core.Key) bool { return a == b })); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	for id, node := range before {
		nodes, _ := d.Block(core.ItemKey(id))
		if nodes[0] != node {
			t.Errorf("block %s was remounted on reorder", id)
		}
	}
	if got := root.HTML(); got != "<ul><span>z</span><span>x</span><span>y</span></ul>" {
		t.Errorf("HTML() = %q", got)
	}

	wantLog := hookLog{"mount x", "mount y", "mount z"}
	if diff := cmp.Diff(wantLog, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
}

func TestEachInsertRemoveAndEmpty(t *testing.T) {
	var log hookLog
	row := newRow(&log)
	items := []item{{ID: "a"}, {ID: "b"}}

	view := core.Each(func() []item { return items },
		func(it core.Accessor[item], _ core.Accessor[int], _ core.Accessor[[]item]) core.Render {
			return core.C(row, func() rowProps { return rowProps{ID: it().ID} })
		},
		core.TrackBy(func(it item, _ int, _ []item) any { return it.ID }),
		core.Empty[item](core.T("empty")),
	)
	root := Mount(view, WithMarkers())

	items = []item{{ID: "b"}, {ID: "c"}}
	root.Update()
	items = nil
	root.Update()

	wantLog := hookLog{"mount a", "mount b", "unmount a", "mount c", "unmount b", "unmount c"}
	if diff := cmp.Diff(wantLog, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if got, want := root.HTML(), "<!--nb:for:empty-->empty<!--/nb-->"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestEachPositionalTrackingMisattributes(t *testing.T) {
	var log hookLog
	row := newRow(&log)
	items := []item{{ID: "a"}, {ID: "b"}}

	view := core.Each(func() []item { return items },
		func(it core.Accessor[item], _ core.Accessor[int], _ core.Accessor[[]item]) core.Render {
			return core.C(row, func() rowProps { return rowProps{ID: it().ID} })
		},
	)
	root := Mount(view)

	// Removing the first item keeps block 0 and drops block 1: the row
	// created for "a" now shows "b".
	items = []item{{ID: "b"}}
	root.Update()

	wantLog := hookLog{"mount a", "mount b", "unmount b"}
	if diff := cmp.Diff(wantLog, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if got := root.HTML(); got != "<span>b</span>" {
		t.Errorf("HTML() = %q", got)
	}
}

func TestWhenSwitchRemounts(t *testing.T) {
	var log hookLog
	row := newRow(&log)
	on := true

	view := core.When(func() bool { return on },
		core.C(row, core.Static(rowProps{ID: "then"})),
		core.C(row, core.Static(rowProps{ID: "else"})),
	)
	root := Mount(view)
	root.Update()

	on = false
	root.Update()
	on = true
	root.Update()

	wantLog := hookLog{"mount then", "unmount then", "mount else", "unmount else", "mount then"}
	if diff := cmp.Diff(wantLog, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if keys := root.Directives()[0].Keys(); len(keys) != 1 || keys[0] != core.ThenKey() {
		t.Errorf("keys = %v", keys)
	}
}

func TestMountHooksFireChildrenFirst(t *testing.T) {
	var log hookLog
	child := core.NewComponent("child", func(ctx core.Context[string]) core.Render {
		name := ctx.Props()
		ctx.On.OnMount(func() { log.add("mount %s", name) })
		return core.F()
	})
	parent := core.NewComponent("parent", func(ctx core.Context[string]) core.Render {
		ctx.On.OnMount(func() { log.add("mount parent") })
		ctx.On.OnUnmount(func() { log.add("unmount parent") })
		return core.F(core.C(child, core.Static("c1")), core.C(child, core.Static("c2")))
	})

	root := Mount(core.C(parent, core.Static("")))
	root.Unmount()

	want := hookLog{"mount c1", "mount c2", "mount parent", "unmount parent"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if root.HTML() != "" {
		t.Errorf("HTML() after Unmount = %q", root.HTML())
	}
}

func TestRetainedBlockSeesNewContext(t *testing.T) {
	items := []item{{ID: "k", Title: "old"}}
	view := core.Each(func() []item { return items },
		func(it core.Accessor[item], idx core.Accessor[int], _ core.Accessor[[]item]) core.Render {
			return core.Dyn(func() string { return fmt.Sprintf("%d:%s", idx(), it().Title) })
		},
		core.TrackBy(func(it item, _ int, _ []item) any { return it.ID }),
	)
	root := Mount(view)

	items = []item{{ID: "n", Title: "new"}, {ID: "k", Title: "renamed"}}
	root.Update()
	if got := root.HTML(); got != "0:new1:renamed" {
		t.Errorf("HTML() = %q, want %q", got, "0:new1:renamed")
	}
}

func TestRetainedBlockRerunsTemplate(t *testing.T) {
	title := "old"
	view := core.Directive(func() []core.Block {
		return []core.Block{core.NewBlock(core.BlockKey("k"),
			func(ctx core.Accessor[string]) core.Render { return core.T(ctx()) },
			title)}
	})
	root := Mount(view)

	title = "new"
	root.Update()
	if got := root.HTML(); got != "new" {
		t.Errorf("HTML() = %q, want %q", got, "new")
	}
}

func TestEachEagerItemReadKeepsElement(t *testing.T) {
	items := []item{{ID: "k", Title: "old"}}
	view := core.Each(func() []item { return items },
		func(it core.Accessor[item], _ core.Accessor[int], _ core.Accessor[[]item]) core.Render {
			return core.E("li", nil, core.T(it().Title))
		},
		core.TrackBy(func(it item, _ int, _ []item) any { return it.ID }),
	)
	root := Mount(view)
	d := root.Directives()[0]
	before, _ := d.Block(core.ItemKey("k"))

	items = []item{{ID: "k", Title: "new"}}
	root.Update()

	if got := root.HTML(); got != "<li>new</li>" {
		t.Errorf("HTML() = %q, want %q", got, "<li>new</li>")
	}
	after, _ := d.Block(core.ItemKey("k"))
	if after[0] != before[0] {
		t.Error("element was rebuilt instead of patched")
	}
}

func TestRetainedBlockPatchesByPosition(t *testing.T) {
	var log hookLog
	row := newRow(&log)
	ctxValue := "a"
	view := core.Directive(func() []core.Block {
		return []core.Block{core.NewBlock(core.BlockKey("k"),
			func(ctx core.Accessor[string]) core.Render {
				switch v := ctx(); v {
				case "":
					return core.T("none")
				case "i":
					return core.E("i", nil, core.T(v))
				default:
					return core.C(row, core.Static(rowProps{ID: v}))
				}
			},
			ctxValue)}
	})
	root := Mount(view)

	steps := []struct {
		value string
		html  string
		log   hookLog
	}{
		{"b", "<span>b</span>", hookLog{"mount a"}},
		{"", "none", hookLog{"mount a", "unmount a"}},
		{"i", "<i>i</i>", hookLog{"mount a", "unmount a"}},
	}
	for _, step := range steps {
		ctxValue = step.value
		root.Update()
		if got := root.HTML(); got != step.html {
			t.Errorf("context %q: HTML() = %q, want %q", step.value, got, step.html)
		}
		if diff := cmp.Diff(step.log, log); diff != "" {
			t.Errorf("context %q: lifecycle mismatch (-want +got):\n%s", step.value, diff)
		}
	}
}

var looper = core.NewComponent("looper", func(ctx core.Context[struct{}]) core.Render {
	refresh := core.Refresh[struct{}]()(ctx)
	ctx.On.OnUpdate(refresh)
	ctx.On.OnMount(refresh)
	return core.F()
})

func TestFlushDetectsRefreshLoop(t *testing.T) {
	root := Mount(core.C(looper, core.Static(struct{}{})), WithMaxPasses(3))
	n, err := root.Flush()
	if !errors.Is(err, ErrRefreshLoop) {
		t.Fatalf("Flush() error = %v, want ErrRefreshLoop", err)
	}
	if n != 3 {
		t.Errorf("Flush() re-rendered %d times before giving up, want 3", n)
	}
}

func TestUnmountedComponentIgnoresRefresh(t *testing.T) {
	show := true
	var refresh func()
	comp := core.NewComponent("c", func(ctx core.Context[struct{}]) core.Render {
		refresh = ctx.Refresh
		return core.T("c")
	})
	root := Mount(core.When(func() bool { return show }, core.C(comp, core.Static(struct{}{}))))

	show = false
	root.Update()
	refresh()
	if root.Pending() != 0 {
		t.Errorf("Pending() = %d after refreshing an unmounted component", root.Pending())
	}
}

func TestHTMLSkipsInvalidNames(t *testing.T) {
	view := core.F(
		core.E("p", []core.Attrs{
			core.Attr(`x" onclick="y`, core.Static("v")),
			core.Attr("class", core.Static("ok")),
		}, core.T("kept")),
		core.E("a b", nil, core.T("dropped")),
	)
	if got, want := Mount(view).HTML(), `<p class="ok">kept</p>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
