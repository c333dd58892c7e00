package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/buildtree/internal/testutil"
	"github.com/atomicstack/buildtree/internal/tree"
	"pgregory.net/rapid"
)

func sampleTree() *tree.Tree {
	tr := tree.New("R")
	a := tree.AddChild(tr.Root, "A")
	tree.AddChild(a, "C")
	tree.AddChild(tr.Root, "B")
	return tr
}

func mustString(t *testing.T, tr *tree.Tree, opts Options) string {
	t.Helper()
	out, err := String(tr, opts)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func TestRenderGuideConnectors(t *testing.T) {
	got := mustString(t, sampleTree(), Options{Unicode: true})
	want := "R\n" +
		"├── A\n" +
		"│   └── C\n" +
		"└── B\n"
	if got != want {
		t.Fatalf("unexpected render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderGuidePartsPerNode(t *testing.T) {
	lines, err := Render(sampleTree(), Options{Unicode: true})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	last := func(l Line) string { return l.Prefix[len(l.Prefix)-1].Text }
	byText := map[string]Line{}
	for _, l := range lines {
		byText[l.Node.Text()] = l
	}
	if len(byText["R"].Prefix) != 0 {
		t.Fatalf("root must not carry a prefix")
	}
	if last(byText["A"]) != LineGuide.Part(Fork) {
		t.Fatalf("expected fork at A, got %q", last(byText["A"]))
	}
	if last(byText["B"]) != LineGuide.Part(End) {
		t.Fatalf("expected end at B, got %q", last(byText["B"]))
	}
	if last(byText["C"]) != LineGuide.Part(End) {
		t.Fatalf("expected end at only child C, got %q", last(byText["C"]))
	}
}

func TestRenderASCIIFallback(t *testing.T) {
	got := mustString(t, sampleTree(), Options{Unicode: false})
	want := "R\n" +
		"|-- A\n" +
		"|   `-- C\n" +
		"`-- B\n"
	if got != want {
		t.Fatalf("unexpected ascii render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTreeCanOptOutOfUnicode(t *testing.T) {
	tr := sampleTree()
	tr.Unicode = false
	got := mustString(t, tr, Options{Unicode: true})
	if strings.Contains(got, "├") {
		t.Fatalf("expected ascii guides when the tree opts out, got:\n%s", got)
	}
}

func TestRenderDeepSiblingsKeepVerticalLines(t *testing.T) {
	tr := tree.New("root")
	a := tree.AddChild(tr.Root, "a")
	tree.AddChild(a, "a1")
	a2 := tree.AddChild(a, "a2")
	tree.AddChild(a2, "a2x")
	tree.AddChild(tr.Root, "b")

	got := mustString(t, tr, Options{Unicode: true})
	want := "root\n" +
		"├── a\n" +
		"│   ├── a1\n" +
		"│   └── a2\n" +
		"│       └── a2x\n" +
		"└── b\n"
	if got != want {
		t.Fatalf("unexpected render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderWrapsLabelsUnderPrefix(t *testing.T) {
	tr := tree.New("R")
	tree.AddChild(tr.Root, "alpha beta gamma")
	tree.AddChild(tr.Root, "z")

	got := mustString(t, tr, Options{Unicode: true, MaxWidth: 12})
	want := "R\n" +
		"├── alpha\n" +
		"│   beta\n" +
		"│   gamma\n" +
		"└── z\n"
	if got != want {
		t.Fatalf("unexpected wrapped render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderWrappedLastSiblingUsesSpace(t *testing.T) {
	tr := tree.New("R")
	tree.AddChild(tr.Root, "alpha beta")

	got := mustString(t, tr, Options{Unicode: true, MaxWidth: 9})
	want := "R\n" +
		"└── alpha\n" +
		"    beta\n"
	if got != want {
		t.Fatalf("unexpected wrapped render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderHardWrapsLongWords(t *testing.T) {
	tr := tree.New("R")
	tree.AddChild(tr.Root, "abcdefgh")

	lines, err := Render(tr, Options{Unicode: true, MaxWidth: 8})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected root plus two wrapped rows, got %d:\n%s", len(lines), lines.String())
	}
	if lines[1].Content[0].Text != "abcd" || lines[2].Content[0].Text != "efgh" {
		t.Fatalf("unexpected hard wrap: %q / %q", lines[1].Content[0].Text, lines[2].Content[0].Text)
	}
	if !lines[2].Continuation || lines[1].Continuation {
		t.Fatalf("expected only the second row to be a continuation")
	}
}

func TestRenderWideRuneNarrowerThanWidth(t *testing.T) {
	tr := tree.New("R")
	tree.AddChild(tr.Root, "漢字")

	got := mustString(t, tr, Options{Unicode: true, MaxWidth: 5})
	want := "R\n" +
		"└── 漢\n" +
		"    字\n"
	if got != want {
		t.Fatalf("unexpected wrapped render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderMultilineLabelWithChildren(t *testing.T) {
	tr := tree.New("R")
	n := tree.AddChild(tr.Root, "first\nsecond")
	tree.AddChild(n, "child")
	tree.AddChild(tr.Root, "z")

	got := mustString(t, tr, Options{Unicode: true})
	want := "R\n" +
		"├── first\n" +
		"│   second\n" +
		"│   └── child\n" +
		"└── z\n"
	if got != want {
		t.Fatalf("unexpected render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderSkipsCollapsedChildren(t *testing.T) {
	tr := sampleTree()
	tr.Nodes()[0].Expanded = false
	got := mustString(t, tr, Options{Unicode: true})
	want := "R\n├── A\n└── B\n"
	if got != want {
		t.Fatalf("unexpected render\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderDetectsCycle(t *testing.T) {
	tr := tree.New("R")
	a := tree.AddChild(tr.Root, "A")
	a.Children = append(a.Children, tr.Root)

	lines, err := Render(tr, Options{Unicode: true})
	if err == nil {
		t.Fatalf("expected cycle error, got lines:\n%s", lines.String())
	}
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) || cycle.Text != "R" {
		t.Fatalf("expected CycleError naming R, got %#v", err)
	}
	if lines != nil {
		t.Fatalf("expected no partial output")
	}
}

func TestRenderDetectsSharedNode(t *testing.T) {
	tr := tree.New("R")
	a := tree.AddChild(tr.Root, "A")
	b := tree.AddChild(tr.Root, "B")
	shared := tree.AddChild(a, "shared")
	b.Children = append(b.Children, shared)

	if _, err := Render(tr, Options{}); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected node reached twice to fail, got %v", err)
	}
}

func TestRenderNilTree(t *testing.T) {
	lines, err := Render(nil, Options{})
	if err != nil || lines != nil {
		t.Fatalf("expected empty result for nil tree, got %v / %v", lines, err)
	}
}

func TestRenderGolden(t *testing.T) {
	tr := tree.New("Project")
	src := tree.AddChild(tr.Root, "src")
	tree.AddChild(src, "entry.go")
	tree.AddChild(src, "render.go")
	docs := tree.AddChild(tr.Root, "docs")
	tree.AddChild(docs, "README.md")

	testutil.AssertGolden(t, "render_unicode.golden", mustString(t, tr, Options{Unicode: true}))
	testutil.AssertGolden(t, "render_ascii.golden", mustString(t, tr, Options{Unicode: false}))
}

func genTree(t *rapid.T) *tree.Tree {
	tr := tree.New(rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "root"))
	nodes := []*tree.Node{tr.Root}
	count := rapid.IntRange(0, 40).Draw(t, "count")
	for i := 0; i < count; i++ {
		parent := nodes[rapid.IntRange(0, len(nodes)-1).Draw(t, fmt.Sprintf("parent%d", i))]
		text := rapid.StringMatching(`[a-z]{1,8}( [a-z]{1,8}){0,2}`).Draw(t, fmt.Sprintf("text%d", i))
		nodes = append(nodes, tree.AddChild(parent, text))
	}
	return tr
}

func TestRenderIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := genTree(t)
		width := rapid.IntRange(0, 60).Draw(t, "width")
		unicode := rapid.Bool().Draw(t, "unicode")
		opts := Options{MaxWidth: width, Unicode: unicode}
		first, err := String(tr, opts)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		second, err := String(tr, opts)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if first != second {
			t.Fatalf("render not deterministic:\n%s\n---\n%s", first, second)
		}
	})
}

func TestRenderVisitsNodesInPreOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := genTree(t)
		lines, err := Render(tr, Options{Unicode: true})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		var want []*tree.Node
		tr.Walk(func(n *tree.Node, _ int) bool {
			want = append(want, n)
			return true
		})
		if len(lines) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(lines))
		}
		for i, l := range lines {
			if l.Node != want[i] {
				t.Fatalf("row %d depicts %q, want %q", i, l.Node.Text(), want[i].Text())
			}
		}
	})
}

func TestRenderRespectsMaxWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := genTree(t)
		width := rapid.IntRange(30, 60).Draw(t, "width")
		lines, err := Render(tr, Options{MaxWidth: width, Unicode: true})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, l := range lines {
			if segmentsWidth(l.Prefix) >= width {
				continue
			}
			if w := cells.StringWidth(l.Text()); w > width {
				t.Fatalf("row %q is %d cells wide, limit %d", l.Text(), w, width)
			}
		}
	})
}
