package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/buildtree/internal/tree"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sample() *tree.Tree {
	tr := tree.New("Project")
	src := tree.AddChild(tr.Root, "src")
	tree.AddChild(src, "entry.go")
	tree.AddChild(tr.Root, "multi\nline")
	return tr
}

type shape struct {
	Text     string
	Depth    int
	Children int
}

func shapeOf(t *tree.Tree) []shape {
	var out []shape
	t.Walk(func(n *tree.Node, depth int) bool {
		out = append(out, shape{Text: n.Text(), Depth: depth, Children: len(n.Children)})
		return true
	})
	return out
}

func TestXMLShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CodecFor("tree.xml").Encode(&buf, ToDocument(sample())))
	out := buf.String()
	require.Contains(t, out, "<Tree>")
	require.Contains(t, out, "<Root>")
	require.Contains(t, out, "<RawText>Project</RawText>")
	require.Contains(t, out, "<Nodes>")
	require.Contains(t, out, "<TreeNode>")
	require.Less(t, strings.Index(out, "src"), strings.Index(out, "entry.go"))
}

func TestFromDocumentRebuildsDerivedState(t *testing.T) {
	doc := &Document{Root: &Node{
		RawText: "R",
		Nodes: []*Node{
			{RawText: "a\tb", Nodes: []*Node{{RawText: "c"}}},
		},
	}}
	tr, err := FromDocument(doc)
	require.NoError(t, err)
	require.Nil(t, tr.Root.Parent())

	a := tr.Nodes()[0]
	require.Equal(t, tr.Root, a.Parent())
	require.Equal(t, a, a.Children[0].Parent())
	require.Equal(t, "a    b", a.Label().String())
	require.True(t, a.Expanded)
}

func TestFromDocumentNil(t *testing.T) {
	_, err := FromDocument(nil)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, ErrNoRoot)
}

func TestFromDocumentWithoutRootUsesDefault(t *testing.T) {
	doc, err := CodecFor("x.xml").Decode(strings.NewReader("<Tree></Tree>"))
	require.NoError(t, err)
	built, err := FromDocument(doc)
	require.NoError(t, err)
	require.Equal(t, tree.DefaultRootText, built.Root.Text())
	require.Empty(t, built.Nodes())
}

func TestDecodeRejectsMissingDocumentElement(t *testing.T) {
	cases := map[string]string{
		"empty.xml":  "",
		"other.xml":  "<Forest></Forest>",
		"empty.yaml": "",
		"other.yaml": "forest: {}\n",
		"empty.json": "",
		"other.json": `{"forest": {}}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := CodecFor(name).Decode(strings.NewReader(input))
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestEnsureExtension(t *testing.T) {
	require.Equal(t, "tree.xml", EnsureExtension("tree"))
	require.Equal(t, "tree.txt.xml", EnsureExtension("tree.txt"))
	require.Equal(t, "tree.XML", EnsureExtension("tree.XML"))
	require.Equal(t, "tree.yml", EnsureExtension("tree.yml"))
	require.Equal(t, "tree.json", EnsureExtension("tree.json"))
	require.Equal(t, "", EnsureExtension(""))
}

func TestStoreRoundTripEveryCodec(t *testing.T) {
	for _, ext := range []string{".xml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), "tree"+ext))
			require.False(t, store.Exists())
			require.NoError(t, store.Save(sample()))
			require.True(t, store.Exists())

			loaded, err := store.Load()
			require.NoError(t, err)
			require.Equal(t, shapeOf(sample()), shapeOf(loaded))
		})
	}
}

func TestStoreSaveReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "tree"))
	require.Equal(t, filepath.Join(dir, "tree.xml"), store.Path)

	require.NoError(t, store.Save(sample()))
	require.NoError(t, store.Save(tree.New("replaced")))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "replaced", loaded.Root.Text())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewStore(filepath.Join(dir, "missing.xml")).Load()
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<Nope/>"), 0o644))
	_, err = NewStore(bad).Load()
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, bad, fe.Path)
}

// textGen draws node text that mixes plain characters with markup, escape
// sequences, control runes and wide runes.
var textGen = rapid.StringOfN(rapid.SampledFrom([]rune{
	'a', 'Z', '0', ' ', '.', '-', '\t', '\n', '\r',
	'\x1b', '\x01', '\x7f', '[', ']', '<', '>', '&', '"', '\'',
	'é', '漢', '\ufffd',
}), 0, 12, -1)

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := tree.New(rapid.StringMatching(`[A-Za-z0-9 ._-]{0,12}`).Draw(rt, "root"))
		nodes := []*tree.Node{tr.Root}
		count := rapid.IntRange(0, 25).Draw(rt, "count")
		for i := 0; i < count; i++ {
			parent := nodes[rapid.IntRange(0, len(nodes)-1).Draw(rt, fmt.Sprintf("parent%d", i))]
			text := textGen.Draw(rt, fmt.Sprintf("text%d", i))
			nodes = append(nodes, tree.AddChild(parent, text))
		}
		ext := rapid.SampledFrom([]string{"x.xml", "x.yaml", "x.json"}).Draw(rt, "codec")
		codec := CodecFor(ext)

		var buf bytes.Buffer
		require.NoError(rt, codec.Encode(&buf, ToDocument(tr)))
		doc, err := codec.Decode(&buf)
		require.NoError(rt, err)
		back, err := FromDocument(doc)
		require.NoError(rt, err)

		require.Equal(rt, shapeOf(tr), shapeOf(back))
		back.Walk(func(n *tree.Node, _ int) bool {
			require.Equal(rt, tree.NewLabel(n.Text()), n.Label())
			for _, c := range n.Children {
				require.Equal(rt, n, c.Parent())
			}
			return true
		})
	})
}

func TestXMLKeepsTextOutsideCharacterRange(t *testing.T) {
	texts := []string{"\x1b[31mred\x1b[0m", "a\x01b", "bad\xffutf8", "\ufffe", "line\r\nbreak"}
	tr := tree.New("root")
	for _, text := range texts {
		tree.AddChild(tr.Root, text)
	}
	store := NewStore(filepath.Join(t.TempDir(), "tree.xml"))
	require.NoError(t, store.Save(tr))

	data, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "\ufffd")
	require.Contains(t, string(data), "<RawText>root</RawText>")
	require.Contains(t, string(data), `encoding="base64"`)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Nodes(), len(texts))
	for i, n := range loaded.Nodes() {
		require.Equal(t, texts[i], n.Text())
	}
}

func TestXMLRejectsUnknownTextEncoding(t *testing.T) {
	input := `<Tree><Root><RawText encoding="rot13">ebbg</RawText></Root></Tree>`
	_, err := CodecFor("x.xml").Decode(strings.NewReader(input))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)

	input = `<Tree><Root><RawText encoding="base64">!!!</RawText></Root></Tree>`
	_, err = CodecFor("x.xml").Decode(strings.NewReader(input))
	require.ErrorAs(t, err, &fe)
}

func TestStoreSaveKeepsFileMode(t *testing.T) {
	dir := t.TempDir()
	fresh := NewStore(filepath.Join(dir, "fresh.xml"))
	require.NoError(t, fresh.Save(sample()))
	info, err := os.Stat(fresh.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	existing := NewStore(filepath.Join(dir, "existing.xml"))
	require.NoError(t, os.WriteFile(existing.Path, []byte("<Tree/>"), 0o600))
	require.NoError(t, os.Chmod(existing.Path, 0o640))
	require.NoError(t, existing.Save(sample()))
	info, err = os.Stat(existing.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
