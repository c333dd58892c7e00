package document

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultExtension is appended to paths without a recognised extension.
const DefaultExtension = ".xml"

// Codec reads and writes documents in one file format.
type Codec interface {
	Name() string
	Encode(w io.Writer, d *Document) error
	Decode(r io.Reader) (*Document, error)
}

var codecs = map[string]Codec{
	".xml":  xmlCodec{},
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
	".json": jsonCodec{},
}

// CodecFor picks the codec matching the extension of path, defaulting to XML.
func CodecFor(path string) Codec {
	if c, ok := codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return xmlCodec{}
}

// EnsureExtension appends DefaultExtension when path has no recognised
// document extension.
func EnsureExtension(path string) string {
	if path == "" {
		return path
	}
	if _, ok := codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return path
	}
	return path + DefaultExtension
}

// xmlDocument mirrors Document in the element layout of the XML format.
type xmlDocument struct {
	XMLName xml.Name `xml:"Tree"`
	Root    *xmlNode `xml:"Root"`
}

type xmlNode struct {
	RawText xmlText    `xml:"RawText"`
	Nodes   []*xmlNode `xml:"Nodes>TreeNode"`
}

// xmlText is node text. Text that XML 1.0 cannot carry, such as escape
// sequences or invalid UTF-8, is stored base64 encoded with
// encoding="base64".
type xmlText struct {
	Encoding string `xml:"encoding,attr,omitempty"`
	Value    string `xml:",chardata"`
}

const base64Encoding = "base64"

func newXMLText(s string) xmlText {
	if xmlSafe(s) {
		return xmlText{Value: s}
	}
	return xmlText{Encoding: base64Encoding, Value: base64.StdEncoding.EncodeToString([]byte(s))}
}

func (t xmlText) text() (string, error) {
	switch t.Encoding {
	case "":
		return t.Value, nil
	case base64Encoding:
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(t.Value))
		if err != nil {
			return "", fmt.Errorf("decode RawText: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unknown RawText encoding %q", t.Encoding)
	}
}

// xmlSafe reports whether s is valid UTF-8 made only of runes in the XML 1.0
// character range.
func xmlSafe(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !xmlChar(r) {
			return false
		}
		s = s[size:]
	}
	return true
}

func xmlChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func toXMLNode(n *Node) *xmlNode {
	if n == nil {
		return nil
	}
	out := &xmlNode{RawText: newXMLText(n.RawText)}
	for _, child := range n.Nodes {
		if child != nil {
			out.Nodes = append(out.Nodes, toXMLNode(child))
		}
	}
	return out
}

func fromXMLNode(n *xmlNode) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	text, err := n.RawText.text()
	if err != nil {
		return nil, err
	}
	out := &Node{RawText: text}
	for _, child := range n.Nodes {
		if child == nil {
			continue
		}
		c, err := fromXMLNode(child)
		if err != nil {
			return nil, err
		}
		out.Nodes = append(out.Nodes, c)
	}
	return out, nil
}

type xmlCodec struct{}

func (xmlCodec) Name() string { return "xml" }

func (xmlCodec) Encode(w io.Writer, d *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xmlDocument{Root: toXMLNode(d.Root)}); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (xmlCodec) Decode(r io.Reader) (*Document, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Err: ErrNoRoot}
		}
		return nil, &FormatError{Err: err}
	}
	root, err := fromXMLNode(doc.Root)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return &Document{Root: root}, nil
}

// wrapped carries the document under a named top-level key so that a file
// without it can be told apart from one with an empty tree.
type wrapped struct {
	Tree *Document `yaml:"tree" json:"tree"`
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(wrapped{Tree: d}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (yamlCodec) Decode(r io.Reader) (*Document, error) {
	var w wrapped
	if err := yaml.NewDecoder(r).Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return nil, &FormatError{Err: err}
	}
	if w.Tree == nil {
		return nil, &FormatError{Err: ErrNoRoot}
	}
	return w.Tree, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wrapped{Tree: d}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (jsonCodec) Decode(r io.Reader) (*Document, error) {
	var w wrapped
	if err := json.NewDecoder(r).Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return nil, &FormatError{Err: err}
	}
	if w.Tree == nil {
		return nil, &FormatError{Err: ErrNoRoot}
	}
	return w.Tree, nil
}
