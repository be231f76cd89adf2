// Package xmltree provides a minimal namespace-aware element tree on top of encoding/xml.
//
// Report dialects are loosely specified: elements are optional, attributes are missing, and
// some producers declare a default namespace while others don't. The tree keeps every element
// with its resolved namespace so parsers can read the root namespace once and qualify every
// following lookup with it.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrEmptyDocument is returned when the input has no root element.
var ErrEmptyDocument = errors.New("xml document has no root element")

var patternNamespace = regexp.MustCompile(`^\{.*\}`)

// Node is one XML element.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	// Text holds the character data found directly inside the element, children excluded.
	Text string
}

// Parse reads a whole document and returns its root element.
// Malformed XML is reported with the underlying *xml.SyntaxError wrapped.
func Parse(data []byte) (*Node, error) {
	normalized, transcoded := normalize(data)

	decoder := xml.NewDecoder(bytes.NewReader(normalized))
	decoder.CharsetReader = charsetReader(transcoded)

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("can't parse xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name, Attrs: t.Copy().Attr}
			switch {
			case len(stack) > 0:
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			case root != nil:
				return nil, outsideRootError(decoder, "element <"+t.Name.Local+"> after the root element")
			default:
				root = node
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			last := len(stack) - 1
			stack[last].Text = text[last].String()
			stack, text = stack[:last], text[:last]
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, outsideRootError(decoder, "character data outside the root element")
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("can't parse xml: %w", io.ErrUnexpectedEOF)
	}
	return root, nil
}

// outsideRootError reports content that a well-formed document can't hold around its root.
// Comments, processing instructions and whitespace are allowed there.
func outsideRootError(decoder *xml.Decoder, msg string) error {
	line, _ := decoder.InputPos()
	return fmt.Errorf("can't parse xml: %w", &xml.SyntaxError{Msg: msg, Line: line})
}

// GetNamespace returns the "{uri}" prefix of the element's qualified tag, or an empty string.
func GetNamespace(node *Node) string {
	if node == nil {
		return ""
	}
	return patternNamespace.FindString(node.Tag())
}

// Tag returns the qualified tag in Clark notation: "{uri}local" or "local".
func (n *Node) Tag() string {
	if n.Name.Space == "" {
		return n.Name.Local
	}
	return "{" + n.Name.Space + "}" + n.Name.Local
}

// Namespace returns the namespace URI of the element.
func (n *Node) Namespace() string {
	return n.Name.Space
}

// Is reports whether the element has the given namespace and local name.
func (n *Node) Is(space, local string) bool {
	return n != nil && n.Name.Space == space && n.Name.Local == local
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attrs {
		if attr.Name.Local == name && (attr.Name.Space == "" || attr.Name.Space == n.Name.Space) {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the named attribute or def when absent.
func (n *Node) AttrDefault(name, def string) string {
	if value, ok := n.Attr(name); ok {
		return value
	}
	return def
}

// AttrInt returns the named attribute as an integer, 0 when absent or invalid.
func (n *Node) AttrInt(name string) int {
	value, ok := n.Attr(name)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return i
}

// AttrFloat returns the named attribute as a float, 0 when absent or invalid.
// Thousands separators ("1,234.5") are accepted.
func (n *Node) AttrFloat(name string) float64 {
	value, ok := n.Attr(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// Find returns the first direct child with the given namespace and local name.
func (n *Node) Find(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Is(space, local) {
			return child
		}
	}
	return nil
}

// FindAll returns every direct child with the given namespace and local name, in document order.
func (n *Node) FindAll(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var found []*Node
	for _, child := range n.Children {
		if child.Is(space, local) {
			found = append(found, child)
		}
	}
	return found
}

// FindPath follows a chain of direct children, e.g. FindPath(ns, "Output", "ErrorInfo", "Message").
func (n *Node) FindPath(space string, locals ...string) *Node {
	current := n
	for _, local := range locals {
		current = current.Find(space, local)
		if current == nil {
			return nil
		}
	}
	return current
}

// FindText returns the text of the first matching direct child, or def when there is none.
func (n *Node) FindText(space, local, def string) string {
	child := n.Find(space, local)
	if child == nil {
		return def
	}
	return child.Text
}
