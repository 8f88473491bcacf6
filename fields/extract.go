package fields

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

/* Extraction turns a raw inbound payload into a FlatMap.
 * Payloads are XML trees, except for the literal test marker monitoring
 * tools send so integrators can validate their configuration without a
 * real alert.
 */

// TestMarker is the literal prefix monitoring tools send as a configuration test
const TestMarker = "THIS IS A TEST NOTIFICATION"

// ParseError indicates the payload is neither well-formed XML nor the test marker.
// It is fatal to that request's extraction only.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing payload: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

/* Extract parses a raw payload into a FlatMap.
 * Element attributes are merged into that element's own fields. Repeated
 * scalar tags join with ", "; repeated complex tags get an index segment in
 * their path. Empty branches are dropped, never represented as empty
 * strings. On failure no partial map is ever returned.
 */
func Extract(raw []byte) (FlatMap, error) {
	if strings.HasPrefix(string(raw), TestMarker) {
		m := NewFlatMap()
		m.Set("TestNotification", "true")
		m.Set("Message", string(raw))
		return m, nil
	}

	root, err := parseTree(raw)
	if err != nil {
		return FlatMap{}, err
	}

	// The root element is the envelope; its name never appears in field keys
	m := NewFlatMap()
	flattenInto(root, "", &m)
	return m, nil
}

// joinPath dot-joins a path segment onto a possibly empty prefix
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

/* xmlNode is one element of the parsed tree. Parsed XML is acyclic by
 * construction, so a plain recursive walk terminates.
 */
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     strings.Builder
}

// trimmedText returns the element's direct character data, whitespace-trimmed
func (n *xmlNode) trimmedText() string {
	return strings.TrimSpace(n.text.String())
}

// parseTree decodes raw bytes into a single-rooted element tree
func parseTree(raw []byte) (*xmlNode, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Reason: "empty payload"}
	}

	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var root *xmlNode
	var stack []*xmlNode

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "malformed XML", Err: err}
		}

		switch t := token.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &ParseError{Reason: "multiple root elements"}
			}
			node := &xmlNode{
				name:  t.Name.Local,
				attrs: t.Attr,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			} else {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &ParseError{Reason: "malformed XML", Err: fmt.Errorf("unexpected end element %s", t.Name.Local)}
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, &ParseError{Reason: "no root element"}
	}
	if len(stack) != 0 {
		return nil, &ParseError{Reason: "malformed XML", Err: fmt.Errorf("unclosed element %s", stack[len(stack)-1].name)}
	}
	return root, nil
}

/* flattenInto walks the tree depth-first with a path accumulator.
 * path already names the node itself; child paths are dot-joined below it.
 */
func flattenInto(node *xmlNode, path string, out *FlatMap) {
	for _, attr := range node.attrs {
		if attr.Value != "" {
			out.Set(joinPath(path, attr.Name.Local), attr.Value)
		}
	}

	text := node.trimmedText()
	if len(node.children) == 0 {
		// Leaf scalar. Empty text is dropped rather than stored as "".
		if text != "" && path != "" {
			out.Set(path, text)
		}
		return
	}

	// Mixed content: an element carrying both text and children keeps its
	// own text under its path.
	if text != "" && path != "" {
		out.Set(path, text)
	}

	// Count children by name to detect genuinely repeated tags
	counts := make(map[string]int, len(node.children))
	for _, child := range node.children {
		counts[child.name]++
	}

	joined := make(map[string]bool)
	indexes := make(map[string]int)
	for _, child := range node.children {
		childPath := joinPath(path, child.name)
		if counts[child.name] == 1 {
			flattenInto(child, childPath, out)
			continue
		}
		if isScalar(child) {
			// Repeated scalar tags join into one comma-separated value
			if !joined[child.name] {
				joined[child.name] = true
				out.Set(childPath, joinScalars(node.children, child.name))
			}
			continue
		}
		// Repeated complex tags keep their subtrees apart with an index segment
		flattenInto(child, fmt.Sprintf("%s.%d", childPath, indexes[child.name]), out)
		indexes[child.name]++
	}
}

// isScalar reports whether a node is a plain text leaf without attributes
func isScalar(node *xmlNode) bool {
	return len(node.children) == 0 && len(node.attrs) == 0
}

// joinScalars collects the non-empty text of every same-named scalar sibling
func joinScalars(children []*xmlNode, name string) string {
	var values []string
	for _, child := range children {
		if child.name == name && child.text.Len() > 0 {
			if text := child.trimmedText(); text != "" {
				values = append(values, text)
			}
		}
	}
	return strings.Join(values, ", ")
}
