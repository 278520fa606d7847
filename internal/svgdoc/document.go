package svgdoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoSVGRoot is returned when the parsed document does not start with an
// <svg> element. Extraction fails fast on it; nothing partial is produced.
var ErrNoSVGRoot = errors.New("svgdoc: document has no <svg> root")

// Document is an owned, mutable SVG tree. Every parse produces an independent
// value, so concurrent renders of the same template never share state: parse,
// mutate, serialize all happen within one call frame.
type Document struct {
	tree *etree.Document
	root *etree.Element
}

// Parse reads UTF-8 SVG text into a Document. The only structural requirement
// is a well-formed XML payload with an <svg> root.
func Parse(raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("svgdoc: document is empty")
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("svgdoc: parse: %w", err)
	}

	root := tree.Root()
	if root == nil || root.Tag != "svg" {
		return nil, ErrNoSVGRoot
	}
	return &Document{tree: tree, root: root}, nil
}

// Root returns the <svg> element.
func (d *Document) Root() *etree.Element {
	return d.root
}

// String serializes the tree back to SVG markup. Formatting is left exactly
// as parsed so unmapped subtrees round-trip byte-identical.
func (d *Document) String() (string, error) {
	out, err := d.tree.WriteToString()
	if err != nil {
		return "", fmt.Errorf("svgdoc: serialize: %w", err)
	}
	return out, nil
}

// Walk visits every element below the root in document order. Returning false
// from the visitor stops the walk.
func (d *Document) Walk(visit func(el *etree.Element) bool) {
	walk(d.root, visit)
}

func walk(el *etree.Element, visit func(el *etree.Element) bool) bool {
	for _, child := range el.ChildElements() {
		if !visit(child) {
			return false
		}
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

// FindByID locates an element by its id attribute, or nil when the id does
// not resolve. Renderers rely on the nil result to skip fields whose layer
// was deleted after extraction.
func (d *Document) FindByID(id string) *etree.Element {
	if id == "" {
		return nil
	}
	var found *etree.Element
	d.Walk(func(el *etree.Element) bool {
		if el.SelectAttrValue("id", "") == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// EnsureIDs assigns a synthetic "{tag}-{n}" id to every element below the
// root that lacks one, writing the attribute back into the tree. It returns
// the number of ids assigned. The counter advances deterministically in
// document order so repeated extraction of the same input yields the same
// ids.
func (d *Document) EnsureIDs() int {
	taken := make(map[string]struct{})
	d.Walk(func(el *etree.Element) bool {
		if id := el.SelectAttrValue("id", ""); id != "" {
			taken[id] = struct{}{}
		}
		return true
	})

	assigned := 0
	next := 1
	d.Walk(func(el *etree.Element) bool {
		if el.SelectAttrValue("id", "") != "" {
			return true
		}
		var id string
		for {
			id = fmt.Sprintf("%s-%d", el.Tag, next)
			next++
			if _, exists := taken[id]; !exists {
				break
			}
		}
		taken[id] = struct{}{}
		el.CreateAttr("id", id)
		assigned++
		return true
	})
	return assigned
}

// TextContent concatenates all character data beneath the element, including
// nested tspans.
func TextContent(el *etree.Element) string {
	var sb strings.Builder
	collectText(el, &sb)
	return sb.String()
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			collectText(t, sb)
		}
	}
}

// InsideTag reports whether the element has an ancestor with the given tag.
// Extraction uses it to skip <text> nodes tucked inside <defs>.
func InsideTag(el *etree.Element, tag string) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == tag {
			return true
		}
	}
	return false
}

// RemoveChildren drops every child token of the element, character data and
// nested elements alike.
func RemoveChildren(el *etree.Element) {
	for len(el.Child) > 0 {
		el.RemoveChild(el.Child[0])
	}
}

// FirstChildElement returns the first direct child with the given tag, or the
// first such element anywhere below when deep is true.
func FirstChildElement(el *etree.Element, tag string, deep bool) *etree.Element {
	if child := el.SelectElement(tag); child != nil {
		return child
	}
	if !deep {
		return nil
	}
	var found *etree.Element
	walk(el, func(cand *etree.Element) bool {
		if cand.Tag == tag {
			found = cand
			return false
		}
		return true
	})
	return found
}
