package vdom

import "strings"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Append adds children to an element and returns it.
func (v *VNode) Append(children ...*VNode) *VNode {
	for _, c := range children {
		if c != nil {
			v.Children = append(v.Children, c)
		}
	}
	return v
}

// Set sets an attribute on the node, creating Props if needed.
func (v *VNode) Set(a Attr) *VNode {
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.applyAttr(a)
	return v
}

// Attr returns the string form of an attribute, or "" when absent.
func (v *VNode) Attr(key string) string {
	if v == nil || v.Props == nil {
		return ""
	}
	val, ok := v.Props[key]
	if !ok {
		return ""
	}
	return propToString(val)
}

// Float returns a numeric attribute. ok is false when the attribute is
// absent or not numeric.
func (v *VNode) Float(key string) (f float64, ok bool) {
	if v == nil || v.Props == nil {
		return 0, false
	}
	switch n := v.Props[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// HasClass reports whether the class attribute contains name.
func (v *VNode) HasClass(name string) bool {
	for _, c := range strings.Fields(v.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// FindByClass returns the descendants of v (v included) carrying class
// name, in document order.
func (v *VNode) FindByClass(name string) []*VNode {
	var out []*VNode
	var walk func(n *VNode)
	walk = func(n *VNode) {
		if n == nil {
			return
		}
		if n.Kind == KindElement && n.HasClass(name) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(v)
	return out
}

// TextContent concatenates all text beneath v.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var b strings.Builder
	for _, c := range v.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
