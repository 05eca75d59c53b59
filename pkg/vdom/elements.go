package vdom

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.applyAttr(v)

		case []Attr:
			for _, attr := range v {
				node.applyAttr(attr)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// applyAttr stores a in the node's props. The "key" attribute is lifted
// into VNode.Key and never rendered.
func (v *VNode) applyAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

// Structure elements

func SVG(args ...any) *VNode   { return createElement("svg", args) }
func G(args ...any) *VNode     { return createElement("g", args) }
func Title(args ...any) *VNode { return createElement("title", args) }

// Shape elements

func Circle(args ...any) *VNode  { return createElement("circle", args) }
func Rect(args ...any) *VNode    { return createElement("rect", args) }
func Path(args ...any) *VNode    { return createElement("path", args) }
func Polygon(args ...any) *VNode { return createElement("polygon", args) }

// SVGText creates a <text> element. Named to avoid conflict with Text.
func SVGText(args ...any) *VNode { return createElement("text", args) }
