package selection

import "github.com/vango-dev/marks/pkg/vdom"

// DefaultClass is the class tag marks are selected by.
const DefaultClass = "mark"

// Mark is one visual element bound to one item.
type Mark[T comparable] struct {
	datum T
	x     float64
	node  *vdom.VNode
	owner *Container[T]
}

// Datum returns the item the mark is bound to.
func (m *Mark[T]) Datum() T {
	return m.datum
}

// X returns the mark's current horizontal position.
func (m *Mark[T]) X() float64 {
	return m.x
}

// SetX moves the mark immediately and mirrors the position into the node's
// transform attribute.
func (m *Mark[T]) SetX(x float64) {
	m.x = x
	if m.node != nil {
		m.node.Set(vdom.Translate(x, 0))
	}
}

// Node returns the mark's content, or nil for a placeholder that has not
// been rendered yet.
func (m *Mark[T]) Node() *vdom.VNode {
	return m.node
}

// SetNode installs the mark's content. The node is tagged with the
// container's class and keyed by the container's key function so it can be
// found again by selection and diffing. The current position is applied.
func (m *Mark[T]) SetNode(n *vdom.VNode) {
	m.node = n
	if n == nil {
		return
	}
	class := DefaultClass
	if m.owner != nil {
		class = m.owner.class
	}
	if !n.HasClass(class) {
		if existing := n.Attr("class"); existing != "" {
			n.Set(vdom.Class(class, existing))
		} else {
			n.Set(vdom.Class(class))
		}
	}
	if m.owner != nil {
		n.Key = m.owner.key(m.datum)
	}
	n.Set(vdom.Translate(m.x, 0))
}

// Attached reports whether the mark still belongs to its container.
func (m *Mark[T]) Attached() bool {
	if m.owner == nil {
		return false
	}
	for _, other := range m.owner.marks {
		if other == m {
			return true
		}
	}
	return false
}
