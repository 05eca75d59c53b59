package selection

import (
	"fmt"

	"github.com/vango-dev/marks/pkg/vdom"
)

// Container is a mutable handle owning zero or more marks and a memo table.
type Container[T comparable] struct {
	name  string
	class string
	key   func(T) string
	marks []*Mark[T]
	memo  map[string]any
}

// Option configures a Container.
type Option[T comparable] func(*Container[T])

// WithClass sets the class tag used for the container's marks.
func WithClass[T comparable](class string) Option[T] {
	return func(c *Container[T]) {
		c.class = class
	}
}

// WithKeyFunc sets how an item is rendered into a node key. The key only
// labels nodes for diffing; the join itself compares items with ==.
func WithKeyFunc[T comparable](fn func(T) string) Option[T] {
	return func(c *Container[T]) {
		c.key = fn
	}
}

// NewContainer creates an empty container.
func NewContainer[T comparable](name string, opts ...Option[T]) *Container[T] {
	c := &Container[T]{
		name:  name,
		class: DefaultClass,
		key:   func(d T) string { return fmt.Sprint(d) },
		memo:  make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the container's name.
func (c *Container[T]) Name() string {
	return c.name
}

// Class returns the class tag of the container's marks.
func (c *Container[T]) Class() string {
	return c.class
}

// Marks returns the container's marks in order. The slice is a copy.
func (c *Container[T]) Marks() []*Mark[T] {
	out := make([]*Mark[T], len(c.marks))
	copy(out, c.marks)
	return out
}

// Len returns the number of marks.
func (c *Container[T]) Len() int {
	return len(c.marks)
}

// Find returns the mark bound to d.
func (c *Container[T]) Find(d T) (*Mark[T], bool) {
	for _, m := range c.marks {
		if m.datum == d {
			return m, true
		}
	}
	return nil, false
}

// Memo returns the value stored under key.
func (c *Container[T]) Memo(key string) (any, bool) {
	v, ok := c.memo[key]
	return v, ok
}

// SetMemo stores v under key, replacing any previous value.
func (c *Container[T]) SetMemo(key string, v any) {
	c.memo[key] = v
}

// ClearMemo removes the value stored under key.
func (c *Container[T]) ClearMemo(key string) {
	delete(c.memo, key)
}

// Remove detaches marks from the container. Marks that are not attached are
// ignored.
func (c *Container[T]) Remove(marks ...*Mark[T]) {
	if len(marks) == 0 {
		return
	}
	drop := make(map[*Mark[T]]bool, len(marks))
	for _, m := range marks {
		drop[m] = true
	}
	kept := c.marks[:0]
	for _, m := range c.marks {
		if !drop[m] {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(c.marks); i++ {
		c.marks[i] = nil
	}
	c.marks = kept
}

// Node builds a <g> element holding the content of every rendered mark, in
// mark order. Mark nodes are shared, not copied.
func (c *Container[T]) Node(attrs ...any) *vdom.VNode {
	g := vdom.G(append([]any{vdom.Class(c.name)}, attrs...)...)
	for _, m := range c.marks {
		if m.node != nil {
			g.Children = append(g.Children, m.node)
		}
	}
	return g
}
