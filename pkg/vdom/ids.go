package vdom

import (
	"fmt"
	"sync"
)

// IDGenerator generates unique patch target IDs.
type IDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewIDGenerator creates a new IDGenerator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next ID (e.g., "m1", "m2", ...).
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("m%d", g.counter)
}

// AssignIDs walks the tree and assigns an ID to every element that does
// not already have one. Existing IDs are left untouched so long-lived nodes
// stay addressable across frames.
func AssignIDs(node *VNode, gen *IDGenerator) {
	if node == nil {
		return
	}
	if node.Kind == KindElement && node.ID == "" {
		node.ID = gen.Next()
	}
	for _, child := range node.Children {
		AssignIDs(child, gen)
	}
}
