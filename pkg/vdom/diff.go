package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// Diff compares two VNode trees and returns the patches needed to transform
// prev into next. IDs are carried over from prev onto matching next nodes.
func Diff(prev, next *VNode) []Patch {
	d := &differ{}
	d.node(prev, next, "")
	return d.patches
}

// differ accumulates patches during a single Diff call.
type differ struct {
	patches []Patch
}

func (d *differ) emit(p Patch) {
	d.patches = append(d.patches, p)
}

// node compares two nodes. parentID is used for text patches, since text
// nodes are addressed through their parent element.
func (d *differ) node(prev, next *VNode, parentID string) {
	if prev == nil {
		// Additions are emitted by the parent as InsertNode.
		return
	}
	if next == nil {
		d.emit(Patch{Op: PatchRemoveNode, ID: prev.ID})
		return
	}
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		d.emit(Patch{Op: PatchReplaceNode, ID: targetID(prev, parentID), Node: next})
		return
	}

	next.ID = prev.ID

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			if id := targetID(prev, parentID); id != "" {
				d.emit(Patch{Op: PatchSetText, ID: id, Value: next.Text})
			}
		}
	case KindElement:
		d.props(prev, next)
		d.children(prev, next, prev.ID)
	case KindFragment:
		d.children(prev, next, parentID)
	}
}

// props compares attributes of two elements with the same tag.
func (d *differ) props(prev, next *VNode) {
	for key, prevVal := range prev.Props {
		nextVal, exists := next.Props[key]
		switch {
		case !exists:
			d.emit(Patch{Op: PatchRemoveAttr, ID: prev.ID, Key: key})
		case !propsEqual(prevVal, nextVal):
			d.emit(Patch{Op: PatchSetAttr, ID: prev.ID, Key: key, Value: propToString(nextVal)})
		}
	}
	for key, nextVal := range next.Props {
		if _, exists := prev.Props[key]; !exists {
			d.emit(Patch{Op: PatchSetAttr, ID: prev.ID, Key: key, Value: propToString(nextVal)})
		}
	}
}

// children compares child lists, keyed when any child has a key.
func (d *differ) children(prev, next *VNode, parentID string) {
	if hasKeys(prev.Children) || hasKeys(next.Children) {
		d.keyedChildren(prev, next, parentID)
		return
	}

	pc, nc := prev.Children, next.Children
	// Trailing removals first, from the end, so earlier indices stay valid.
	for i := len(pc) - 1; i >= len(nc); i-- {
		d.emit(Patch{Op: PatchRemoveNode, ID: pc[i].ID})
	}
	for i, child := range nc {
		if i >= len(pc) {
			d.emit(Patch{Op: PatchInsertNode, ParentID: prev.ID, Index: i, Node: child})
			continue
		}
		d.node(pc[i], child, parentID)
	}
}

// keyedChildren matches children by key. Removals are emitted first; inserts
// and moves then follow next order with indices that are valid at the time
// each patch is applied.
func (d *differ) keyedChildren(prev, next *VNode, parentID string) {
	pc, nc := prev.Children, next.Children

	prevByKey := make(map[string]*VNode, len(pc))
	for _, child := range pc {
		if key := child.Key; key != "" {
			prevByKey[key] = child
		}
	}
	nextKeys := make(map[string]bool, len(nc))
	for _, child := range nc {
		if key := child.Key; key != "" {
			nextKeys[key] = true
		}
	}

	// Simulated child order on the receiving side.
	var order []*VNode
	for _, child := range pc {
		if child.Key == "" || !nextKeys[child.Key] {
			d.emit(Patch{Op: PatchRemoveNode, ID: child.ID})
			continue
		}
		order = append(order, child)
	}

	for i, child := range nc {
		match, ok := prevByKey[child.Key]
		if child.Key == "" || !ok {
			d.emit(Patch{Op: PatchInsertNode, ParentID: prev.ID, Index: i, Node: child})
			order = insertAt(order, i, child)
			continue
		}
		if i >= len(order) || order[i] != match {
			d.emit(Patch{Op: PatchMoveNode, ID: match.ID, ParentID: prev.ID, Index: i})
			order = insertAt(removeNode(order, match), i, match)
		}
		d.node(match, child, parentID)
	}
}

// targetID returns the node's own ID, falling back to its parent's.
func targetID(n *VNode, parentID string) string {
	if n.ID != "" {
		return n.ID
	}
	return parentID
}

func insertAt(s []*VNode, i int, n *VNode) []*VNode {
	if i >= len(s) {
		return append(s, n)
	}
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = n
	return s
}

func removeNode(s []*VNode, n *VNode) []*VNode {
	for i, c := range s {
		if c == n {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// hasKeys returns true if any child has a key.
func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to its attribute string.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AttrString converts a prop value to the string written into markup.
func AttrString(v any) string {
	return propToString(v)
}
