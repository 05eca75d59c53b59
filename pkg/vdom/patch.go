package vdom

// PatchOp names a tree edit.
type PatchOp uint8

const (
	PatchSetText     PatchOp = iota + 1 // text content of ID's element
	PatchSetAttr                        // Key=Value on ID
	PatchRemoveAttr                     // drop Key from ID
	PatchInsertNode                     // Node under ParentID at Index
	PatchRemoveNode                     // drop ID
	PatchMoveNode                       // ID to Index under ParentID
	PatchReplaceNode                    // ID becomes Node
)

var opNames = [...]string{
	PatchSetText:     "SetText",
	PatchSetAttr:     "SetAttr",
	PatchRemoveAttr:  "RemoveAttr",
	PatchInsertNode:  "InsertNode",
	PatchRemoveNode:  "RemoveNode",
	PatchMoveNode:    "MoveNode",
	PatchReplaceNode: "ReplaceNode",
}

func (op PatchOp) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Unknown"
}

// Patch is one edit that moves a rendered tree toward the next frame.
// Only the fields relevant to Op are set.
type Patch struct {
	Op       PatchOp
	ID       string
	Key      string
	Value    string
	Node     *VNode
	Index    int
	ParentID string
}
