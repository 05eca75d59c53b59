// Package selection implements the identity join between a container's marks
// and a data slice.
//
// A Container owns an ordered list of Marks plus a small memo side table.
// Bind partitions the container against new data into three disjoint groups:
//
//   - Enter: items with no existing mark. Bind creates an empty placeholder
//     mark for each one; a sub-renderer fills in its content.
//   - Update: items that already had a mark. The same *Mark is returned.
//   - Exit: marks whose item is no longer present. They stay in the
//     container until Remove is called.
//
// Identity is Go equality of the item type, so reordering data never turns
// a persisting mark into an enter/exit pair. When data contains duplicates
// the first occurrence binds the existing mark and later ones enter.
//
// A Container is not safe for concurrent use. Reconcile passes on the same
// container must be serialized by the caller.
package selection
