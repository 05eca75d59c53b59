// Package vdom provides the in-memory node tree that holds mark content.
//
// Every mark owns a small SVG subtree (usually a <g class="mark"> element
// wrapping a shape). Sub-renderers build these trees with variadic element
// factories, the reconciler moves them by rewriting their transform
// attribute, and package render serializes them to SVG markup.
//
// # Element API
//
//	G(Class("mark"), Key("42"), Translate(84, 0),
//	    Circle(R(3), Fill("steelblue")),
//	)
//
// # Diffing
//
// Diff compares two trees and returns Patch operations. Keyed reconciliation
// is used when children carry a Key, which is always the case for marks, so
// a live driver can ship minimal updates between frames.
//
// # Node IDs
//
// AssignIDs gives every element a stable ID so patches can address it.
// IDs survive in place on long-lived mark nodes and are copied from the
// previous tree to the next during Diff.
package vdom
