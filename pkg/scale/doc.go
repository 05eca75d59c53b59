// Package scale provides positional mappings from data items to coordinates.
//
// A Scale is a pure function from an item to a number. The reconciler in
// package scatter never inspects a scale beyond calling Apply, so any type
// with that method can drive mark positions:
//
//	x := scale.Linear{Domain: [2]float64{0, 100}, Range: [2]float64{0, 640}}
//	x.Apply(50) // 320
//
// Linear is a comparable value: two Linear scales with the same domain and
// range are the same mapping, which lets callers detect an unchanged scale
// with ==. Func wraps an arbitrary function for items that are not plain
// numbers.
package scale
