package selection

// Join is the result of binding data to a container.
type Join[T comparable] struct {
	Enter  []*Mark[T]
	Update []*Mark[T]
	Exit   []*Mark[T]
}

// Bind joins data against the container's marks by item identity.
//
// Entering placeholders are inserted into the container immediately, so
// after Bind the container holds one mark per item in data order followed by
// the exiting marks. Call Remove on the Exit group to drop them.
func Bind[T comparable](c *Container[T], data []T) Join[T] {
	existing := make(map[T]*Mark[T], len(c.marks))
	for _, m := range c.marks {
		if _, dup := existing[m.datum]; !dup {
			existing[m.datum] = m
		}
	}

	var j Join[T]
	ordered := make([]*Mark[T], 0, len(data)+len(c.marks))
	bound := make(map[*Mark[T]]bool, len(data))
	for _, d := range data {
		if m, ok := existing[d]; ok && !bound[m] {
			bound[m] = true
			j.Update = append(j.Update, m)
			ordered = append(ordered, m)
			continue
		}
		m := &Mark[T]{datum: d, owner: c}
		j.Enter = append(j.Enter, m)
		ordered = append(ordered, m)
	}
	for _, m := range c.marks {
		if !bound[m] {
			j.Exit = append(j.Exit, m)
			ordered = append(ordered, m)
		}
	}
	c.marks = ordered
	return j
}

// Data returns the items of a group of marks.
func Data[T comparable](marks []*Mark[T]) []T {
	out := make([]T, len(marks))
	for i, m := range marks {
		out[i] = m.datum
	}
	return out
}
