package scale

import "math"

// Scale maps an item to a coordinate.
type Scale[T any] interface {
	Apply(d T) float64
}

// Func adapts a plain function to the Scale interface.
type Func[T any] func(d T) float64

// Apply implements Scale.
func (f Func[T]) Apply(d T) float64 {
	return f(d)
}

// Linear is a continuous linear mapping from Domain onto Range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64

	// Clamp restricts the output to Range when set.
	Clamp bool
}

// NewLinear returns a linear scale for the given domain and range bounds.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply implements Scale. A degenerate domain maps every value to the
// midpoint of the range.
func (l Linear) Apply(d float64) float64 {
	span := l.Domain[1] - l.Domain[0]
	if span == 0 {
		return (l.Range[0] + l.Range[1]) / 2
	}
	t := (d - l.Domain[0]) / span
	if l.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return l.Range[0] + t*(l.Range[1]-l.Range[0])
}

// Invert maps a coordinate back into the domain.
func (l Linear) Invert(r float64) float64 {
	span := l.Range[1] - l.Range[0]
	if span == 0 {
		return (l.Domain[0] + l.Domain[1]) / 2
	}
	t := (r - l.Range[0]) / span
	if l.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return l.Domain[0] + t*(l.Domain[1]-l.Domain[0])
}

// WithDomain returns a copy of l with a new domain.
func (l Linear) WithDomain(d0, d1 float64) Linear {
	l.Domain = [2]float64{d0, d1}
	return l
}

// WithRange returns a copy of l with a new range.
func (l Linear) WithRange(r0, r1 float64) Linear {
	l.Range = [2]float64{r0, r1}
	return l
}

// Extent returns the minimum and maximum of values. It returns (0, 0) for an
// empty slice.
func Extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Multiply returns a scale that multiplies numeric items by k.
func Multiply(k float64) Linear {
	return NewLinear(0, 1, 0, k)
}
