// Package symbol provides sub-renderers that draw marks for package scatter.
//
// Symbol draws one shape per mark (circle, square, diamond, triangle or
// cross) centred on the mark's origin. Label draws a text label and hands the
// shape off to the nested spec it receives, which is how specs compose:
//
//	spec := &scatter.RendererSpec[float64]{
//	    Renderer: symbol.NewLabel[float64](),
//	    Plot:     scatter.Spec[float64](symbol.New[float64](symbol.WithShape(symbol.Diamond))),
//	}
package symbol
