// Package raster paints mark trees to PNG with github.com/gogpu/gg.
//
// Painter understands the subset of SVG that mark renderers produce: nested
// <g> elements with translate transforms, and circle, rect, polygon and
// path (absolute M, L, H, V, Z commands) shapes with fill and stroke paint.
// Text is skipped; labels only appear in SVG output.
package raster
