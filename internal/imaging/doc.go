// Package imaging provides the pixel-level side of dataset generation.
//
// It covers drawing generated shapes onto a canvas, choosing their colors,
// encoding the result as PNG, and the read-side helpers used to inspect
// generated images (loading, cropping an annotation's region, sampling a
// pixel color). All coordinates use (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Rasterization
//
// Rectangles are filled with a direct rectangle fill. Every other shape is
// filled from its polygon outline with golang.org/x/image/vector, which
// covers edge pixels partially; interior pixels always carry the exact fill
// color.
//
// # Color Policy
//
// In ColorByCategory mode each category gets a hue spaced evenly around the
// color wheel (S=0.7, L=0.6). In ColorGray mode every shape is the same
// neutral gray, so that only geometry distinguishes categories.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. A Canvas belongs to one generation
// pass and must not be shared.
package imaging
