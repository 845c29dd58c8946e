// Package shapes generates the parametric geometric shapes used to build
// synthetic detection datasets.
//
// Ten shape kinds are available, in a fixed catalog order that defines their
// 1-based category ids:
//
//	1 rectangle   2 triangle   3 pentagon   4 hexagon   5 octagon
//	6 diamond     7 star       8 cross      9 arrow    10 house
//
// Each kind produces a Shape: a polygon outline in canvas coordinates, the
// bounding box that encloses it, and an area estimate. Shapes are sampled so
// that their full extent lies on the canvas; nothing is clipped.
//
// # Size Budget
//
// Generators take a maxSize budget. Callers are expected to clamp it to half
// of the smaller canvas dimension first. Size kinds draw a size in
// [min(40, maxSize), min(maxSize, cap)] and radial kinds (pentagon, hexagon,
// octagon, star) draw a radius in [min(30, maxSize/2), min(maxSize/2, 60)].
//
// # Area
//
// Areas use closed forms where one exists and fixed regular-polygon
// approximations otherwise (pentagon r²·1.72, hexagon r²·2.6,
// octagon r²·2.83). These constants are part of the output format.
package shapes
