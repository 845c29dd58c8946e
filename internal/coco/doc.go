// Package coco models COCO-style object detection datasets.
//
// The types mirror the COCO annotation schema (info, images, annotations,
// categories, licenses). Every entity keeps the JSON members it does not
// recognize in an Extra field, so decoding and re-encoding a file never drops
// data written by other tools.
//
// # Bounding Boxes
//
// Bounding boxes use the COCO convention [x, y, width, height] in pixels,
// with (x, y) the top-left corner.
//
// # Segmentation
//
// Segmentation is a list of polygons. Each polygon is a flat list of
// alternating x and y coordinates. An annotation may carry several polygons
// when the object is split into multiple parts.
//
// # Encoding
//
// Encode produces pretty-printed JSON with a two-space indent. Decode accepts
// any COCO file whose known members have the expected types.
package coco
