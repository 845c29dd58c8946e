// Package server implements the MCP (Model Context Protocol) server for the
// sample dataset generator.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Generation:
//   - generate_sample_data: Render shape images and write COCO (and pair) files
//
// Annotation files:
//   - load_annotations: Validate a COCO file and summarize it
//   - annotation_crop: Crop one annotation's bounding box out of its image
//
// Images:
//   - load_image: Read an image file as base64 with its dimensions
//   - image_sample_color: Get color at pixel
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Images
// written by generate_sample_data are evicted so later calls see the new
// content.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
