// Package server implements the MCP (Model Context Protocol) server that
// exposes the favicon pipeline as tools.
//
// The server is the batch caller of the pipeline: an MCP client inspects a
// logo, tunes the accent margin against it, previews the result, and then
// asks for the output set to be written.
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
// Source Inspection:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel and its pipeline class
//   - image_color_census: Count exact colors
//
// Favicon Pipeline:
//   - logo_analyze: Count transparent/accent/content pixels
//   - favicon_preview: Render the white logo in memory
//   - favicon_generate: Write the full output set
//   - favicon_presets: List preset settings
//
// Pipeline tools take a config document as arguments: an optional "preset"
// name plus any Config field by its JSON name.
//
// # Image Caching
//
// Decoded sources are cached by path for the lifetime of the process.
// favicon_generate evicts its source first so a run always reads the file
// as it currently is on disk.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, including path and stage for pipeline errors
//
// # Logging
//
// Pipeline progress goes to the logger passed to New, never to stdout,
// which carries the protocol stream.
package server
