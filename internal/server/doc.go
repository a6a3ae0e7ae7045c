// Package server exposes the wallpaper pipeline as an MCP (Model Context
// Protocol) tool server.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Geometry:
//   - wallpaper_list_sizes: Named canvas presets
//   - wallpaper_resolve_size: Preset or WIDTHxHEIGHT to pixels
//
// Color:
//   - wallpaper_detect_background: Background color from the border
//
// Wallpaper:
//   - wallpaper_preview: Build and return a base64 PNG
//   - wallpaper_generate: Build and write to a file
//
// # Image Caching
//
// Source images are decoded once per path and kept for the lifetime of the
// process, so a detect, preview, generate sequence reads the file once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with
// code -32000, message "Tool execution failed" and the Go error string as
// data. The string names the offending value (size token, anchor, color).
package server
