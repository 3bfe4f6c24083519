// Package server implements the MCP (Model Context Protocol) server for the
// palette tools.
//
// This package provides a JSON-RPC 2.0 server that exposes dominant-color
// extraction and color formatting through the MCP protocol.
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
// Palette Extraction:
//   - palette_extract: Palette of an image file or base64 payload
//   - palette_extract_url: Palette of an image fetched over HTTP(S)
//
// Color Utilities:
//   - color_convert: Format one color in hex, rgb, cmyk, hsl or all four
//   - palette_swatch: Render colors as a base64 PNG strip
//
// Image Information:
//   - image_info: Dimensions, format, color depth and alpha presence
//
// # Image Caching
//
// Palette extraction reads and decodes its input on every call. Only
// image_info keeps decoded images, keyed by path and revalidated against
// the file's size and modification time before each use.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: "Tool execution failed"
//   - data: {"kind": ..., "error": ...} where kind is one of read, decode,
//     unsupported_image_kind, fetch, format_write, invalid_options or
//     internal
//
// # Usage
//
//	srv := server.New(server.Config{FetchTimeout: 30 * time.Second})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatalf("Server error: %v", err)
//	}
package server
