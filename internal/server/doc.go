// Package server implements the MCP (Model Context Protocol) server for the
// App Store screenshot composer.
//
// This package provides a JSON-RPC 2.0 server that exposes frame matching,
// caption layout and marketing image composition through the MCP protocol.
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
// Frame Registry:
//   - frames_list: List registered frames and where they came from
//   - frame_match: Pick the frame for a screenshot size
//   - screenshot_classify: Read size and guess orientation and device type
//   - frame_detect_cutout: Find the transparent screen opening of a bezel
//
// Captions:
//   - caption_layout: Wrap a caption and size its box
//   - caption_verify: OCR a composed caption band and report word recall
//
// Composition:
//   - compose_screenshot: Render one marketing image
//   - compose_batch: Render many images concurrently
//
// # Configuration
//
// ConfigFromEnv reads APPSHOT_FRAMES_DIR (a directory with frames.json and
// its bezel PNGs), APPSHOT_ASSETS_DIR (where the bundled frames' PNGs live),
// APPSHOT_WORKERS (compose_batch concurrency), APPSHOT_TESSDATA and
// APPSHOT_LOG_LEVEL.
//
// The frame registry is loaded once by New. A manifest that cannot be used
// falls back to the bundled frames; frames_list reports the source and the
// reason.
//
// # Image Caching
//
// Bezel and mask assets are decoded once into a cache shared by the registry
// loader and the compose engine. Screenshots are read fresh on every call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A composition that fell back (no frame art, unusable mask, caption not
// drawn) is not an error: the result has status "degraded" and lists the
// warnings.
//
// # Usage
//
//	srv := server.New(server.ConfigFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
