// Package mcp provides an MCP (Model Context Protocol) server adapter for titlescan.
// It lets AI assistants request title packages for property owners.
package mcp

import "errors"

// ErrMissingTitleService is returned when the title service is not provided.
var ErrMissingTitleService = errors.New("mcp: title service is required")
