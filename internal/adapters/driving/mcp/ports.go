package mcp

import (
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Title runs owner analyses.
	Title driving.TitleService

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService

	// Records reports on the local snapshot. Optional.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Title == nil {
		return ErrMissingTitleService
	}
	return nil
}
