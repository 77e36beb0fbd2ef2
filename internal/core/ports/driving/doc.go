// Package driving defines what the CLI and the MCP server may ask of the
// core: analyse an owner's title, import or count snapshot records, and
// read or change settings.
//
// Implementations live in internal/core/services.
package driving
