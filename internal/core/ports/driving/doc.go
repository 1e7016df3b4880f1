// Package driving provides interfaces consumed by the CLI and MCP
// front-ends (primary/inbound ports).
package driving
