// Package modkit wires API modules from shared dependencies
package modkit

import (
	phttp "pricehunter/internal/platform/net/http"
)

// Module is what the API mounts
type Module interface {
	// MountRoutes attaches the module's endpoints under its prefix
	MountRoutes(r phttp.Router)
	// Ports exposes the module's service surface for cross wiring
	Ports() any
	Name() string
}
