package dashgrid

import (
	core "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// Service exposes the underlying components/dashgrid.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
