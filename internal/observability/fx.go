// Package observability wires logging and metrics middleware.
package observability

import (
	"github.com/staffdeck/staffdeck/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		metrics.NewRegistry,
		metrics.NewHTTPMetrics,
	),
)
