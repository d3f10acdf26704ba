package logger

import "go.uber.org/fx"

// Module wires the service-wide slog logger.
var Module = fx.Options(
	fx.Provide(New),
)
