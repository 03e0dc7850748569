package dashgrid

import (
	"context"

	"github.com/rs/zerolog"
)

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LogTelemetry emits telemetry events as structured zerolog records.
type LogTelemetry struct {
	logger zerolog.Logger
}

// NewLogTelemetry wraps a zerolog logger as a Telemetry sink.
func NewLogTelemetry(logger zerolog.Logger) *LogTelemetry {
	return &LogTelemetry{logger: logger}
}

// Record writes the event and payload at info level.
func (t *LogTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	t.logger.Info().Fields(payload).Msg(event)
}
