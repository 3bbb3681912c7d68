package system

import (
	"log/slog"

	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

func faulted(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.FaultComponent.Kind())
}

// markFault records err on e so later systems and frames leave it alone.
func markFault(w *ecs.World, logger *slog.Logger, e ecs.Entity, err error) {
	if err == nil {
		return
	}
	_ = ecs.Add(w, e, component.FaultComponent.Kind(), &component.Fault{Err: err, Frame: w.Frame()})
	loggerOrDefault(logger).Error("entity update aborted", "entity", e, "frame", w.Frame(), "err", err)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
