package sim

import "log"

// SignalChangeLogger is a hook that prints every value change of the
// signals it is attached to.
type SignalChangeLogger struct {
	LogHookBase
}

// NewSignalChangeLogger returns a SignalChangeLogger which will write into
// the logger.
func NewSignalChangeLogger(logger *log.Logger) *SignalChangeLogger {
	h := new(SignalChangeLogger)
	h.Logger = logger
	return h
}

// Func writes the transition into the logger.
func (h *SignalChangeLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosSignalChange {
		return
	}

	sig := ctx.Domain.(*Signal)
	h.Logger.Printf("%.10f, %s: %v -> %v",
		float64(sig.eng.CurrentTime()), sig.Name(), ctx.Detail, ctx.Item)
}
