package sim

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// HookPosBeforeResume is a hook position that triggers before an activity
// is resumed by the engine.
var HookPosBeforeResume = &HookPos{Name: "BeforeResume"}

// HookPosAfterYield is a hook position that triggers after a resumed
// activity hands control back to the engine.
var HookPosAfterYield = &HookPos{Name: "AfterYield"}

// HookPosSignalChange is a hook position that triggers when a signal value
// changes.
var HookPosSignalChange = &HookPos{Name: "SignalChange"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
