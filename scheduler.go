// scheduler.go — event-loop contract.
//
// Scheduler is deliberately interface-only: MagicScript's core has no
// concrete event loop, mirroring the C++ plugin's MsEventLoop, whose
// actual queue lives in host (Unreal) code and is only ever addressed
// through a narrow contract from the interpreter side. A host embedding
// MagicScript supplies its own Scheduler (backed by its own tick, its
// own timers) and the interpreter's builtins package can call Schedule
// through it without knowing how it is implemented.
package magicscript

import "time"

// Scheduler lets host code register a MagicScript function to run at a
// future time and advance those pending calls on its own tick.
type Scheduler interface {
	// Schedule arranges for fn to run (with no arguments) at or after
	// the given time.
	Schedule(at time.Time, fn *FunctionValue)

	// Tick runs every scheduled function whose time has come, using ip
	// to perform the calls. Host code decides when and how often to
	// call Tick (once per engine frame, once per network poll, etc.).
	Tick(now time.Time, ip *Interpreter)
}
