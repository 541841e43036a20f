// console.go — the console.* logging builtins.
//
// Grounded on the teacher's own builtin_core.go console family
// (console.log/warn/error backed by the interpreter's Logger), narrowed
// to the three levels spec.md §6's builtin table names and rerouted
// onto magicscript.DebugString for argument stringification instead of
// the teacher's fuller value printer.
package builtins

import (
	"strings"

	magicscript "github.com/goldfrosch/MagicScript"
)

// RegisterConsole installs console.log, console.warn, and console.error
// on ip. Every call is zero-cost to the space accountant (logging
// allocates nothing the script can observe) but still contributes a
// small constant to the time-complexity accumulator, mirroring the
// teacher's convention of costing every native above zero.
func RegisterConsole(ip *magicscript.Interpreter) {
	ip.RegisterNative("console.log", 0, 0.1, consoleLevel(func(ip *magicscript.Interpreter, msg string) {
		ip.Log.Infof("%s", msg)
	}))
	ip.RegisterNative("console.warn", 0, 0.1, consoleLevel(func(ip *magicscript.Interpreter, msg string) {
		ip.Log.Warnf("%s", msg)
	}))
	ip.RegisterNative("console.error", 0, 0.1, consoleLevel(func(ip *magicscript.Interpreter, msg string) {
		ip.Log.Errorf("%s", msg)
	}))
}

func consoleLevel(emit func(ip *magicscript.Interpreter, msg string)) magicscript.NativeFunc {
	return func(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = magicscript.DebugString(a)
		}
		emit(ctx.Interp, strings.Join(parts, " "))
		return magicscript.NullValue, nil
	}
}
