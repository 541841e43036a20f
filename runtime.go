// runtime.go — small runtime-wide constants.
package magicscript

// Version identifies the embeddable MagicScript runtime, reported by
// the CLI's `version` subcommand and useful for hosts that log which
// interpreter build produced a given RunResult.
const Version = "0.1.0"

// DefaultSpaceBudgetBytes is the space accountant's ceiling when a host
// does not supply its own via Interpreter.SetSpaceBudget — generous
// enough that ordinary scripts never hit it, tight enough to catch a
// runaway allocation loop (spec.md §4.4.2).
const DefaultSpaceBudgetBytes = 16 * 1024 * 1024
