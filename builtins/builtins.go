// builtins.go — one-call installation of every built-in native.
package builtins

import magicscript "github.com/goldfrosch/MagicScript"

// RegisterAll installs console.*, math.*, and Array.* on ip, the set
// spec.md §6's builtin table names in full. Hosts that want a narrower
// surface can call the individual Register* functions instead.
func RegisterAll(ip *magicscript.Interpreter) {
	RegisterConsole(ip)
	RegisterMath(ip)
	RegisterArray(ip)
}
