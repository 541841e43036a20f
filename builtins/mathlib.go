// mathlib.go — the math.* numeric builtins.
//
// spec.md §6's builtin table names a single math function, math.pow;
// grounded on the teacher's own math.* native family (which wraps the
// Go standard math package's functions one-for-one under the same
// dotted names), narrowed to the one function the table requires.
package builtins

import (
	"fmt"
	"math"

	magicscript "github.com/goldfrosch/MagicScript"
)

// RegisterMath installs math.pow on ip.
func RegisterMath(ip *magicscript.Interpreter) {
	ip.RegisterNative("math.pow", 8, 1.0, func(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
		if len(args) < 2 {
			return magicscript.NullValue, fmt.Errorf("math.pow requires (base, exponent)")
		}
		return magicscript.NumberValue(math.Pow(args[0].AsNumber(), args[1].AsNumber())), nil
	})
}
