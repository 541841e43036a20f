// arraylib.go — the Array.* native fallback family.
//
// These are the natives evalCall's `this`-attached re-resolution
// (interpreter_ops.go's resolveCallee) falls back to when a call like
// `a.push_back(4)` doesn't resolve as a plain function named
// "a.push_back" but `a` evaluates to an Array: the callee gets rewritten
// to "Array.push_back" with `a` prepended as the first argument, which
// is exactly the literal name these are registered under. Grounded on
// spec.md §6's builtin table and the explicit bug-fix note in §9:
// Array.length must return 0 on an empty array, not error, unlike the
// original source it was distilled from.
package builtins

import (
	"fmt"

	magicscript "github.com/goldfrosch/MagicScript"
)

// RegisterArray installs Array.push_back, Array.push_front,
// Array.pop_back, Array.pop_front, and Array.length on ip.
func RegisterArray(ip *magicscript.Interpreter) {
	ip.RegisterNative("Array.push_back", 8, 1.0, arrayPushBack)
	ip.RegisterNative("Array.push_front", 8, 1.0, arrayPushFront)
	ip.RegisterNative("Array.pop_back", 0, 1.0, arrayPopBack)
	ip.RegisterNative("Array.pop_front", 0, 1.0, arrayPopFront)
	ip.RegisterNative("Array.length", 0, 0.5, arrayLength)
}

func requireArray(args []magicscript.Value, name string) (*magicscript.Value, error) {
	if len(args) == 0 || args[0].Kind != magicscript.KindArray {
		return nil, fmt.Errorf("%s requires an array as its first argument", name)
	}
	return &args[0], nil
}

func arrayPushBack(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
	arr, err := requireArray(args, "Array.push_back")
	if err != nil {
		return magicscript.NullValue, err
	}
	if len(args) < 2 {
		return magicscript.NullValue, fmt.Errorf("Array.push_back requires (arr, value)")
	}
	arr.Arr.Elements = append(arr.Arr.Elements, args[1])
	ctx.Interp.AddSpace(magicscript.SizeBytes(args[1]))
	return *arr, nil
}

func arrayPushFront(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
	arr, err := requireArray(args, "Array.push_front")
	if err != nil {
		return magicscript.NullValue, err
	}
	if len(args) < 2 {
		return magicscript.NullValue, fmt.Errorf("Array.push_front requires (arr, value)")
	}
	arr.Arr.Elements = append([]magicscript.Value{args[1]}, arr.Arr.Elements...)
	ctx.Interp.AddSpace(magicscript.SizeBytes(args[1]))
	return *arr, nil
}

func arrayPopBack(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
	arr, err := requireArray(args, "Array.pop_back")
	if err != nil {
		return magicscript.NullValue, err
	}
	n := len(arr.Arr.Elements)
	if n == 0 {
		return magicscript.NullValue, nil
	}
	last := arr.Arr.Elements[n-1]
	arr.Arr.Elements = arr.Arr.Elements[:n-1]
	ctx.Interp.ReleaseSpace(magicscript.SizeBytes(last))
	return last, nil
}

func arrayPopFront(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
	arr, err := requireArray(args, "Array.pop_front")
	if err != nil {
		return magicscript.NullValue, err
	}
	if len(arr.Arr.Elements) == 0 {
		return magicscript.NullValue, nil
	}
	first := arr.Arr.Elements[0]
	arr.Arr.Elements = arr.Arr.Elements[1:]
	ctx.Interp.ReleaseSpace(magicscript.SizeBytes(first))
	return first, nil
}

// arrayLength returns the element count of arg 0, including 0 for an
// empty array — the fix spec.md §9 calls for relative to the original
// source's copy-paste bug of erroring on an empty array.
func arrayLength(args []magicscript.Value, ctx *magicscript.CallContext) (magicscript.Value, error) {
	arr, err := requireArray(args, "Array.length")
	if err != nil {
		return magicscript.NullValue, err
	}
	return magicscript.NumberValue(float64(len(arr.Arr.Elements))), nil
}
