// environment.go — lexical scoping.
//
// Environment is a singly-linked chain of frames, the same shape as the
// teacher's `Env{parent, table}` in interpreter.go, renamed to spec.md's
// Define/Assign/Lookup vocabulary. Clone adds a deep-frame/shallow-
// interior snapshot used by the interpreter's PreAnalysis execution mode
// (spec.md §4.4.4): a full chain of fresh frames is produced so that any
// `let`/`const` binding made during the dry run is discarded, but Array/
// Object/Function values already bound before the clone keep pointing at
// the same shared interiors, so PreAnalysis observes (without mutating
// the program's true state beyond its own frames) the same objects live
// execution would.
package magicscript

// Environment is one lexical scope frame.
type Environment struct {
	parent *Environment
	vars   map[string]binding
}

type binding struct {
	value   Value
	isConst bool
}

// NewEnvironment creates a root environment with no parent.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]binding)}
}

// NewChildEnvironment creates a new scope nested inside parent.
func NewChildEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, vars: make(map[string]binding)}
}

// Define introduces name in the current frame, shadowing any binding of
// the same name in an enclosing frame. It reports false, without
// modifying the frame, if name is already bound in this same frame — no
// shadowing at the same lexical level.
func (e *Environment) Define(name string, v Value, isConst bool) bool {
	if _, exists := e.vars[name]; exists {
		return false
	}
	e.vars[name] = binding{value: v, isConst: isConst}
	return true
}

// Lookup resolves name by walking outward from e, returning ok=false if
// no enclosing frame defines it.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.vars[name]; ok {
			return b.value, true
		}
	}
	return NullValue, false
}

// Assign rewrites the nearest enclosing binding of name. It reports
// (found=false) if no such binding exists, and (found=true, constErr=true)
// if the nearest binding is a `const`.
func (e *Environment) Assign(name string, v Value) (found bool, constErr bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.vars[name]; ok {
			if b.isConst {
				return true, true
			}
			env.vars[name] = binding{value: v, isConst: false}
			return true, false
		}
	}
	return false, false
}

// Clone produces a fresh frame chain mirroring e's shape exactly (same
// number of frames, same names per frame), copying each binding's Value
// by value — which, for Array/Object/Function, copies the pointer to the
// shared interior, not the interior itself. Mutations PreAnalysis makes
// to a variable binding (Define/Assign within the cloned chain) never
// propagate back to e; mutations it makes through a shared Array/Object
// pointer do.
func (e *Environment) Clone() *Environment {
	if e == nil {
		return nil
	}
	clone := &Environment{parent: e.parent.Clone(), vars: make(map[string]binding, len(e.vars))}
	for name, b := range e.vars {
		clone.vars[name] = b
	}
	return clone
}
