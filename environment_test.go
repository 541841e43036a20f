package magicscript

import "testing"

func TestEnvironmentDefineLookup(t *testing.T) {
	root := NewEnvironment()
	root.Define("x", NumberValue(1), false)

	child := NewChildEnvironment(root)
	if v, ok := child.Lookup("x"); !ok || v.Num != 1 {
		t.Fatalf("expected inherited x=1, got %v ok=%v", v, ok)
	}

	child.Define("x", NumberValue(2), false)
	if v, _ := child.Lookup("x"); v.Num != 2 {
		t.Fatalf("shadowing failed: got %v", v)
	}
	if v, _ := root.Lookup("x"); v.Num != 1 {
		t.Fatalf("shadowing leaked into parent: got %v", v)
	}
}

func TestEnvironmentDefineRejectsRedeclarationInSameFrame(t *testing.T) {
	env := NewEnvironment()
	if ok := env.Define("x", NumberValue(1), false); !ok {
		t.Fatalf("expected the first Define to succeed")
	}
	if ok := env.Define("x", NumberValue(2), false); ok {
		t.Fatalf("expected redeclaring %q in the same frame to fail", "x")
	}
	if v, _ := env.Lookup("x"); v.Num != 1 {
		t.Fatalf("a rejected redefinition must not overwrite the existing binding, got %v", v.Num)
	}

	child := NewChildEnvironment(env)
	if ok := child.Define("x", NumberValue(9), false); !ok {
		t.Fatalf("a child frame may still shadow a parent's binding of the same name")
	}
}

func TestEnvironmentAssignConst(t *testing.T) {
	env := NewEnvironment()
	env.Define("pi", NumberValue(3), true)

	if found, constErr := env.Assign("pi", NumberValue(4)); !found || !constErr {
		t.Fatalf("expected found=true constErr=true, got found=%v constErr=%v", found, constErr)
	}
	if found, _ := env.Assign("missing", NumberValue(1)); found {
		t.Fatalf("expected found=false for undefined variable")
	}
}

func TestEnvironmentAssignWalksParents(t *testing.T) {
	root := NewEnvironment()
	root.Define("x", NumberValue(1), false)
	child := NewChildEnvironment(root)

	if found, constErr := child.Assign("x", NumberValue(9)); !found || constErr {
		t.Fatalf("expected found=true constErr=false, got %v %v", found, constErr)
	}
	if v, _ := root.Lookup("x"); v.Num != 9 {
		t.Fatalf("assignment through child did not reach root binding, got %v", v)
	}
}

func TestEnvironmentCloneSharesInteriorsNotBindings(t *testing.T) {
	root := NewEnvironment()
	arr := NewArray([]Value{NumberValue(1), NumberValue(2)})
	root.Define("shared", arr, false)
	root.Define("scalar", NumberValue(10), false)

	clone := root.Clone()

	// Mutating the shared Array's interior through the clone is visible
	// from the original, since Clone only deep-copies frames.
	if v, ok := clone.Lookup("shared"); ok {
		v.Arr.Elements = append(v.Arr.Elements, NumberValue(3))
	}
	if v, _ := root.Lookup("shared"); len(v.Arr.Elements) != 3 {
		t.Fatalf("expected shared array mutation visible in original, got len=%d", len(v.Arr.Elements))
	}

	// Rebinding a plain variable in the clone must not affect the original.
	clone.Assign("scalar", NumberValue(99))
	if v, _ := root.Lookup("scalar"); v.Num != 10 {
		t.Fatalf("expected clone rebinding isolated from original, got %v", v.Num)
	}
}
