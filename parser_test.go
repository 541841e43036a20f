package magicscript

import "testing"

func parseOK(t *testing.T, src string) *Program {
	t.Helper()
	toks := Tokenize(src)
	for _, tk := range toks {
		if tk.Kind == TokenError {
			t.Fatalf("lex error: %s", tk.Lexeme)
		}
	}
	p := NewParser(toks)
	prog, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseOK(t, `let x = 1; const y = 2;`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*VarDeclStmt)
	if !ok || let.IsConst || let.Name != "x" {
		t.Fatalf("statement 0: got %#v", prog.Statements[0])
	}
	c, ok := prog.Statements[1].(*VarDeclStmt)
	if !ok || !c.IsConst || c.Name != "y" {
		t.Fatalf("statement 1: got %#v", prog.Statements[1])
	}
}

func TestParseConstWithoutInitializerErrors(t *testing.T) {
	toks := Tokenize(`const y;`)
	p := NewParser(toks)
	_, errs := p.Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a const with no initializer")
	}
}

func TestParseSpellDeclaration(t *testing.T) {
	prog := parseOK(t, `spell add(a, b) { return a + b; }`)
	fd, ok := prog.Statements[0].(*FuncDeclStmt)
	if !ok {
		t.Fatalf("expected FuncDeclStmt, got %T", prog.Statements[0])
	}
	if fd.Name != "add" || len(fd.Params) != 2 || fd.Params[0] != "a" || fd.Params[1] != "b" {
		t.Fatalf("got %#v", fd)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, `let x = 1 + 2 * 3;`)
	decl := prog.Statements[0].(*VarDeclStmt)
	bin, ok := decl.Init.(*BinaryExpr)
	if !ok || bin.Op != TokenPlus {
		t.Fatalf("expected top-level +, got %#v", decl.Init)
	}
	rhs, ok := bin.Right.(*BinaryExpr)
	if !ok || rhs.Op != TokenStar {
		t.Fatalf("expected * nested under +, got %#v", bin.Right)
	}
}

func TestParseMethodCallRewritesCalleeAndThis(t *testing.T) {
	prog := parseOK(t, `let x = a.push_back(1);`)
	decl := prog.Statements[0].(*VarDeclStmt)
	call, ok := decl.Init.(*CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %#v", decl.Init)
	}
	if call.Callee != "a.push_back" {
		t.Fatalf("expected rewritten callee \"a.push_back\", got %q", call.Callee)
	}
	if call.This == nil {
		t.Fatalf("expected This to be set for a method-style call")
	}
	ident, ok := call.This.(*IdentifierExpr)
	if !ok || ident.Name != "a" {
		t.Fatalf("expected This to be identifier \"a\", got %#v", call.This)
	}
}

func TestParseArrowFunctionSingleExprDesugarsToReturn(t *testing.T) {
	prog := parseOK(t, `let f = (x) => x + 1;`)
	decl := prog.Statements[0].(*VarDeclStmt)
	arrow, ok := decl.Init.(*ArrowFunctionExpr)
	if !ok {
		t.Fatalf("expected ArrowFunctionExpr, got %#v", decl.Init)
	}
	if len(arrow.Body.Statements) != 1 {
		t.Fatalf("expected a single synthesized statement, got %d", len(arrow.Body.Statements))
	}
	if _, ok := arrow.Body.Statements[0].(*ReturnStmt); !ok {
		t.Fatalf("expected synthesized ReturnStmt, got %T", arrow.Body.Statements[0])
	}
}

func TestParseSwitchHasNoBreakKeyword(t *testing.T) {
	prog := parseOK(t, `switch (x) { case 1: y = 1; case 2: y = 2; default: y = 0; }`)
	sw, ok := prog.Statements[0].(*SwitchStmt)
	if !ok {
		t.Fatalf("expected SwitchStmt, got %T", prog.Statements[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(sw.Cases))
	}
	if sw.Cases[2].Value != nil {
		t.Fatalf("expected the last case to be the nil-valued default")
	}
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	prog := parseOK(t, `let a = [1, 2, 3]; let o = {x: 1, y: 2};`)
	arr := prog.Statements[0].(*VarDeclStmt).Init.(*ArrayLiteralExpr)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	obj := prog.Statements[1].(*VarDeclStmt).Init.(*ObjectLiteralExpr)
	if len(obj.Properties) != 2 || obj.Properties[0].Key != "x" || obj.Properties[1].Key != "y" {
		t.Fatalf("got %#v", obj.Properties)
	}
}
