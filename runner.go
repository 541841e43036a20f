// runner.go — per-path script cache and import resolution.
//
// Runner is MagicScript's module loader, a direct simplification of the
// teacher's modules.go: filesystem-only (no http(s) fetching, since a
// game-engine embedding has no use for network imports), single
// relative-to-Root resolution instead of importer-dir → CWD →
// MSGPATH search chain, and DFS cycle detection carried over unchanged
// (the importStack threaded through runPath/resolveImports standing in
// for the teacher's `loadStack`). Also
// carried over unchanged: "only successful loads are cached" and
// caching by canonical (cleaned, absolute) path.
package magicscript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ScriptHost lets a Runner load source from something other than the
// local filesystem (an embedded asset pack, a network store, an
// in-memory test fixture) while keeping the same caching and cycle
// detection. LoadSource returns the source text for a canonical path;
// SaveSource, when non-nil, is used by tooling that edits scripts
// in-place (the REPL's `:save` style workflows the teacher's cmd/msg
// supports).
type ScriptHost interface {
	LoadSource(canonicalPath string) (string, error)
	SaveSource(canonicalPath, src string) error
}

// FileScriptHost is the default ScriptHost, reading/writing plain
// files under Root.
type FileScriptHost struct{ Root string }

func (h FileScriptHost) LoadSource(canonicalPath string) (string, error) {
	b, err := os.ReadFile(canonicalPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h FileScriptHost) SaveSource(canonicalPath, src string) error {
	return os.WriteFile(canonicalPath, []byte(src), 0644)
}

// cacheEntry is a per-path cache record: unlike the teacher's
// moduleRec (which snapshots only the exported map), a cacheEntry
// keeps the whole Interpreter that ran the script, so RunScriptFile can
// report the static complexity and peak space usage of the last run
// alongside its result.
type cacheEntry struct {
	source         string
	program        *Program
	interp         *Interpreter
	lastComplexity ComplexityReport
	lastResult     RunResult
}

// Runner owns a per-canonical-path cache (each cached script keeps its
// own Interpreter and Global environment) and resolves `import "path";`
// statements relative to the importing script's directory.
type Runner struct {
	Root  string
	Host  ScriptHost
	Log   Logger

	cache    map[string]*cacheEntry
	visiting map[string]bool
}

// NewRunner constructs a Runner rooted at root, using a FileScriptHost
// by default.
func NewRunner(root string) *Runner {
	return &Runner{
		Root:     root,
		Host:     FileScriptHost{Root: root},
		Log:      StdLogger{},
		cache:    make(map[string]*cacheEntry),
		visiting: make(map[string]bool),
	}
}

// resolve turns a possibly-relative import spec into a canonical,
// absolute, cleaned path under Root.
func (r *Runner) resolve(spec string) (string, error) {
	p := spec
	if filepath.Ext(p) == "" {
		p += ".ms"
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.Root, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("cannot resolve import %q: %w", spec, err)
	}
	return filepath.Clean(abs), nil
}

// RunScriptFile loads, parses (if not already cached), and executes
// the script at spec, invoking the function named entry (spec.md §4.6:
// RunScriptFile(path, entry, context)) with zero arguments as its
// entry point. A warm cache hit skips lexing/parsing and reruns the
// cached *Program on the cached Interpreter, whose Global is re-seeded
// with only its registered natives before every run, matching the
// teacher's "only successful loads are cached" rule: a script that
// previously failed to parse is retried from scratch on every call.
func (r *Runner) RunScriptFile(spec, entry string) (RunResult, error) {
	canon, err := r.resolve(spec)
	if err != nil {
		return RunResult{}, err
	}
	return r.runPath(canon, entry, nil)
}

// runPath drives the DFS: importStack tracks the chain of canonical
// paths currently being loaded, so a cycle is detected the moment a
// path reappears on it.
func (r *Runner) runPath(canon, entry string, importStack []string) (RunResult, error) {
	for _, s := range importStack {
		if s == canon {
			return RunResult{}, fmt.Errorf("import cycle detected: %s", joinCycle(importStack, canon))
		}
	}

	if e, ok := r.cache[canon]; ok {
		return r.execEntry(e, canon, entry, importStack), nil
	}

	src, err := r.Host.LoadSource(canon)
	if err != nil {
		return RunResult{}, fmt.Errorf("script not found: %s", canon)
	}

	toks := Tokenize(src)
	for _, t := range toks {
		if t.Kind == TokenError {
			pe := &ParseError{Line: t.Pos.Line, Col: t.Pos.Column, Msg: t.Lexeme, Lexeme: t.Lexeme}
			return RunResult{Err: pe, Source: src, Path: canon}, nil
		}
	}
	p := NewParser(toks)
	program, errs := p.Parse()
	if len(errs) > 0 {
		return RunResult{Err: errs[0], Source: src, Path: canon}, nil
	}

	ce := &cacheEntry{source: src, program: program, interp: NewInterpreter()}
	ce.interp.Log = r.Log
	r.cache[canon] = ce

	result := r.execEntry(ce, canon, entry, importStack)
	if result.Err != nil {
		// Do not cache a failed run: retry parsing/importing fresh next time.
		delete(r.cache, canon)
	}
	return result, nil
}

// execEntry runs ce's top-level statements, resolving imports first,
// then invokes the function named entry with zero arguments if one is
// defined — unlike Interpreter.run, a missing entry function is not an
// error here: an imported script may be a pure library with no
// invokable entry point at all.
func (r *Runner) execEntry(ce *cacheEntry, canon, entry string, importStack []string) RunResult {
	stack := append(append([]string{}, importStack...), canon)
	if err := r.resolveImports(ce.program, filepath.Dir(canon), stack); err != nil {
		return RunResult{Err: err, Source: ce.source, Path: canon}
	}

	analysisStart := time.Now()
	ce.lastComplexity = AnalyzeComplexity(ce.program)
	analysisTime := time.Since(analysisStart).Seconds()

	ce.interp.resetCounters()

	// Re-seed Global with only the registered natives, so a warm-cache
	// rerun declares the script's top-level names into a clean scope.
	ce.interp.Global = NewEnvironment()
	for name, fn := range ce.interp.natives {
		ce.interp.Global.Define(name, FunctionVal(fn), true)
	}
	// Imports were already resolved above; run every other top-level
	// statement directly against Global, not a child scope: a
	// `spell main(){}` declared at the top level must land in Global
	// itself for the Global.Lookup(entry) below to see it.
	body := &Program{}
	for _, stmt := range ce.program.Statements {
		if _, isImport := stmt.(*ImportStmt); !isImport {
			body.Statements = append(body.Statements, stmt)
		}
	}
	execStart := time.Now()
	ce.interp.execProgram(body, ce.interp.Global)
	var v Value
	if !ce.interp.aborted {
		if fn, ok := ce.interp.Global.Lookup(entry); ok && fn.Kind == KindFunction {
			v = ce.interp.callFunction(fn, nil, ce.program.Pos())
		}
	}
	execTime := time.Since(execStart).Seconds()

	result := ce.interp.buildResult(v, ce.source, canon, ce.lastComplexity, analysisTime, execTime)
	ce.lastResult = result
	return result
}

// resolveImports pre-loads every `import "path";` statement at the top
// level of program (MagicScript does not support nested imports inside
// blocks), binding each imported script's exported Global bindings into
// this program's own top-level scope isn't attempted here — spec.md's
// import statement only guarantees the imported script runs once for
// its side effects and populates the shared Runner cache; it does not
// specify an export/namespace mechanism, so none is invented here.
func (r *Runner) resolveImports(program *Program, dir string, stack []string) error {
	for _, stmt := range program.Statements {
		imp, ok := stmt.(*ImportStmt)
		if !ok {
			continue
		}
		spec := imp.Path
		if filepath.Ext(spec) == "" {
			spec += ".ms"
		}
		var canon string
		var err error
		if filepath.IsAbs(spec) {
			canon = filepath.Clean(spec)
		} else {
			canon, err = filepath.Abs(filepath.Join(dir, spec))
			if err != nil {
				return fmt.Errorf("cannot resolve import %q: %w", imp.Path, err)
			}
			canon = filepath.Clean(canon)
		}
		res, err := r.runPath(canon, "main", stack)
		if err != nil {
			return err
		}
		if res.Err != nil {
			return fmt.Errorf("import %q failed: %w", imp.Path, res.Err)
		}
	}
	return nil
}

func joinCycle(stack []string, again string) string {
	i := 0
	for idx, s := range stack {
		if s == again {
			i = idx
			break
		}
	}
	chain := append(append([]string{}, stack[i:]...), again)
	out := make([]string, len(chain))
	for k, s := range chain {
		out[k] = filepath.Base(s)
	}
	joined := out[0]
	for _, s := range out[1:] {
		joined += " -> " + s
	}
	return joined
}
