// interpreter.go — public API surface of the MagicScript interpreter.
//
// This file is deliberately the only place a host needs to read to
// embed MagicScript: the Interpreter type, its construction, its two
// run modes (live execution and the dry-run PreAnalysis described in
// spec.md §4.4.4), the entry-point invocation contract, and the
// native-registration surface. Statement/expression evaluation lives
// in interpreter_exec.go; call dispatch, the abort protocol, and the
// space accountant live in interpreter_ops.go — both are private
// implementation the public surface here delegates to, following the
// same split the teacher's own interpreter.go / interpreter_exec.go /
// interpreter_ops.go trio uses (public façade vs. private exec vs.
// private ops).
package magicscript

import (
	"fmt"
	"time"
)

// Limits bounds the two runtime watchdogs spec.md §4.4.3 calls for: the
// per-loop iteration cap (MaxWhileIterations, applied to each while
// statement and to each for statement) and the call-stack depth cap. Both
// are configurable per Interpreter rather than hardcoded constants —
// REDESIGN FLAGS calls the fixed 128/64 caps out as too rigid for
// embedding use cases with very different complexity budgets.
type Limits struct {
	MaxWhileIterations int
	MaxCallDepth       int
}

// DefaultLimits reproduces the original fixed caps (128 while
// iterations, 64 call-stack frames); NewInterpreter installs them, so
// callers who don't care about tuning get the same
// ceiling the original Unreal plugin shipped with.
func DefaultLimits() Limits {
	return Limits{MaxWhileIterations: 128, MaxCallDepth: 64}
}

// Logger is the sink every diagnostic the interpreter itself emits
// (runtime errors, via SignalRuntimeError) is routed through; the
// builtins package's console.* natives write to the same Logger through
// CallContext.Interp.Log. Its three-
// level split (Errorf/Warnf/Infof) mirrors the category/severity split
// of the original plugin's logging subsystem.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// StdLogger is the zero-configuration Logger every Interpreter gets by
// default: it writes to stdout via fmt.Printf-style formatting, with no
// buffering and no level filtering. Hosts that want structured logging
// supply their own Logger implementation instead.
type StdLogger struct{}

func (StdLogger) Errorf(format string, args ...interface{}) { fmt.Printf("[error] "+format+"\n", args...) }
func (StdLogger) Warnf(format string, args ...interface{})  { fmt.Printf("[warn] "+format+"\n", args...) }
func (StdLogger) Infof(format string, args ...interface{})  { fmt.Printf("[info] "+format+"\n", args...) }

// Interpreter is the entry point for running MagicScript programs.
// Construct with NewInterpreter; Global is where top-level `let`/
// `const`/`spell` declarations land, and persists across successive
// Run calls on the same Interpreter (the REPL's persistent-session
// mode relies on this).
type Interpreter struct {
	Global *Environment
	Limits Limits
	Log    Logger

	natives map[string]*FunctionValue

	callDepth int
	aborted   bool
	abortErr  *RuntimeError

	currentSpaceBytes int
	peakSpaceBytes    int
	spaceBudget       func() int

	dynamicExecutionCount int
	expressionEvalCount   int
	dynamicCallCount      int
	timeComplexityAccum   float64

	preAnalysis bool // true while running in the PreAnalysis dry-run mode
}

// NewInterpreter constructs a ready-to-use Interpreter with
// DefaultLimits, a StdLogger, an empty Global environment, and no
// registered natives. Callers typically follow this with one or more
// RegisterNative calls (or install a builtins package's registration
// helper) before the first Run.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global:  NewEnvironment(),
		Limits:  DefaultLimits(),
		Log:     StdLogger{},
		natives: make(map[string]*FunctionValue),
	}
}

// RunResult bundles the program's final Value plus the caller-visible
// diagnostics spec.md §6 lists: the static complexity numbers (from
// analyzing the parsed Program once, before execution) and the dynamic
// runtime counters accumulated while it ran. This is new relative to
// the original plugin's single-Value subsystem entry point, added
// because the original Unreal subsystem's per-run result struct
// (return value + success flag + diagnostics + timing) carries
// strictly more than a bare (Value, error) pair.
type RunResult struct {
	Value Value
	Err   error

	Source string
	Path   string // "" for in-memory source

	Aborted bool // true if the run ended via the abort protocol rather than completing normally

	StaticComplexityScore float64
	StatementCount        int
	MaxLoopDepth          int
	StaticFunctionCallCount int

	DynamicExecutionCount    int
	FunctionCallCount        int // dynamic: number of CallFunction invocations
	ExpressionEvaluationCount int
	PeakSpaceBytes           int

	AnalysisTimeSeconds  float64
	ExecutionTimeSeconds float64
}

// Run parses src, statically analyzes it (spec.md §4.5), then invokes
// the entry-point function named "main" with zero arguments after
// running every top-level declaration. Top-level bindings persist into
// Global exactly like a REPL line.
func (ip *Interpreter) Run(src string) RunResult {
	return ip.run(src, "", "main")
}

// RunEntry is Run with a caller-chosen entry-point name instead of the
// default "main".
func (ip *Interpreter) RunEntry(src, entry string) RunResult {
	return ip.run(src, "", entry)
}

// RunNamed is Run, but tags the result with a path/name used in error
// messages and by the Runner's per-path cache.
func (ip *Interpreter) RunNamed(src, path string) RunResult {
	return ip.run(src, path, "main")
}

// RunTopLevel executes only src's top-level statements against the real,
// persistent Global — no entry-point lookup is attempted, and it is not
// an error for the source to define no functions at all. This is the
// REPL's execution mode: each line's `let`/`const`/`spell` bindings must
// survive into the next line the way a script's top-level bindings would,
// but a bare expression like `1 + 1;` is not itself a full program with a
// "main" to invoke.
func (ip *Interpreter) RunTopLevel(src, path string) RunResult {
	return ip.run(src, path, "")
}

func (ip *Interpreter) run(src, path, entry string) RunResult {
	program, result, ok := ip.parseForRun(src, path)
	if !ok {
		return result
	}

	analysisStart := time.Now()
	report := AnalyzeComplexity(program)
	analysisTime := time.Since(analysisStart).Seconds()

	ip.resetCounters()

	// Top-level statements run directly against Global, not a child
	// scope: a `spell main(){...}` or `let`/`const` declared at the top
	// level must land in Global itself so the entry-point lookup below
	// (and any later Run/RunTopLevel call on the same Interpreter) can
	// see it — Environment.Lookup only walks toward parents, never into
	// children.
	execStart := time.Now()
	v := ip.execProgram(program, ip.Global)
	if entry != "" && !ip.aborted {
		if fn, ok := ip.Global.Lookup(entry); ok && fn.Kind == KindFunction {
			v = ip.callFunction(fn, nil, program.Pos())
		} else if !ip.aborted {
			ip.SignalRuntimeError(program.Pos(), "no entry-point function %q defined", entry)
		}
	}
	execTime := time.Since(execStart).Seconds()

	return ip.buildResult(v, src, path, report, analysisTime, execTime)
}

func (ip *Interpreter) parseForRun(src, path string) (*Program, RunResult, bool) {
	toks := Tokenize(src)
	for _, t := range toks {
		if t.Kind == TokenError {
			err := &ParseError{Line: t.Pos.Line, Col: t.Pos.Column, Msg: t.Lexeme, Lexeme: t.Lexeme}
			return nil, RunResult{Err: err, Source: src, Path: path}, false
		}
	}
	p := NewParser(toks)
	program, errs := p.Parse()
	if len(errs) > 0 {
		return nil, RunResult{Err: errs[0], Source: src, Path: path}, false
	}
	return program, RunResult{}, true
}

func (ip *Interpreter) buildResult(v Value, src, path string, report ComplexityReport, analysisTime, execTime float64) RunResult {
	res := RunResult{
		Value:                     v,
		Source:                    src,
		Path:                      path,
		StaticComplexityScore:     report.Score(),
		StatementCount:            report.StatementCount,
		MaxLoopDepth:              report.MaxLoopDepth,
		StaticFunctionCallCount:   report.FunctionCallCount,
		DynamicExecutionCount:     ip.dynamicExecutionCount,
		FunctionCallCount:         ip.dynamicCallCount,
		ExpressionEvaluationCount: ip.expressionEvalCount,
		PeakSpaceBytes:            ip.peakSpaceBytes,
		AnalysisTimeSeconds:       analysisTime,
		ExecutionTimeSeconds:      execTime,
	}
	if ip.aborted {
		res.Err = ip.abortErr
		res.Aborted = true
	}
	return res
}

// PreAnalyze runs src against a cloned snapshot of Global (see
// Environment.Clone) so that top-level bindings the program would make
// never reach the real Global, while any Array/Object/Function it
// mutates through a pre-existing shared reference still observes that
// mutation — the PreAnalysis dry-run mode spec.md §4.4.4 describes,
// used by hosts that want to speculatively execute untrusted input
// before committing its effects. PreAnalyze does not invoke an entry
// point; it evaluates only the top-level statements, matching a pure
// dry-run of side effects rather than a full program execution.
func (ip *Interpreter) PreAnalyze(src string) RunResult {
	program, result, ok := ip.parseForRun(src, "")
	if !ok {
		return result
	}

	analysisStart := time.Now()
	report := AnalyzeComplexity(program)
	analysisTime := time.Since(analysisStart).Seconds()

	ip.resetCounters()
	ip.preAnalysis = true
	defer func() { ip.preAnalysis = false }()

	snapshot := ip.Global.Clone()
	execStart := time.Now()
	v := ip.execProgram(program, NewChildEnvironment(snapshot))
	execTime := time.Since(execStart).Seconds()

	return ip.buildResult(v, src, "", report, analysisTime, execTime)
}

func (ip *Interpreter) resetCounters() {
	ip.resetAbort()
	ip.currentSpaceBytes = 0
	ip.peakSpaceBytes = 0
	ip.dynamicExecutionCount = 0
	ip.expressionEvalCount = 0
	ip.dynamicCallCount = 0
	ip.timeComplexityAccum = 0
}

func (ip *Interpreter) resetAbort() {
	ip.aborted = false
	ip.abortErr = nil
	ip.callDepth = 0
}

// AddSpace lets a native builtin (see the builtins package's Array.*
// family) record a space allocation it made on the script's behalf,
// e.g. appending an element to a shared Array. ReleaseSpace is its
// inverse.
func (ip *Interpreter) AddSpace(n int) { ip.addSpace(n) }

// ReleaseSpace lets a native builtin record a deallocation it made on
// the script's behalf.
func (ip *Interpreter) ReleaseSpace(n int) { ip.releaseSpace(n) }

// addSpace records a space allocation, updating the peak watermark.
func (ip *Interpreter) addSpace(n int) {
	ip.currentSpaceBytes += n
	if ip.currentSpaceBytes > ip.peakSpaceBytes {
		ip.peakSpaceBytes = ip.currentSpaceBytes
	}
}

// releaseSpace records a deallocation (a function call returning),
// clamped at zero per spec.md §4.4.2.
func (ip *Interpreter) releaseSpace(n int) {
	ip.currentSpaceBytes -= n
	if ip.currentSpaceBytes < 0 {
		ip.currentSpaceBytes = 0
	}
}

// RegisterNative installs a native function under name, available to
// MagicScript programs as a plain call `name(...)`. spaceCostBytes and
// timeComplexityScore are the resource-accounting hints spec.md
// §4.4.1/§4.5 require every native to declare, grounded on the
// teacher's own RegisterNative(name, params, ret, impl) contract —
// narrowed here since MagicScript ships no static type checker for
// native signatures.
func (ip *Interpreter) RegisterNative(name string, spaceCostBytes int, timeComplexityScore float64, fn NativeFunc) {
	ip.natives[name] = &FunctionValue{
		Name:                          name,
		IsNative:                      true,
		Native:                        fn,
		SpaceCostBytes:                spaceCostBytes,
		TimeComplexityAdditionalScore: timeComplexityScore,
	}
	ip.Global.Define(name, FunctionVal(ip.natives[name]), true)
}

// SignalRuntimeError raises the interpreter's abort protocol (spec.md
// §4.4.3): the error is written to Log, and evaluation unwinds to the
// nearest Run/PreAnalyze call without panicking, carrying err out as the
// RunResult's Err.
func (ip *Interpreter) SignalRuntimeError(pos Position, format string, args ...interface{}) {
	if ip.aborted {
		return // first abort wins
	}
	ip.aborted = true
	ip.abortErr = &RuntimeError{Line: pos.Line, Col: pos.Column, Msg: fmt.Sprintf(format, args...)}
	if ip.Log != nil {
		ip.Log.Errorf("%s", ip.abortErr.Error())
	}
}
