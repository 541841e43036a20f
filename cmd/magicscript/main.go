// Command magicscript is the CLI entry point: `run` executes a script
// file to completion, `repl` starts a persistent interactive session.
// Adapted from the teacher's cmd/msg/main.go, narrowed to the two
// subcommands that make sense without the teacher's module registry
// and source-tree tooling (fmt/test/get) — this interpreter has no
// selective-export module system for a `get` to install into and no
// canon/testing standard-library packages for `fmt`/`test` to drive.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	magicscript "github.com/goldfrosch/MagicScript"
	"github.com/goldfrosch/MagicScript/builtins"
)

const (
	appName     = "magicscript"
	historyFile = ".magicscript_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("MagicScript %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", magicscript.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(magicscript.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`MagicScript %s

Usage:
  %s run <file.ms> [--entry <name>]   Run a script file (default entry: main)
  %s repl                             Start the REPL
  %s version                          Print the compiled version

`, magicscript.Version, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.ms> [--entry <name>]\n", appName)
		return 2
	}
	file := args[0]
	entry := "main"
	for i := 1; i < len(args); i++ {
		if args[i] == "--entry" && i+1 < len(args) {
			entry = args[i+1]
			i++
		}
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := magicscript.NewInterpreter()
	builtins.RegisterAll(ip)

	res := ip.RunEntry(string(src), entry)
	if res.Err != nil {
		fmt.Fprintln(os.Stderr, red(magicscript.FormatWithSnippet(res.Err, string(src))))
		return 1
	}
	fmt.Println(magicscript.DebugString(res.Value))
	return 0
}

func cmdRepl() (ret int) {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := magicscript.NewInterpreter()
	builtins.RegisterAll(ip)

	for {
		code, ok := readByBraceBalance(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		res := ip.PreAnalyze(code)
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, red(res.Err.Error()))
			continue
		}
		// A REPL line's bindings should persist across lines, unlike a
		// PreAnalyze dry run, so re-execute for effect once the line
		// parses cleanly. PreAnalyze above exists to give a fast syntax
		// check without corrupting Global on a bad line.
		live := ip.RunTopLevel(code, "<repl>")
		if live.Err != nil {
			fmt.Fprintln(os.Stderr, red(live.Err.Error()))
			continue
		}
		fmt.Println(blue(magicscript.DebugString(live.Value)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
	return 0
}

// readByBraceBalance accumulates lines until braces/brackets/parens
// balance, giving the REPL basic multi-line statement support without
// a dedicated incremental parser probe.
func readByBraceBalance(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	depth := 0

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		for _, c := range line {
			switch c {
			case '{', '(', '[':
				depth++
			case '}', ')', ']':
				depth--
			}
		}
		if depth <= 0 {
			return b.String(), true
		}
	}
}
