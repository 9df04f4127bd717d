// Package repl provides a read/eval/print loop for clock arithmetic
// written in Starlark.
//
// The loop supports readline-style command editing and interrupts
// through Control-C. Each input item is parsed as an expression if
// possible and its value printed; otherwise lines are read until a
// blank line and executed as statements for their side effects.
//
// Every session and every loaded file sees the clock module.
package repl // import "go.wallclock.dev/repl"

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.wallclock.dev/lib/clock"
)

// Prompts shown before the first and subsequent lines of an item.
const (
	Prompt     = "clock> "
	ContPrompt = "...... "
)

// Predeclared returns the environment every program sees: the clock
// module under its module name.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{clock.ModuleName: clock.Module}
}

// A Session evaluates successive items against one set of globals.
type Session struct {
	Thread      *starlark.Thread
	Predeclared starlark.StringDict
	Globals     starlark.StringDict

	Out io.Writer // values of expressions
	Err io.Writer // evaluation errors
}

// NewSession returns a Session writing to stdout and stderr with the
// clock module predeclared.
// Output of the Starlark print function goes to the session's Out.
func NewSession(thread *starlark.Thread) *Session {
	s := &Session{
		Thread:      thread,
		Predeclared: Predeclared(),
		Globals:     make(starlark.StringDict),
		Out:         os.Stdout,
		Err:         os.Stderr,
	}
	thread.Print = func(_ *starlark.Thread, msg string) { fmt.Fprintln(s.Out, msg) }
	return s
}

var interrupted = make(chan os.Signal, 1)

// REPL executes a read, eval, print loop on the terminal until EOF.
//
// Before evaluating each item, it sets the Starlark thread local
// variable named "context" to a context.Context that is cancelled by a
// SIGINT (Control-C).
func (s *Session) REPL() {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.New(Prompt)
	if err != nil {
		PrintError(s.Err, err)
		return
	}
	defer rl.Close()
	for {
		// readline returns EOF, ErrInterrupt, or a line without its "\n".
		rl.SetPrompt(Prompt)
		err := s.Step(func() ([]byte, error) {
			line, err := rl.Readline()
			rl.SetPrompt(ContPrompt)
			if err != nil {
				return nil, err
			}
			return []byte(line + "\n"), nil
		})
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Fprintln(s.Out, err)
				continue
			}
			break
		}
	}
	fmt.Fprintln(s.Out)
}

// Step reads one item using readline, evaluates it, and prints the
// result. Starlark errors are printed to s.Err; Step itself returns an
// error only if readline failed, io.EOF at end of input. An item cut
// short by the end of input is reported to s.Err and not executed.
func (s *Session) Step(readline func() ([]byte, error)) error {
	// Each item gets its own context, which is cancelled by a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()
	s.Thread.SetLocal("context", ctx)

	var (
		readErr error
		partial bool // part of an item was read
	)
	f, err := syntax.ParseCompoundStmt("<stdin>", func() ([]byte, error) {
		line, err := readline()
		if err != nil {
			readErr = err
		} else if len(bytes.TrimSpace(line)) > 0 {
			partial = true
		}
		return line, err
	})
	if err != nil {
		if readErr != nil {
			if partial && errors.Is(readErr, io.EOF) {
				PrintError(s.Err, fmt.Errorf("<stdin>: unexpected end of input"))
			}
			return readErr
		}
		PrintError(s.Err, err)
		return nil
	}
	if len(f.Stmts) == 0 {
		return readErr
	}

	s.exec(f)
	return nil
}

// exec executes one parsed item, printing the value of a sole
// expression and any error.
func (s *Session) exec(f *syntax.File) {
	// Treat load bindings as global in the REPL.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	// Predeclared names are visible through globals; don't overwrite
	// a user binding of the same name.
	for name, v := range s.Predeclared {
		if _, ok := s.Globals[name]; !ok {
			s.Globals[name] = v
		}
	}

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExpr(s.Thread, expr, s.Globals)
		if err != nil {
			PrintError(s.Err, err)
			return
		}
		if v != starlark.None {
			fmt.Fprintln(s.Out, v)
		}
	} else if err := starlark.ExecREPLChunk(f, s.Thread, s.Globals); err != nil {
		PrintError(s.Err, err)
	}
}

// Run reads the whole of r as one program and executes its top-level
// statements in order, printing the value of each expression statement
// as the interactive loop would. Nothing runs if the program does not
// parse. Evaluation errors are printed and execution continues with the
// next statement. Run reports whether every statement succeeded.
func (s *Session) Run(r io.Reader) (bool, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return false, err
	}
	f, err := syntax.Parse("<stdin>", src, 0)
	if err != nil {
		PrintError(s.Err, err)
		return false, nil
	}

	ok := true
	errOut := s.Err
	s.Err = &errorFlag{w: errOut, set: func() { ok = false }}
	defer func() { s.Err = errOut }()
	for _, stmt := range f.Stmts {
		chunk := *f
		chunk.Stmts = []syntax.Stmt{stmt}
		s.exec(&chunk)
	}
	return ok, nil
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError prints the error to w,
// or its backtrace if it is a Starlark evaluation error.
func PrintError(w io.Writer, err error) {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		fmt.Fprintln(w, evalErr.Backtrace())
	} else {
		fmt.Fprintln(w, err)
	}
}

// MakeLoad returns a simple sequential implementation of module loading
// suitable for use in the REPL. Loaded files see the clock module.
// Each function returned by MakeLoad accesses a distinct private cache.
func MakeLoad() func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	var cache = make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		e, ok := cache[module]
		if e == nil {
			if ok {
				// request for package whose loading is in progress
				return nil, fmt.Errorf("cycle in load graph")
			}

			// Add a placeholder to indicate "load in progress".
			cache[module] = nil

			thread := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			globals, err := starlark.ExecFile(thread, module, nil, Predeclared())
			e = &entry{globals, err}

			cache[module] = e
		}
		return e.globals, e.err
	}
}
