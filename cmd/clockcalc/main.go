// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The clockcalc command evaluates clock arithmetic written in Starlark.
//
// With a file argument or -c it executes that program. With no
// arguments it starts a read-eval-print loop when stdin is a terminal,
// and otherwise evaluates stdin line by line, printing the value of
// each expression:
//
//	$ echo 'clock.parse_time("10:30:00") + clock.duration(2, 45, 10)' | clockcalc
//	13:15:10
package main // import "go.wallclock.dev/cmd/clockcalc"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"golang.org/x/term"

	"go.wallclock.dev/repl"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	profile    = flag.String("profile", "", "gather Starlark time profile in this file")
	showenv    = flag.Bool("showenv", false, "on success, print final global environment")
	execprog   = flag.String("c", "", "execute program `prog`")
)

func init() {
	flag.BoolVar(&resolve.AllowRecursion, "recursion", resolve.AllowRecursion, "allow while statements and recursive functions")
	flag.BoolVar(&resolve.AllowGlobalReassign, "globalreassign", resolve.AllowGlobalReassign, "allow reassignment of globals, and if/for/while statements at top level")
}

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("clockcalc: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(err)
			err = f.Close()
			check(err)
		}()
	}
	if *profile != "" {
		f, err := os.Create(*profile)
		check(err)
		err = starlark.StartProfile(f)
		check(err)
		defer func() {
			err := starlark.StopProfile()
			check(err)
		}()
	}

	thread := &starlark.Thread{Load: repl.MakeLoad()}
	predeclared := repl.Predeclared()
	globals := make(starlark.StringDict)

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
			err      error
		)
		if *execprog != "" {
			filename = "cmdline"
			src = *execprog
		} else {
			filename = flag.Arg(0)
		}
		thread.Name = "exec " + filename
		globals, err = starlark.ExecFile(thread, filename, src, predeclared)
		if err != nil {
			repl.PrintError(os.Stderr, err)
			return 1
		}
	case flag.NArg() == 0:
		session := repl.NewSession(thread)
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("clockcalc: times are HH:MM:SS, durations H:MM:SS; try clock.time(9) + clock.hour")
			thread.Name = "REPL"
			session.REPL()
		} else {
			thread.Name = "stdin"
			ok, err := session.Run(os.Stdin)
			if err != nil {
				log.Print(err)
				return 1
			}
			if !ok {
				return 1
			}
		}
		globals = session.Globals
	default:
		log.Print("want at most one Starlark file name")
		return 1
	}

	if *showenv {
		for _, name := range globals.Keys() {
			if _, ok := predeclared[name]; ok {
				continue
			}
			if !strings.HasPrefix(name, "_") {
				fmt.Fprintf(os.Stderr, "%s = %s\n", name, globals[name])
			}
		}
	}

	return 0
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
