package repl

import "io"

// errorFlag passes writes through to w, calling set on each.
type errorFlag struct {
	w   io.Writer
	set func()
}

func (e *errorFlag) Write(p []byte) (int, error) {
	e.set()
	return e.w.Write(p)
}
