// Error wrapper remembering where it is wrapped.
//
// Usage:
//
//	if err := st.Save(ctx); err != nil {
//		return xe.Wrap(err)
//	}
//
// The message of a wrapped error reads like
//
//	@ pkg.Func "file.go" l12 <- cause
//
// and repeated wraps give a "stack" of the places the error went through.
package errors

import (
	"fmt"
	"runtime"
)

type ErrWithCaller struct {
	file     string
	line     int
	funcname string
	note     string
	err      error
}

func (e *ErrWithCaller) File() string {
	return e.file
}

func (e *ErrWithCaller) Line() int {
	return e.line
}

func (e *ErrWithCaller) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`@ %s "%s" l%d <- %s`, e.funcname, e.file, e.line, e.err.Error())
	}
	return fmt.Sprintf(`@ %s "%s" l%d (%s) <- %s`, e.funcname, e.file, e.line, e.note, e.err.Error())
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

// Wrap marks err with the caller's location. nil stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return wrap("", err, 1)
}

// WrapWithNote is Wrap with a short note shown in the message.
func WrapWithNote(note string, err error) error {
	if err == nil {
		return nil
	}
	return wrap(note, err, 1)
}

// Root digs through ErrWithCaller layers and returns the first error
// which is not an ErrWithCaller.
func Root(err error) error {
	for {
		ewc, ok := err.(*ErrWithCaller)
		if !ok {
			return err
		}
		err = ewc.err
	}
}

func wrap(note string, err error, depth int) error {
	pc, file, line, ok := runtime.Caller(depth + 1)
	funcname := "(unknown func)"
	if !ok {
		file = "?"
		line = -1
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcname = fn.Name()
	}

	return &ErrWithCaller{
		funcname: funcname,
		file:     file,
		line:     line,
		note:     note,
		err:      err,
	}
}
