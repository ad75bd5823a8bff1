// Package commandline provides flarc.Commandline for testing tasks.
package commandline

import (
	"io"
	"strings"

	"github.com/youta-t/flarc"
)

type streams struct {
	fullname string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	args     map[string][]string
}

type Option func(*streams)

func WithFullname(name string) Option {
	return func(c *streams) { c.fullname = name }
}

func WithStdin(r io.Reader) Option {
	return func(c *streams) { c.stdin = r }
}

func WithStdout(w io.Writer) Option {
	return func(c *streams) { c.stdout = w }
}

func WithStderr(w io.Writer) Option {
	return func(c *streams) { c.stderr = w }
}

// WithArgs sets positional arguments, keyed by their names.
func WithArgs(args map[string][]string) Option {
	return func(c *streams) { c.args = args }
}

type commandline[T any] struct {
	streams
	flags T
}

// New returns flarc.Commandline with flags.
//
// Without options, stdin is empty, outputs are discarded and there are no args.
func New[T any](flags T, options ...Option) flarc.Commandline[T] {
	c := &commandline[T]{
		streams: streams{
			stdin:  strings.NewReader(""),
			stdout: io.Discard,
			stderr: io.Discard,
			args:   map[string][]string{},
		},
		flags: flags,
	}
	for _, o := range options {
		o(&c.streams)
	}
	return c
}

func (c *commandline[T]) Fullname() string          { return c.fullname }
func (c *commandline[T]) Stdin() io.Reader          { return c.stdin }
func (c *commandline[T]) Stdout() io.Writer         { return c.stdout }
func (c *commandline[T]) Stderr() io.Writer         { return c.stderr }
func (c *commandline[T]) Flags() T                  { return c.flags }
func (c *commandline[T]) Args() map[string][]string { return c.args }
