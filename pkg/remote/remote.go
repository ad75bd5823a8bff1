// Package remote runs shell commands on remote hosts.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrCommandFailed = errors.New("remote command failed")

// Host runs commands on a remote host.
type Host interface {
	// Name is the address of the host, for messages.
	Name() string

	// Run executes a shell command on the host, and returns its combined output.
	//
	// When the command exits with non-zero status, the error is CommandFailed.
	Run(ctx context.Context, command string) (string, error)

	// Put uploads the local file to the remote path.
	Put(ctx context.Context, local string, remote string) error

	Close() error
}

// a command exited with non-zero status.
type CommandFailed struct {
	Host    string
	Command string
	Status  int
	Output  string
}

var _ error = CommandFailed{}

func (c CommandFailed) Error() string {
	msg := fmt.Sprintf("[%s] %s: exit status %d", c.Host, c.Command, c.Status)
	if out := strings.TrimSpace(c.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (c CommandFailed) Unwrap() error {
	return ErrCommandFailed
}

// Quote makes s a single word for POSIX shells.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r == '/' || r == '.' || r == '_' || r == '-' || r == ':' || r == '=' || r == '+' ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
