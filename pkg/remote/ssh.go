package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	kpath "github.com/opst/hbnb/pkg/utils/path"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultPort = "22"

type SSHConfig struct {
	User string

	// path to the private key. "~/" is expanded to the home directory.
	KeyFile string

	// path to the known_hosts file. When empty, host keys are not verified.
	KnownHosts string
}

type sshHost struct {
	name   string
	client *ssh.Client
}

var _ Host = &sshHost{}

// Dial connects to the host over SSH.
//
// # Args
//
// - host: "host" or "host:port". The port defaults to 22.
//
// - conf: how to login.
func Dial(ctx context.Context, host string, conf SSHConfig) (Host, error) {
	addr := host
	if _, _, err := net.SplitHostPort(host); err != nil {
		addr = net.JoinHostPort(host, defaultPort)
	}

	clientConfig, err := conf.clientConfig()
	if err != nil {
		return nil, err
	}

	d := &net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", addr, err)
	}
	return &sshHost{name: host, client: ssh.NewClient(c, chans, reqs)}, nil
}

func (conf SSHConfig) clientConfig() (*ssh.ClientConfig, error) {
	keyFile, err := kpath.Resolve(conf.KeyFile)
	if err != nil {
		return nil, err
	}
	pem, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("can not read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("can not parse private key %s: %w", keyFile, err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if conf.KnownHosts != "" {
		knownHostsFile, err := kpath.Resolve(conf.KnownHosts)
		if err != nil {
			return nil, err
		}
		hostKeyCallback, err = knownhosts.New(knownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("can not read known hosts: %w", err)
		}
	}

	return &ssh.ClientConfig{
		User:            conf.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
	}, nil
}

func (h *sshHost) Name() string {
	return h.name
}

func (h *sshHost) Run(ctx context.Context, command string) (string, error) {
	out := new(output)
	err := h.exec(ctx, command, nil, out)
	return out.String(), err
}

// Put streams the local file into "cat" on the host.
func (h *sshHost) Put(ctx context.Context, local string, remote string) error {
	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()

	return h.exec(ctx, "cat > "+Quote(remote), f, new(output))
}

func (h *sshHost) exec(ctx context.Context, command string, stdin *os.File, out *output) error {
	session, err := h.client.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if stdin != nil {
		session.Stdin = stdin
	}
	session.Stdout = out
	session.Stderr = out

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		session.Close()
		<-done
		return ctx.Err()
	case err := <-done:
		if exit := new(ssh.ExitError); errors.As(err, &exit) {
			return CommandFailed{
				Host: h.name, Command: command, Status: exit.ExitStatus(), Output: out.String(),
			}
		}
		return err
	}
}

// output collects stdout and stderr of a session.
//
// Sessions copy each stream on its own goroutine, so writes are serialized.
type output struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (o *output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.Write(p)
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

func (h *sshHost) Close() error {
	return h.client.Close()
}
