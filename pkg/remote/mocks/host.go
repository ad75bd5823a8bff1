package mocks

import (
	"context"
	"errors"

	"github.com/opst/hbnb/pkg/remote"
)

type PutArgs struct {
	Local  string
	Remote string
}

type Host struct {
	name string

	Impl struct {
		Run func(ctx context.Context, command string) (string, error)
		Put func(ctx context.Context, local, remote string) error
	}
	Calls struct {
		Run   []string
		Put   []PutArgs
		Close int
	}
}

var _ remote.Host = &Host{}

func NewHost(name string) *Host {
	return &Host{name: name}
}

func (h *Host) Name() string {
	return h.name
}

func (h *Host) Run(ctx context.Context, command string) (string, error) {
	h.Calls.Run = append(h.Calls.Run, command)
	if h.Impl.Run != nil {
		return h.Impl.Run(ctx, command)
	}

	panic(errors.New("should not be called"))
}

func (h *Host) Put(ctx context.Context, local, remote string) error {
	h.Calls.Put = append(h.Calls.Put, PutArgs{Local: local, Remote: remote})
	if h.Impl.Put != nil {
		return h.Impl.Put(ctx, local, remote)
	}

	panic(errors.New("should not be called"))
}

func (h *Host) Close() error {
	h.Calls.Close++
	return nil
}
