//go:build !cgo

package simulator

import (
	"context"
	"errors"
)

func Run(_ context.Context, _ *Framebuffer, _ *Pointer, _ *Options, _ func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
