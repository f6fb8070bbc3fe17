//go:build !linux

package capture

import (
	"runtime"
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
)

type unsupportedSource struct{}

func newPlatformSource() Source {
	return unsupportedSource{}
}

func (unsupportedSource) Start(func(time.Time)) error {
	return errors.New().WithData(ErrUnavailable, runtime.GOOS)
}

func (unsupportedSource) Stop() error {
	return nil
}
