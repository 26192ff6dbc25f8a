//go:build !windows && !linux && !darwin

package globalhotkey

import (
	"log/slog"

	"markestedt/menukeys/accel"
	"markestedt/menukeys/platform"
)

// Accelerators is unavailable on this platform.
type Accelerators struct{}

func New(func(id int), *slog.Logger) *Accelerators { return &Accelerators{} }

func (*Accelerators) CreateAcceleratorTable([]accel.Entry) (accel.TableHandle, error) {
	return 0, platform.ErrUnsupported
}

func (*Accelerators) DestroyAcceleratorTable(accel.TableHandle) error {
	return platform.ErrUnsupported
}
