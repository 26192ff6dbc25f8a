//go:build windows

package platform

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"markestedt/menukeys/accel"
)

var (
	createAcceleratorTableW = user32.NewProc("CreateAcceleratorTableW")
	destroyAcceleratorTable = user32.NewProc("DestroyAcceleratorTable")
	translateAcceleratorW   = user32.NewProc("TranslateAcceleratorW")
)

// accelRecord mirrors the Win32 ACCEL struct (6 bytes, WORD aligned).
type accelRecord struct {
	fVirt uint8
	key   uint16
	cmd   uint16
}

// AcceleratorPlatform creates native accelerator tables.
type AcceleratorPlatform struct{}

func NewAcceleratorPlatform() (accel.Platform, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	return AcceleratorPlatform{}, nil
}

func (AcceleratorPlatform) CreateAcceleratorTable(entries []accel.Entry) (accel.TableHandle, error) {
	if len(entries) == 0 {
		return 0, errors.New("CreateAcceleratorTableW: no entries")
	}
	records := make([]accelRecord, len(entries))
	for i, e := range entries {
		records[i] = accelRecord{fVirt: e.Flags, key: e.Key, cmd: e.Cmd}
	}
	h, _, err := createAcceleratorTableW.Call(uintptr(unsafe.Pointer(&records[0])), uintptr(len(records)))
	if h == 0 {
		return 0, callError("CreateAcceleratorTableW", err)
	}
	return accel.TableHandle(h), nil
}

func (AcceleratorPlatform) DestroyAcceleratorTable(h accel.TableHandle) error {
	r, _, err := destroyAcceleratorTable.Call(uintptr(h))
	if r == 0 {
		return callError("DestroyAcceleratorTable", err)
	}
	return nil
}

// TranslateAccelerator runs a window message through the registry's active
// table. On a match Windows sends WM_COMMAND with the item id to hwnd and
// the caller must not dispatch msg itself.
func TranslateAccelerator(reg *accel.Registry, hwnd windows.HWND, msg *MSG) bool {
	translated := false
	reg.WithActive(func(t *accel.Table) {
		if t == nil || t.Handle() == 0 {
			return
		}
		r, _, _ := translateAcceleratorW.Call(uintptr(hwnd), uintptr(t.Handle()), uintptr(unsafe.Pointer(msg)))
		translated = r != 0
	})
	return translated
}
