//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"markestedt/menukeys/keyboard"
)

var (
	setWindowsHookEx   = user32.NewProc("SetWindowsHookExW")
	callNextHookEx     = user32.NewProc("CallNextHookEx")
	unhookWindowsHook  = user32.NewProc("UnhookWindowsHookEx")
	getMessageW        = user32.NewProc("GetMessageW")
	peekMessageW       = user32.NewProc("PeekMessageW")
	postThreadMessageW = user32.NewProc("PostThreadMessageW")
	getCurrentThreadID = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL  = 13
	wmQuit        = 0x0012
	pmNoRemove    = 0x0000
	llkhfExtended = 0x01
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type point struct {
	x, y int32
}

// MSG mirrors the Win32 MSG struct.
type MSG struct {
	HWnd     windows.HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	lPrivate uint32
}

// LowLevelHook captures keyboard input system-wide with WH_KEYBOARD_LL and
// forwards every key message as a keyboard.RawKeyMessage.
type LowLevelHook struct {
	logger *slog.Logger

	mu      sync.Mutex
	events  chan keyboard.RawKeyMessage
	dropped int
}

// NewKeyboardHook creates the low-level keyboard hook.
func NewKeyboardHook(logger *slog.Logger) (KeyboardHook, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	if err := kernel32.Load(); err != nil {
		return nil, fmt.Errorf("kernel32.dll is unavailable: %w", err)
	}
	return &LowLevelHook{logger: logger}, nil
}

type hookReady struct {
	threadID uint32
	err      error
}

// Listen installs the hook on a dedicated OS thread. The returned channel is
// closed once ctx is done and the hook has been removed.
func (h *LowLevelHook) Listen(ctx context.Context) (<-chan keyboard.RawKeyMessage, error) {
	h.mu.Lock()
	if h.events != nil {
		h.mu.Unlock()
		return nil, errors.New("keyboard hook already listening")
	}
	events := make(chan keyboard.RawKeyMessage, 64)
	h.events = events
	h.mu.Unlock()

	readyCh := make(chan hookReady, 1)
	go h.runHook(events, readyCh)

	var ready hookReady
	select {
	case ready = <-readyCh:
	case <-ctx.Done():
		ready = <-readyCh
		if ready.err == nil {
			h.postQuit(ready.threadID)
		}
		return nil, ctx.Err()
	}
	if ready.err != nil {
		h.mu.Lock()
		h.events = nil
		h.mu.Unlock()
		return nil, ready.err
	}

	go func() {
		<-ctx.Done()
		h.postQuit(ready.threadID)
	}()

	return events, nil
}

func (h *LowLevelHook) runHook(events chan keyboard.RawKeyMessage, readyCh chan<- hookReady) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, err := getCurrentThreadID.Call()
	if tid == 0 {
		readyCh <- hookReady{err: callError("GetCurrentThreadId", err)}
		close(events)
		return
	}

	// Create the thread message queue so WM_QUIT can be posted to it.
	var qmsg MSG
	peekMessageW.Call(uintptr(unsafe.Pointer(&qmsg)), 0, 0, 0, pmNoRemove)

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			h.handleKeyEvent(events, uint32(wParam), kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)
	if hook == 0 {
		readyCh <- hookReady{err: callError("SetWindowsHookExW", err)}
		close(events)
		return
	}
	defer func() {
		if r, _, err := unhookWindowsHook.Call(hook); r == 0 {
			h.logger.Error("Failed to remove keyboard hook", "error", callError("UnhookWindowsHookEx", err))
		}
		close(events)
	}()

	readyCh <- hookReady{threadID: uint32(tid)}
	h.logger.Debug("Keyboard hook installed", "thread", tid)

	// The hook procedure only runs while this thread pumps messages.
	for {
		var m MSG
		r, _, err := getMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			h.logger.Warn("GetMessageW failed, stopping keyboard hook", "error", err)
			return
		case 0:
			h.logger.Debug("Keyboard hook stopped")
			return
		}
	}
}

func (h *LowLevelHook) handleKeyEvent(events chan<- keyboard.RawKeyMessage, message uint32, kbInfo *kbdllhookstruct) {
	var released bool
	switch message {
	case keyboard.WMKeyDown, keyboard.WMSysKeyDown:
	case keyboard.WMKeyUp, keyboard.WMSysKeyUp:
		released = true
	default:
		return
	}

	raw := keyboard.RawKeyMessage{
		Message: message,
		WParam:  uintptr(kbInfo.vkCode),
		LParam:  keyboard.MakeLParam(kbInfo.scanCode, kbInfo.flags&llkhfExtended != 0, released),
	}
	// Never block the hook: Windows unhooks slow procedures.
	select {
	case events <- raw:
	default:
		h.mu.Lock()
		h.dropped++
		dropped := h.dropped
		h.mu.Unlock()
		if dropped%100 == 1 {
			h.logger.Warn("Keyboard event buffer full, dropping input", "dropped", dropped)
		}
	}
}

func (h *LowLevelHook) postQuit(threadID uint32) {
	r, _, err := postThreadMessageW.Call(uintptr(threadID), wmQuit, 0, 0)
	if r == 0 {
		h.logger.Warn("Failed to stop keyboard hook", "error", callError("PostThreadMessageW", err))
	}
	h.mu.Lock()
	h.events = nil
	h.mu.Unlock()
}
