//go:build windows || linux || darwin

// Package globalhotkey registers compiled accelerator tables as system-wide
// hotkeys, for hosts that have no native accelerator tables.
package globalhotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"markestedt/menukeys/accel"
	"markestedt/menukeys/keyboard"
)

type registration struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
}

// Accelerators implements accel.Platform with global hotkeys. A combination
// shared by an old and a new table is registered once, so installing a
// table that overlaps the active one never conflicts. Presses resolve their
// command against the newest live table holding the combination.
type Accelerators struct {
	onActivate func(id int)
	logger     *slog.Logger
	cmds       *accel.CommandMap

	mu   sync.Mutex
	next accel.TableHandle
	regs map[accel.Combo]*registration
}

// New returns a backend that calls onActivate with the command id of every
// pressed hotkey.
func New(onActivate func(id int), logger *slog.Logger) *Accelerators {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accelerators{
		onActivate: onActivate,
		logger:     logger,
		cmds:       accel.NewCommandMap(),
		regs:       make(map[accel.Combo]*registration),
	}
}

func (a *Accelerators) CreateAcceleratorTable(entries []accel.Entry) (accel.TableHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.next++
	h := a.next

	var errs []error
	for _, e := range a.cmds.Add(h, entries) {
		mods, key, err := toHotkey(e)
		if err != nil {
			a.logger.Debug("Skipping accelerator without global hotkey", "cmd", e.Cmd, "error", err)
			continue
		}
		hk := hotkey.New(mods, key)
		if err := hk.Register(); err != nil {
			errs = append(errs, fmt.Errorf("register hotkey for command %d: %w", e.Cmd, err))
			continue
		}
		reg := &registration{hk: hk, stop: make(chan struct{})}
		a.regs[e.Combo()] = reg
		go a.listen(e.Combo(), reg)
	}
	if err := errors.Join(errs...); err != nil {
		// another application may own a combination; the rest still work
		a.logger.Warn("Some global hotkeys could not be registered", "error", err)
	}
	return h, nil
}

func (a *Accelerators) DestroyAcceleratorTable(h accel.TableHandle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	released, ok := a.cmds.Remove(h)
	if !ok {
		return fmt.Errorf("accelerator table %d is not live", h)
	}

	var errs []error
	for _, c := range released {
		reg, ok := a.regs[c]
		if !ok {
			continue
		}
		delete(a.regs, c)
		close(reg.stop)
		if err := reg.hk.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("unregister hotkey 0x%02X/0x%04X: %w", c.Flags, c.Key, err))
		}
	}
	return errors.Join(errs...)
}

func (a *Accelerators) listen(c accel.Combo, reg *registration) {
	for {
		select {
		case <-reg.stop:
			return
		case _, ok := <-reg.hk.Keydown():
			if !ok {
				return
			}
			if cmd, ok := a.cmds.Command(c); ok {
				a.onActivate(int(cmd))
			}
		}
	}
}

func toHotkey(e accel.Entry) ([]hotkey.Modifier, hotkey.Key, error) {
	h, ok := e.Hotkey()
	if !ok {
		return nil, 0, fmt.Errorf("entry 0x%02X/0x%04X is not a virtual-key accelerator", e.Flags, e.Key)
	}
	key, ok := keyMap[h.Key]
	if !ok {
		return nil, 0, fmt.Errorf("key %s has no global hotkey code", h.Key)
	}
	var mods []hotkey.Modifier
	// accelerator entries never carry Logo
	for _, bit := range []keyboard.ModifiersState{keyboard.ModCtrl, keyboard.ModShift, keyboard.ModAlt} {
		if !h.Modifiers.Contains(bit) {
			continue
		}
		mod, ok := modifierMap[bit]
		if !ok {
			return nil, 0, fmt.Errorf("modifier %s has no global hotkey code", bit)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

var keyMap = map[keyboard.SymbolicKey]hotkey.Key{
	keyboard.KeySpace:  hotkey.KeySpace,
	keyboard.KeyReturn: hotkey.KeyReturn,
	keyboard.KeyEscape: hotkey.KeyEscape,
	keyboard.KeyDelete: hotkey.KeyDelete,
	keyboard.KeyTab:    hotkey.KeyTab,
	keyboard.KeyLeft:   hotkey.KeyLeft,
	keyboard.KeyRight:  hotkey.KeyRight,
	keyboard.KeyUp:     hotkey.KeyUp,
	keyboard.KeyDown:   hotkey.KeyDown,
	keyboard.KeyKey0:   hotkey.Key0,
	keyboard.KeyKey1:   hotkey.Key1,
	keyboard.KeyKey2:   hotkey.Key2,
	keyboard.KeyKey3:   hotkey.Key3,
	keyboard.KeyKey4:   hotkey.Key4,
	keyboard.KeyKey5:   hotkey.Key5,
	keyboard.KeyKey6:   hotkey.Key6,
	keyboard.KeyKey7:   hotkey.Key7,
	keyboard.KeyKey8:   hotkey.Key8,
	keyboard.KeyKey9:   hotkey.Key9,
	keyboard.KeyA:      hotkey.KeyA,
	keyboard.KeyB:      hotkey.KeyB,
	keyboard.KeyC:      hotkey.KeyC,
	keyboard.KeyD:      hotkey.KeyD,
	keyboard.KeyE:      hotkey.KeyE,
	keyboard.KeyF:      hotkey.KeyF,
	keyboard.KeyG:      hotkey.KeyG,
	keyboard.KeyH:      hotkey.KeyH,
	keyboard.KeyI:      hotkey.KeyI,
	keyboard.KeyJ:      hotkey.KeyJ,
	keyboard.KeyK:      hotkey.KeyK,
	keyboard.KeyL:      hotkey.KeyL,
	keyboard.KeyM:      hotkey.KeyM,
	keyboard.KeyN:      hotkey.KeyN,
	keyboard.KeyO:      hotkey.KeyO,
	keyboard.KeyP:      hotkey.KeyP,
	keyboard.KeyQ:      hotkey.KeyQ,
	keyboard.KeyR:      hotkey.KeyR,
	keyboard.KeyS:      hotkey.KeyS,
	keyboard.KeyT:      hotkey.KeyT,
	keyboard.KeyU:      hotkey.KeyU,
	keyboard.KeyV:      hotkey.KeyV,
	keyboard.KeyW:      hotkey.KeyW,
	keyboard.KeyX:      hotkey.KeyX,
	keyboard.KeyY:      hotkey.KeyY,
	keyboard.KeyZ:      hotkey.KeyZ,
	keyboard.KeyF1:     hotkey.KeyF1,
	keyboard.KeyF2:     hotkey.KeyF2,
	keyboard.KeyF3:     hotkey.KeyF3,
	keyboard.KeyF4:     hotkey.KeyF4,
	keyboard.KeyF5:     hotkey.KeyF5,
	keyboard.KeyF6:     hotkey.KeyF6,
	keyboard.KeyF7:     hotkey.KeyF7,
	keyboard.KeyF8:     hotkey.KeyF8,
	keyboard.KeyF9:     hotkey.KeyF9,
	keyboard.KeyF10:    hotkey.KeyF10,
	keyboard.KeyF11:    hotkey.KeyF11,
	keyboard.KeyF12:    hotkey.KeyF12,
}
