package menu

import (
	"errors"
	"fmt"
	"sync"
)

// ErrReleasePrevious is returned by Attach when the new menu is shown but
// the menu it replaced could not be destroyed.
var ErrReleasePrevious = errors.New("release previous menu")

// Slot holds the one menu shown by a window. Attaching a new menu replaces
// the old one, which is destroyed once the host shows the replacement.
type Slot struct {
	mu      sync.Mutex
	host    Host
	current *Menu
}

// NewSlot returns a slot for host. host may be nil when no window shows the
// menu (tray and headless modes).
func NewSlot(host Host) *Slot {
	return &Slot{host: host}
}

// Attach makes m the window's menu. m must be a finished, top-level menu.
// An error wrapping ErrReleasePrevious means m was attached anyway.
func (s *Slot) Attach(m *Menu) error {
	switch {
	case m == nil:
		return errors.New("attach: nil menu")
	case m.Consumed():
		return fmt.Errorf("attach: %w", ErrConsumed)
	case m.destroyd:
		return fmt.Errorf("attach: %w", ErrDestroyed)
	case m.Err() != nil:
		return fmt.Errorf("attach: %w", m.Err())
	}

	s.mu.Lock()
	if s.current == m {
		s.mu.Unlock()
		return nil
	}
	if s.host != nil {
		if err := s.host.SetMenu(m.Handle()); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("set window menu: %w", err)
		}
	}
	prev := s.current
	s.current = m
	s.mu.Unlock()

	if prev != nil {
		if err := prev.Destroy(); err != nil {
			return fmt.Errorf("%w: %w", ErrReleasePrevious, err)
		}
	}
	return nil
}

// Current returns the attached menu, or nil.
func (s *Slot) Current() *Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close detaches the current menu from the host and destroys it.
func (s *Slot) Close() error {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	var errs []error
	if prev != nil && s.host != nil {
		if err := s.host.SetMenu(0); err != nil {
			errs = append(errs, fmt.Errorf("clear window menu: %w", err))
		}
	}
	s.mu.Unlock()

	if prev != nil {
		errs = append(errs, prev.Destroy())
	}
	return errors.Join(errs...)
}
