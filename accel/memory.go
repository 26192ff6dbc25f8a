package accel

import (
	"errors"
	"fmt"
	"sync"
)

// MemoryPlatform keeps accelerator tables in memory. It backs tests and
// headless mode, where Registry.Translate is the only dispatcher.
type MemoryPlatform struct {
	mu        sync.Mutex
	next      TableHandle
	live      map[TableHandle][]Entry
	created   int
	destroyed int

	// OnDestroy, when set, runs before a table is released.
	OnDestroy func(TableHandle)
}

func NewMemoryPlatform() *MemoryPlatform {
	return &MemoryPlatform{live: make(map[TableHandle][]Entry)}
}

func (p *MemoryPlatform) CreateAcceleratorTable(entries []Entry) (TableHandle, error) {
	if len(entries) == 0 {
		return 0, errors.New("empty accelerator table")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	p.live[p.next] = append([]Entry(nil), entries...)
	p.created++
	return p.next, nil
}

func (p *MemoryPlatform) DestroyAcceleratorTable(h TableHandle) error {
	if p.OnDestroy != nil {
		p.OnDestroy(h)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.live[h]; !ok {
		return fmt.Errorf("accelerator table %d is not live", h)
	}
	delete(p.live, h)
	p.destroyed++
	return nil
}

// Live reports how many tables exist.
func (p *MemoryPlatform) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// Stats reports how many tables were created and destroyed.
func (p *MemoryPlatform) Stats() (created, destroyed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created, p.destroyed
}

// Entries returns the records a live table was created with.
func (p *MemoryPlatform) Entries(h TableHandle) ([]Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.live[h]
	return append([]Entry(nil), e...), ok
}
