package accel

import "sync"

// Combo is the key part of an Entry.
type Combo struct {
	Flags uint8
	Key   uint16
}

// Combo returns the modifier flags and key of e.
func (e Entry) Combo() Combo { return Combo{Flags: e.Flags, Key: e.Key} }

type liveTable struct {
	seq  uint64
	cmds map[Combo]uint16
}

// CommandMap tracks the entries of every live table for backends that
// register combinations one by one. A combination stays registered while
// any live table holds it and fires the command of the newest such table,
// so destroying a table never leaves another table's keys pointing at its
// commands.
type CommandMap struct {
	mu     sync.Mutex
	seq    uint64
	tables map[TableHandle]*liveTable
	refs   map[Combo]int
}

func NewCommandMap() *CommandMap {
	return &CommandMap{
		tables: make(map[TableHandle]*liveTable),
		refs:   make(map[Combo]int),
	}
}

// Add records table h and returns the entries whose combination no live
// table held before.
func (m *CommandMap) Add(h TableHandle, entries []Entry) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &liveTable{seq: m.seq, cmds: make(map[Combo]uint16, len(entries))}
	var added []Entry
	for _, e := range entries {
		c := e.Combo()
		if _, dup := t.cmds[c]; dup {
			continue
		}
		t.cmds[c] = e.Cmd
		m.refs[c]++
		if m.refs[c] == 1 {
			added = append(added, e)
		}
	}
	m.tables[h] = t
	return added
}

// Remove forgets table h and returns the combinations no live table holds
// anymore. ok is false when h is not live.
func (m *CommandMap) Remove(h TableHandle) (released []Combo, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[h]
	if !ok {
		return nil, false
	}
	delete(m.tables, h)
	for c := range t.cmds {
		m.refs[c]--
		if m.refs[c] == 0 {
			delete(m.refs, c)
			released = append(released, c)
		}
	}
	return released, true
}

// Command resolves c against the newest live table holding it.
func (m *CommandMap) Command(c Combo) (uint16, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		best  *liveTable
		found uint16
	)
	for _, t := range m.tables {
		cmd, ok := t.cmds[c]
		if ok && (best == nil || t.seq > best.seq) {
			best, found = t, cmd
		}
	}
	return found, best != nil
}
