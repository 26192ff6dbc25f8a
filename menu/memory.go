package menu

import (
	"fmt"
	"sync"
)

// Node is a menu object recorded by MemoryBackend.
type Node struct {
	Handle    Handle
	Entries   []NodeEntry
	Attached  bool
	Destroyed bool
}

// NodeEntry is one appended entry of a Node.
type NodeEntry struct {
	Kind    ItemKind
	ID      int
	Text    string
	Submenu Handle
}

// MemoryBackend records menus in memory. It backs tests, headless mode and
// the tray menu, which is materialized from the recorded tree.
type MemoryBackend struct {
	mu    sync.Mutex
	next  Handle
	nodes map[Handle]*Node
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{nodes: make(map[Handle]*Node)}
}

func (b *MemoryBackend) CreateMenu() (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	h := b.next
	b.nodes[h] = &Node{Handle: h}
	return h, nil
}

func (b *MemoryBackend) AppendItem(menu Handle, id int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.live(menu)
	if err != nil {
		return err
	}
	n.Entries = append(n.Entries, NodeEntry{Kind: KindItem, ID: id, Text: text})
	return nil
}

func (b *MemoryBackend) AppendSubmenu(menu, submenu Handle, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.live(menu)
	if err != nil {
		return err
	}
	sub, err := b.live(submenu)
	if err != nil {
		return err
	}
	if sub.Attached {
		return fmt.Errorf("menu %d already attached", submenu)
	}
	sub.Attached = true
	n.Entries = append(n.Entries, NodeEntry{Kind: KindSubmenu, Text: label, Submenu: submenu})
	return nil
}

func (b *MemoryBackend) AppendSeparator(menu Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.live(menu)
	if err != nil {
		return err
	}
	n.Entries = append(n.Entries, NodeEntry{Kind: KindSeparator})
	return nil
}

func (b *MemoryBackend) DestroyMenu(menu Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.live(menu)
	if err != nil {
		return err
	}
	b.destroy(n)
	return nil
}

func (b *MemoryBackend) destroy(n *Node) {
	n.Destroyed = true
	for _, e := range n.Entries {
		if e.Kind == KindSubmenu {
			if sub := b.nodes[e.Submenu]; sub != nil && !sub.Destroyed {
				b.destroy(sub)
			}
		}
	}
}

func (b *MemoryBackend) live(h Handle) (*Node, error) {
	n, ok := b.nodes[h]
	if !ok {
		return nil, fmt.Errorf("unknown menu %d", h)
	}
	if n.Destroyed {
		return nil, fmt.Errorf("menu %d: %w", h, ErrDestroyed)
	}
	return n, nil
}

// Node returns a copy of the recorded menu h.
func (b *MemoryBackend) Node(h Handle) (Node, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[h]
	if !ok {
		return Node{}, false
	}
	cp := *n
	cp.Entries = append([]NodeEntry(nil), n.Entries...)
	return cp, true
}

// Live reports how many created menus have not been destroyed.
func (b *MemoryBackend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	live := 0
	for _, n := range b.nodes {
		if !n.Destroyed {
			live++
		}
	}
	return live
}

// Tree is a recorded menu flattened into nested values, as served by the
// HTTP API and consumed by the tray backend.
type Tree struct {
	ID        int    `json:"id,omitempty"`
	Text      string `json:"text,omitempty"`
	Separator bool   `json:"separator,omitempty"`
	Items     []Tree `json:"items,omitempty"`
}

// Tree returns the recorded entries of h with their submenus expanded.
func (b *MemoryBackend) Tree(h Handle) []Tree {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tree(h)
}

func (b *MemoryBackend) tree(h Handle) []Tree {
	n, ok := b.nodes[h]
	if !ok || n.Destroyed {
		return nil
	}
	out := make([]Tree, 0, len(n.Entries))
	for _, e := range n.Entries {
		switch e.Kind {
		case KindItem:
			out = append(out, Tree{ID: e.ID, Text: e.Text})
		case KindSeparator:
			out = append(out, Tree{Separator: true})
		case KindSubmenu:
			out = append(out, Tree{Text: e.Text, Items: b.tree(e.Submenu)})
		}
	}
	return out
}
