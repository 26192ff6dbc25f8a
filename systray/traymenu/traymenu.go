// Package traymenu lays out a recorded menu tree as tray menu items.
package traymenu

import (
	"fmt"
	"reflect"
	"strings"

	"markestedt/menukeys/menu"
)

// Kind tags the entries of a Plan.
type Kind int

const (
	Item Kind = iota
	Submenu
	// Spacer stands in for a separator. The tray API cannot remove real
	// separators, so configured ones are drawn as disabled items that can be
	// hidden on the next rebuild.
	Spacer
)

// SpacerTitle is the title of a Spacer entry.
var SpacerTitle = strings.Repeat("─", 12)

// Entry is one tray item to create. Parent indexes the Submenu entry it
// belongs to, or is -1 for top-level entries.
type Entry struct {
	Kind   Kind
	ID     int
	Title  string
	Parent int
}

// Plan flattens tree into creation order: every parent precedes its
// children. Separators inside submenus are dropped, the tray API cannot
// show them.
func Plan(tree []menu.Tree) []Entry {
	var out []Entry
	var walk func(items []menu.Tree, parent int)
	walk = func(items []menu.Tree, parent int) {
		for _, t := range items {
			switch {
			case t.Separator:
				if parent == -1 {
					out = append(out, Entry{Kind: Spacer, Title: SpacerTitle, Parent: parent})
				}
			case t.Items != nil:
				out = append(out, Entry{Kind: Submenu, Title: t.Text, Parent: parent})
				walk(t.Items, len(out)-1)
			default:
				out = append(out, Entry{Kind: Item, ID: t.ID, Title: ItemTitle(t.Text), Parent: parent})
			}
		}
	}
	walk(tree, -1)
	return out
}

// Same reports whether two trees produce the same tray items.
func Same(a, b []menu.Tree) bool {
	return reflect.DeepEqual(Plan(a), Plan(b))
}

// ItemTitle turns native item text ("Open\tCtrl+O") into a tray title.
func ItemTitle(text string) string {
	label, accel, ok := strings.Cut(text, "\t")
	if !ok || accel == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, accel)
}
