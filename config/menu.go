package config

import (
	"fmt"

	"markestedt/menukeys/hotkey"
	"markestedt/menukeys/menu"
)

// BuildMenu builds the configured menu tree on backend b. Hotkeys are parsed
// here; a hotkey that cannot become an accelerator still yields its item.
func BuildMenu(c MenuConfig, b menu.Backend, opts ...menu.Option) (*menu.Menu, error) {
	m, err := buildMenu("menu.items", c.Items, b, opts)
	if err != nil {
		if m != nil {
			m.Destroy()
		}
		return nil, err
	}
	return m, nil
}

// Style resolves the configured label style.
func (c MenuConfig) Style() (hotkey.LabelStyle, error) {
	style, ok := hotkey.StyleByName(c.LabelStyle)
	if !ok {
		return hotkey.LabelStyle{}, fmt.Errorf("menu.label_style: unknown style %q", c.LabelStyle)
	}
	return style, nil
}

func buildMenu(prefix string, items []ItemConfig, b menu.Backend, opts []menu.Option) (*menu.Menu, error) {
	m := menu.New(b, opts...)
	for i, it := range items {
		at := fmt.Sprintf("%s[%d]", prefix, i)
		switch {
		case it.Separator:
			m.AddSeparator()
		case len(it.Items) > 0:
			sub, err := buildMenu(at+".items", it.Items, b, opts)
			if err != nil {
				sub.Destroy()
				return m, err
			}
			m.AddDropdown(it.Label, sub)
			if m.Err() != nil {
				// a rejected submenu still owns its native menu
				sub.Destroy()
			}
		default:
			var hk *hotkey.Hotkey
			if it.Hotkey != "" {
				h, err := hotkey.Parse(it.Hotkey)
				if err != nil {
					return m, fmt.Errorf("%s: %w", at, err)
				}
				hk = &h
			}
			m.AddItem(it.ID, it.Label, hk)
		}
		if err := m.Err(); err != nil {
			return m, fmt.Errorf("%s: %w", at, err)
		}
	}
	return m, nil
}
