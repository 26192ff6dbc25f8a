package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"markestedt/menukeys/accel"
	"markestedt/menukeys/config"
	"markestedt/menukeys/hotkey"
	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
	"markestedt/menukeys/platform"
	"markestedt/menukeys/platform/globalhotkey"
	"markestedt/menukeys/storage"
	"markestedt/menukeys/systray"
	"markestedt/menukeys/web"
)

// Agent wires keyboard input, the installed menu and its accelerators, and
// publishes the resulting event stream
type Agent struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	started time.Time

	normalizer *keyboard.Normalizer
	hook       platform.KeyboardHook
	registry   *accel.Registry
	menus      menu.Backend
	slot       *menu.Slot
	tray       *systray.SystrayManager
	db         *storage.DB
	web        *web.Server
	urls       platform.URLDispatcher

	events chan platform.Event

	rebuildMu sync.Mutex
	mu        sync.Mutex
	snapshot  web.MenuSnapshot
}

// NewAgent creates the agent and the backends selected by cfg
func NewAgent(cfg *config.Config, cfgPath string, logger *slog.Logger) (*Agent, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Agent{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		started: time.Now(),
		events:  make(chan platform.Event, 64),
	}

	if err := a.setupMenus(); err != nil {
		return nil, err
	}
	if err := a.setupAccelerators(); err != nil {
		return nil, err
	}

	if cfg.Keyboard.Hook {
		kb, err := platform.NewKeyboard()
		if err != nil {
			return nil, fmt.Errorf("failed to open keyboard: %w", err)
		}
		hook, err := platform.NewKeyboardHook(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create keyboard hook: %w", err)
		}
		a.normalizer = keyboard.NewNormalizer(kb, logger)
		a.hook = hook
	}

	if cfg.Storage.Enabled {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		a.db = db
		if days := cfg.Storage.RetentionDays; days > 0 {
			n, err := db.PruneEvents(days)
			if err != nil {
				logger.Warn("Failed to prune events", "error", err)
			} else if n > 0 {
				logger.Info("Pruned old events", "count", n, "retention_days", days)
			}
		}
	}

	if cfg.Web.Enabled {
		a.web = web.NewServer(a.db, a, cfg.Web.Port, logger)
	}

	return a, nil
}

func (a *Agent) setupMenus() error {
	switch a.cfg.Menu.Backend {
	case config.MenuNative:
		b, err := platform.NewMenuBackend()
		if err != nil {
			return fmt.Errorf("failed to create menu backend: %w", err)
		}
		if a.cfg.Menu.WindowTitle == "" {
			return errors.New("menu.window_title is required for the native menu backend")
		}
		host, err := platform.FindWindow(a.cfg.Menu.WindowTitle)
		if err != nil {
			return fmt.Errorf("failed to find window %q: %w", a.cfg.Menu.WindowTitle, err)
		}
		a.menus = b
		a.slot = menu.NewSlot(host)
	case config.MenuTray:
		a.tray = systray.NewSystrayManager(a.cfg.Web.Port, nil, a.activator("tray"), a.logger)
		a.menus = a.tray
		a.slot = menu.NewSlot(a.tray)
	default:
		a.menus = menu.NewMemoryBackend()
		a.slot = menu.NewSlot(nil)
	}
	return nil
}

func (a *Agent) setupAccelerators() error {
	var p accel.Platform
	switch a.cfg.Accelerators.Backend {
	case config.AccelNative:
		native, err := platform.NewAcceleratorPlatform()
		if err != nil {
			return fmt.Errorf("failed to create accelerator backend: %w", err)
		}
		p = native
	case config.AccelGlobal:
		p = globalhotkey.New(a.activator("global"), a.logger)
	default:
		p = accel.NewMemoryPlatform()
	}
	a.registry = accel.NewRegistry(p, a.logger)
	return nil
}

// Tray returns the tray manager, or nil when the menu is not shown in the tray
func (a *Agent) Tray() *systray.SystrayManager {
	return a.tray
}

// URLs returns the dispatcher URL-open requests are delivered through
func (a *Agent) URLs() *platform.URLDispatcher {
	return &a.urls
}

// activator returns a callback turning a menu id into an activation event
func (a *Agent) activator(source string) func(id int) {
	return func(id int) {
		a.emit(platform.Event{Type: platform.MenuActivated, MenuID: id, Source: source})
	}
}

func (a *Agent) emit(ev platform.Event) {
	select {
	case a.events <- ev:
	default:
		a.logger.Warn("Event queue full, dropping event", "type", ev.Type, "source", ev.Source)
	}
}

// Run builds the menu and processes events until ctx is done
func (a *Agent) Run(ctx context.Context) error {
	if err := a.rebuild(a.cfg.Menu); err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	var raw <-chan keyboard.RawKeyMessage
	if a.hook != nil {
		ch, err := a.hook.Listen(ctx)
		if err != nil {
			return fmt.Errorf("failed to start keyboard hook: %w", err)
		}
		raw = ch
	}

	if err := a.urls.OnOpenURLs(func(urls []string) {
		for _, u := range urls {
			a.emit(platform.Event{Type: platform.URLOpened, URL: u, Source: "url"})
		}
	}); err != nil {
		return err
	}

	if a.web != nil {
		go func() {
			if err := a.web.Start(); err != nil {
				a.logger.Error("Web server failed", "error", err)
			}
		}()
	}

	a.logger.Info("menukeys started",
		"menu", a.cfg.Menu.Backend,
		"accelerators", a.cfg.Accelerators.Backend,
		"hook", a.hook != nil,
	)
	if a.web != nil {
		a.web.BroadcastStatus("running")
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-raw:
			if !ok {
				a.logger.Warn("Keyboard hook stopped")
				raw = nil
				continue
			}
			ev, ok := a.normalizer.Normalize(msg)
			if !ok {
				continue
			}
			a.handleKey(ev)

		case ev := <-a.events:
			a.publish(ev)
		}
	}
}

func (a *Agent) handleKey(ev keyboard.KeyEvent) {
	if a.cfg.Keyboard.LogKeys {
		a.logger.Debug("Key", "event", ev.String())
		a.publish(platform.Event{Type: platform.KeyInput, Key: ev, Source: "keyboard"})
	}

	// global hotkeys report their own activations
	if a.cfg.Accelerators.Backend == config.AccelGlobal {
		return
	}
	if id, ok := a.registry.Translate(ev); ok {
		a.publish(platform.Event{Type: platform.MenuActivated, MenuID: id, Source: "accelerator"})
	}
}

// publish journals ev and streams it to dashboard clients
func (a *Agent) publish(ev platform.Event) {
	switch ev.Type {
	case platform.MenuActivated:
		a.logger.Info("Menu item activated", "id", ev.MenuID, "source", ev.Source)
	case platform.URLOpened:
		a.logger.Info("URL opened", "url", ev.URL)
	}

	if a.db != nil {
		rec := &storage.Event{Source: ev.Source, MenuID: ev.MenuID, URL: ev.URL}
		switch ev.Type {
		case platform.KeyInput:
			rec.Kind = storage.KindKey
			rec.KeyName = ev.Key.Key.String()
			rec.ScanCode = uint32(ev.Key.ScanCode)
			rec.Modifiers = ev.Key.Modifiers.String()
			rec.Pressed = ev.Key.State == keyboard.Pressed
		case platform.MenuActivated:
			rec.Kind = storage.KindMenu
		case platform.URLOpened:
			rec.Kind = storage.KindURL
		}
		if err := a.db.SaveEvent(rec); err != nil {
			a.logger.Error("Failed to save event", "error", err)
		}
	}

	if a.web != nil {
		a.web.BroadcastEvent(ev)
	}
}

// rebuild builds a new menu from mc, compiles its accelerators and replaces
// the installed menu and table
func (a *Agent) rebuild(mc config.MenuConfig) error {
	a.rebuildMu.Lock()
	defer a.rebuildMu.Unlock()

	style, err := mc.Style()
	if err != nil {
		return err
	}

	m, err := config.BuildMenu(mc, a.menus, menu.WithLabelStyle(style), menu.WithLogger(a.logger))
	if err != nil {
		return err
	}

	table, err := a.registry.Compile(m)
	if err != nil {
		m.Destroy()
		return err
	}

	if err := a.slot.Attach(m); err != nil {
		if a.slot.Current() != m {
			table.Destroy()
			m.Destroy()
			return err
		}
		// m is shown, only the replaced menu leaked
		a.logger.Warn("Failed to release previous menu", "error", err)
	}
	if err := a.registry.Install(table); err != nil {
		return err
	}

	snap := web.MenuSnapshot{Items: m.Tree(), Bindings: bindings(table, style)}
	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()

	a.logger.Info("Menu installed", "items", m.IDs(), "accelerators", table.Len())
	return nil
}

func bindings(t *accel.Table, style hotkey.LabelStyle) []web.Binding {
	out := make([]web.Binding, 0, t.Len())
	for _, e := range t.Entries() {
		h, ok := e.Hotkey()
		if !ok {
			continue
		}
		out = append(out, web.Binding{ID: int(e.Cmd), Hotkey: style.Render(h)})
	}
	return out
}

// Reload re-reads the menu definition from the config file and rebuilds
func (a *Agent) Reload() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err := a.rebuild(cfg.Menu); err != nil {
		return err
	}
	a.logger.Info("Configuration reloaded", "path", a.cfgPath)
	return nil
}

// Menu returns the installed menu and its accelerators
func (a *Agent) Menu() web.MenuSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// Status describes the running agent
func (a *Agent) Status() web.Status {
	n := 0
	if t := a.registry.Active(); t != nil {
		n = t.Len()
	}
	return web.Status{
		Status:       "running",
		MenuBackend:  a.cfg.Menu.Backend,
		AccelBackend: a.cfg.Accelerators.Backend,
		Accelerators: n,
		KeyboardHook: a.hook != nil,
		Started:      a.started,
	}
}

// Close releases the accelerator table, the menu and storage
func (a *Agent) Close() error {
	var errs []error
	if a.web != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.web.Shutdown(ctx))
		cancel()
	}
	errs = append(errs, a.registry.Close(), a.slot.Close())
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
