package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"markestedt/menukeys/menu"
	"markestedt/menukeys/systray/traymenu"
)

// SystrayManager shows the configured menu as the tray icon's menu. It is a
// menu.Backend (menus are recorded in memory) and a menu.Host: the attached
// menu is materialized as tray items once the tray is ready.
type SystrayManager struct {
	*menu.MemoryBackend

	webPort  int
	iconData []byte
	onClick  func(id int)
	logger   *slog.Logger
	quit     chan struct{}
	quitOnce sync.Once

	mu      sync.Mutex
	ready   bool
	tree    []menu.Tree
	items   []*systray.MenuItem
	stopGen chan struct{}
}

// NewSystrayManager creates a new systray manager. onClick receives the id of
// every clicked menu item.
func NewSystrayManager(webPort int, iconData []byte, onClick func(id int), logger *slog.Logger) *SystrayManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystrayManager{
		MemoryBackend: menu.NewMemoryBackend(),
		webPort:       webPort,
		iconData:      iconData,
		onClick:       onClick,
		logger:        logger,
		quit:          make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *SystrayManager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *SystrayManager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *SystrayManager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// SetMenu shows the recorded menu h in the tray. Items of the previous menu
// are hidden since the tray API cannot remove them, so an unchanged menu is
// left as it is.
func (m *SystrayManager) SetMenu(h menu.Handle) error {
	tree := m.Tree(h)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tree != nil && traymenu.Same(m.tree, tree) {
		return nil
	}
	m.tree = tree
	if m.ready {
		m.rebuildLocked()
	}
	return nil
}

func (m *SystrayManager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}
	systray.SetTitle("menukeys")
	systray.SetTooltip("menukeys - menus and accelerators")

	mOpenWebUI := systray.AddMenuItem("Open Web UI", "Open the menukeys dashboard")
	mQuit := systray.AddMenuItem("Quit", "Exit menukeys")
	systray.AddSeparator()

	go func() {
		for {
			select {
			case <-mOpenWebUI.ClickedCh:
				m.openWebUI()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				m.quitOnce.Do(func() { close(m.quit) })
				systray.Quit()
				return
			}
		}
	}()

	m.mu.Lock()
	m.ready = true
	m.rebuildLocked()
	m.mu.Unlock()
}

func (m *SystrayManager) onExit() {
	m.mu.Lock()
	if m.stopGen != nil {
		close(m.stopGen)
		m.stopGen = nil
	}
	m.mu.Unlock()
	m.quitOnce.Do(func() { close(m.quit) })
	m.logger.Info("System tray exited")
}

func (m *SystrayManager) rebuildLocked() {
	if m.stopGen != nil {
		close(m.stopGen)
	}
	for _, it := range m.items {
		it.Hide()
	}
	m.items = m.items[:0]
	m.stopGen = make(chan struct{})

	plan := traymenu.Plan(m.tree)
	created := make([]*systray.MenuItem, len(plan))
	for i, e := range plan {
		var item *systray.MenuItem
		if e.Parent < 0 {
			item = systray.AddMenuItem(e.Title, "")
		} else {
			item = created[e.Parent].AddSubMenuItem(e.Title, "")
		}
		created[i] = item
		m.items = append(m.items, item)
		switch e.Kind {
		case traymenu.Spacer:
			item.Disable()
		case traymenu.Item:
			m.watch(item, e.ID)
		}
	}
	m.logger.Debug("Tray menu rebuilt", "items", len(m.items))
}

func (m *SystrayManager) watch(item *systray.MenuItem, id int) {
	stop := m.stopGen
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-item.ClickedCh:
				m.logger.Debug("Tray item clicked", "id", id)
				if m.onClick != nil {
					m.onClick(id)
				}
			}
		}
	}()
}

// openWebUI opens the web UI in the default browser
func (m *SystrayManager) openWebUI() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening web UI", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open web UI", "error", err)
	}
}
