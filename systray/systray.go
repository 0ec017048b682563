package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"
)

// Manager manages the system tray icon and menu. Menu actions are exposed as
// channels so the agent loop can treat them exactly like hotkey presses.
type Manager struct {
	webPort  int
	iconData []byte
	polish   chan struct{}
	cycle    chan struct{}
	quit     chan struct{}
}

// NewManager creates a new systray manager
func NewManager(webPort int, iconData []byte) *Manager {
	return &Manager{
		webPort:  webPort,
		iconData: iconData,
		polish:   make(chan struct{}, 1),
		cycle:    make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// PolishRequests signals "Polish clipboard" menu clicks
func (m *Manager) PolishRequests() <-chan struct{} {
	return m.polish
}

// CycleRequests signals "Next suggestion" menu clicks
func (m *Manager) CycleRequests() <-chan struct{} {
	return m.cycle
}

// WaitForQuit returns a channel that is closed when the user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("PolishClip")
	systray.SetTooltip("PolishClip - Clipboard Rephraser")

	mPolish := systray.AddMenuItem("Polish clipboard", "Rephrase the current clipboard text")
	mCycle := systray.AddMenuItem("Next suggestion", "Cycle to the next alternative")
	systray.AddSeparator()
	mDashboard := systray.AddMenuItem("Open dashboard", "Open the PolishClip dashboard")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit PolishClip")

	go func() {
		for {
			select {
			case <-mPolish.ClickedCh:
				select {
				case m.polish <- struct{}{}:
				default:
				}
			case <-mCycle.ClickedCh:
				select {
				case m.cycle <- struct{}{}:
				default:
				}
			case <-mDashboard.ClickedCh:
				m.openDashboard()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openDashboard opens the dashboard in the default browser
func (m *Manager) openDashboard() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

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
		slog.Error("Failed to open dashboard", "error", err)
	}
}
