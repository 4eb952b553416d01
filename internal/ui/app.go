package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/client"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/notify"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/components/chat"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/components/statusbar"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/components/welcome"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/keys"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

// Screen identifies which top-level screen is shown.
type Screen int

const (
	// ScreenWelcome is the branded landing screen.
	ScreenWelcome Screen = iota
	// ScreenSession is the live ordering conversation.
	ScreenSession
)

const (
	minAppWidth  = 60
	minAppHeight = 16
)

// startSignal counts welcome activations. The welcome contract is a
// plain callback; the shell polls the count after delegating input, so
// every activation is observed even though the model is copied by value.
type startSignal struct {
	n int
}

// Config carries the shell's dependencies from main.
type Config struct {
	Effective     appconfig.Effective
	Client        *client.Client
	Notifier      *notify.Dispatcher
	Notifications model.NotificationConfig
	// OrdersDir, when set, prefixes receipt filenames in status lines so
	// they point at the local service's orders directory.
	OrdersDir string
}

// App is the main application model.
type App struct {
	// Components
	welcome   welcome.Model
	chat      chat.Model
	statusBar statusbar.Model

	// State
	screen      Screen
	width       int
	height      int
	ready       bool
	quitting    bool
	confirmQuit bool
	lastReceipt string
	start       *startSignal

	// Dependencies
	eff       appconfig.Effective
	theme     styles.Theme
	client    *client.Client
	notifier  *notify.Dispatcher
	notifyCfg model.NotificationConfig
	ordersDir string
	keys      keys.KeyMap
	ctx       context.Context
}

// New creates a new application instance.
func New(cfg Config) App {
	theme := styles.NewTheme(cfg.Effective)
	sig := &startSignal{}

	w := welcome.New(cfg.Effective, theme, welcome.Props{
		StartButtonText: cfg.Effective.StartButtonText,
		OnStartCall:     func() { sig.n++ },
	})

	return App{
		welcome:   w,
		chat:      chat.New(cfg.Effective, theme),
		statusBar: statusbar.New(cfg.Effective.CompanyName),
		screen:    ScreenWelcome,
		start:     sig,
		eff:       cfg.Effective,
		theme:     theme,
		client:    cfg.Client,
		notifier:  cfg.Notifier,
		notifyCfg: cfg.Notifications,
		ordersDir: cfg.OrdersDir,
		keys:      keys.DefaultKeyMap(),
		ctx:       context.Background(),
	}
}

// Init sets the terminal window title.
func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle(a.eff.PageTitle)
}

// SetSize updates the window dimensions.
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.statusBar.SetWidth(width)
	content := height - 1
	if content < 1 {
		content = 1
	}
	a.welcome.SetSize(width, content)
	a.chat.SetSize(width, content)
}

func (a App) windowTooSmall() bool {
	return a.width < minAppWidth || a.height < minAppHeight
}

// beginSession switches to the conversation screen, starts the session
// client, and arms the event pump.
func (a App) beginSession(prev tea.Cmd) (tea.Model, tea.Cmd) {
	a.screen = ScreenSession
	a.client.Start(a.ctx)

	stateCmd := a.chat.SetState(model.SessionStateConnecting)
	a.statusBar.SetState(model.SessionStateConnecting)
	a.statusBar.SetMessage("Calling the barista...", false)

	return a, tea.Batch(prev, stateCmd, a.chat.Init(), WaitForEvent(a.client.Events()))
}

// teardown closes the session client before quitting.
func (a *App) teardown() tea.Cmd {
	if a.client != nil {
		_ = a.client.Close()
	}
	return tea.Quit
}

// notifyReceipt fires the order-ready notification channels.
func (a App) notifyReceipt(msg ReceiptSavedMsg) tea.Cmd {
	if a.notifier == nil {
		return nil
	}
	return func() tea.Msg {
		a.notifier.Dispatch(a.ctx, a.notifyCfg, notify.Event{
			OrderID: msg.OrderID,
			Type:    notify.EventOrderReady,
			Title:   a.eff.CompanyName,
			Message: msg.Summary,
		})
		return nil
	}
}

// notifySessionLost announces a session that dropped and will not
// return, for customers who stepped away from the terminal.
func (a App) notifySessionLost(msg DisconnectedMsg) tea.Cmd {
	if a.notifier == nil {
		return nil
	}
	text := "The session ended"
	if msg.Err != nil {
		text = "The session ended: " + msg.Err.Error()
	}
	return func() tea.Msg {
		a.notifier.Dispatch(a.ctx, a.notifyCfg, notify.Event{
			Type:    notify.EventSessionLost,
			Title:   a.eff.CompanyName,
			Message: text,
		})
		return nil
	}
}
