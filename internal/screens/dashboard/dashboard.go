// Package dashboard is the signed-in home screen: start an interview,
// review history and progress, or sign out.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/screens/history"
	"github.com/rahulj/mockmate/internal/screens/progressview"
	"github.com/rahulj/mockmate/internal/screens/results"
	"github.com/rahulj/mockmate/internal/screens/setup"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/theme"
	"github.com/rahulj/mockmate/internal/voice"
)

// Config wires the dashboard to the engine and its sibling screens.
type Config struct {
	User       *store.User
	Catalog    *bank.Catalog
	Generator  *session.Generator
	Store      *store.Store
	Speaker    voice.Narrator
	Recognizer voice.Recognizer
	Camera     voice.Camera
	Logger     *slog.Logger

	// SignedOut produces the screen shown after signing out.
	SignedOut func() screen.Screen
}

// DashboardScreen is the main menu after sign-in.
type DashboardScreen struct {
	cfg  Config
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard for the signed-in user.
func New(cfg Config) *DashboardScreen {
	d := &DashboardScreen{cfg: cfg}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start Interview", Action: d.startInterview},
		{Label: "Last Result", Action: d.openLastResult},
		{Label: "History", Action: d.openHistory},
		{Label: "Progress", Action: d.openProgress},
		{Label: "Sign Out", Action: d.signOut},
	})
	return d
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) startInterview() tea.Cmd {
	s := setup.New(setup.Config{
		User:       d.cfg.User,
		Catalog:    d.cfg.Catalog,
		Generator:  d.cfg.Generator,
		Store:      d.cfg.Store,
		Speaker:    d.cfg.Speaker,
		Recognizer: d.cfg.Recognizer,
		Camera:     d.cfg.Camera,
		Logger:     d.cfg.Logger,
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (d *DashboardScreen) openLastResult() tea.Cmd {
	attempts := d.cfg.Store.Attempts()
	email := d.cfg.User.Email
	return func() tea.Msg {
		last, err := attempts.Last(context.Background(), email)
		if err != nil {
			d.cfg.Logger.Warn("loading last result failed", "error", err)
			return nil
		}
		if last == nil {
			return nil
		}
		return router.PushScreenMsg{Screen: results.New(*last, d.cfg.Speaker)}
	}
}

func (d *DashboardScreen) openHistory() tea.Cmd {
	s := history.New(d.cfg.Store.Attempts(), d.cfg.User.Email)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (d *DashboardScreen) openProgress() tea.Cmd {
	s := progressview.New(d.cfg.Store.Attempts(), d.cfg.User.Email)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (d *DashboardScreen) signOut() tea.Cmd {
	users := d.cfg.Store.Users()
	next := d.cfg.SignedOut()
	return tea.Batch(
		func() tea.Msg {
			if err := users.ClearCurrent(context.Background()); err != nil {
				d.cfg.Logger.Warn("sign out failed", "error", err)
			}
			return screen.UserChangedMsg{}
		},
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	greeting := theme.Title.Render(fmt.Sprintf("Welcome back, %s", d.cfg.User.Name))
	sub := theme.Subtitle.Render("Ready for a mock round?")

	content := greeting + "\n" + sub + "\n\n" + d.menu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
