package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/profileview/internal/profile"
	"github.com/jask/profileview/internal/service"
)

// Source is what the screen needs from the profile backend.
type Source interface {
	Load(ctx context.Context, viewer, username string) (service.Details, error)
	Friend(ctx context.Context, viewer, username string) (service.FriendCard, error)
	Follow(ctx context.Context, viewer, username string) error
	Unfollow(ctx context.Context, viewer, username string) error
	IgnoreFor24Hours(ctx context.Context, viewer, username string) error
	Accept(ctx context.Context, viewer, username string) error
	Usernames(ctx context.Context) ([]string, error)
}

// Options configure a new App.
type Options struct {
	Viewer    string
	Username  string
	Platform  profile.Platform
	TileWidth int
}

const searchLimit = 6

// App is the profile browser: one profile screen plus a back stack.
type App struct {
	ctx      context.Context
	src      Source
	viewer   string
	platform profile.Platform

	store   *profile.SelectionStore
	screen  *profile.Screen
	details service.Details
	history []string
	cards   map[string]service.FriendCard
	cursor  int

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	search        textinput.Model
	searching     bool
	known         []string
	suggestions   []string
	suggestCursor int

	width, height int
	status        string
	quitting      bool

	pending []tea.Cmd
}

func New(ctx context.Context, src Source, opts Options) *App {
	if opts.Username == "" {
		opts.Username = opts.Viewer
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search users"
	ti.CharLimit = 64

	a := &App{
		ctx:      ctx,
		src:      src,
		viewer:   opts.Viewer,
		platform: opts.Platform,
		cards:    map[string]service.FriendCard{},
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:   ti,
		details:  service.Details{Username: opts.Username, State: profile.StateChecking},
	}
	a.store = profile.NewSelectionStore(func(username string, following bool) {
		log.Printf("tab: %s now shows %s", username, profile.Tab(following))
	})
	a.screen = profile.NewScreen(a.store, opts.Platform, opts.TileWidth)
	return a
}

func (a *App) Init() tea.Cmd {
	a.screen.Mount(a.props())
	return tea.Batch(append(a.drainPending(), a.spinner.Tick, a.loadUsernames())...)
}

// Screen exposes the profile screen state.
func (a *App) Screen() *profile.Screen { return a.screen }

// Username is the profile currently shown.
func (a *App) Username() string { return a.details.Username }

// Status is the last status line.
func (a *App) Status() string { return a.status }

func (a *App) queue(cmd tea.Cmd) { a.pending = append(a.pending, cmd) }

func (a *App) drainPending() []tea.Cmd {
	cmds := a.pending
	a.pending = nil
	return cmds
}

func (a *App) callbacks() profile.Callbacks {
	return profile.Callbacks{
		OnFollow: func() {
			a.status = "following " + a.details.Username + "..."
			a.queue(a.trackCmd("followed", a.src.Follow))
		},
		OnUnfollow: func() {
			a.status = "unfollowing " + a.details.Username + "..."
			a.queue(a.trackCmd("unfollowed", a.src.Unfollow))
		},
		OnIgnoreFor24Hours: func() {
			a.queue(a.trackCmd("ignored for 24 hours", a.src.IgnoreFor24Hours))
		},
		OnAccept: func() {
			a.queue(a.trackCmd("accepted", a.src.Accept))
		},
		OnChat: func() {
			a.status = fmt.Sprintf("chat: %s,%s", a.viewer, a.details.Username)
		},
		OnReload: a.reload,
		OnBack: func() {
			if len(a.history) == 0 {
				a.quit()
				return
			}
			prev := a.history[len(a.history)-1]
			a.history = a.history[:len(a.history)-1]
			a.show(prev)
		},
		OnClose: a.quit,
	}
}

func (a *App) reload() {
	a.details.State = profile.StateChecking
	a.queue(tea.Batch(a.loadCmd(a.details.Username), a.spinner.Tick))
}

func (a *App) quit() {
	a.quitting = true
	a.queue(tea.Quit)
}

func (a *App) props() profile.Props {
	return a.details.Props(a.callbacks())
}

// show switches the screen to username. The screen asks for the reload itself.
func (a *App) show(username string) {
	a.details = service.Details{Username: username, State: profile.StateChecking}
	a.cursor = 0
	a.screen.Update(a.props())
}

func (a *App) open(username string) {
	if username == "" || username == a.details.Username {
		return
	}
	a.history = append(a.history, a.details.Username)
	a.show(username)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.search.Width = max(10, m.Width-8)
		if a.screen.OnMeasured(max(0, m.Width-2*gridPadding)) {
			a.clampCursor()
		}
	case tea.KeyMsg:
		if a.searching {
			cmds = append(cmds, a.handleSearchKey(m))
		} else {
			a.handleKey(m)
		}
	case detailsMsg:
		if m.username != a.details.Username {
			break // stale
		}
		if m.err != nil {
			log.Printf("load %s: %v", m.username, m.err)
			a.status = "error: " + m.err.Error()
			a.details.State = profile.StateError
			a.details.BackgroundColor = service.BackgroundColor(profile.StateError, false)
		} else {
			a.details = m.details
		}
		a.screen.Update(a.props())
		a.clampCursor()
		cmds = append(cmds, a.loadCards(a.details.Followers, a.details.Following))
	case cardsMsg:
		for _, c := range m {
			a.cards[c.Username] = c
		}
	case usernamesMsg:
		a.known = []string(m)
	case trackDoneMsg:
		if m.err != nil {
			log.Printf("%s %s: %v", m.verb, m.username, m.err)
			a.status = "error: " + m.err.Error()
			break
		}
		a.status = m.verb + " " + m.username
		for _, name := range []string{m.username, a.viewer} {
			delete(a.cards, name)
		}
		if m.username == a.details.Username {
			a.reload()
		}
	case spinner.TickMsg:
		if a.details.State == profile.StateChecking {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(m)
			cmds = append(cmds, cmd)
		}
	default:
		if a.searching {
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	// callbacks may have changed the details; keep the screen current
	a.screen.Update(a.props())
	cmds = append(cmds, a.drainPending()...)
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(m tea.KeyMsg) {
	k := a.keys
	switch {
	case key.Matches(m, k.Quit):
		a.screen.Invoke(profile.ActionClose)
	case key.Matches(m, k.Back):
		a.screen.Invoke(profile.ActionBack)
	case key.Matches(m, k.Search):
		a.searching = true
		a.search.SetValue("")
		a.suggestions = nil
		a.suggestCursor = 0
		a.queue(a.search.Focus())
	case key.Matches(m, k.Tab):
		a.screen.ToggleTab()
		a.cursor = 0
	case key.Matches(m, k.Followers):
		if a.screen.ChangeFollowing(false) {
			a.cursor = 0
		}
	case key.Matches(m, k.Following):
		if a.screen.ChangeFollowing(true) {
			a.cursor = 0
		}
	case key.Matches(m, k.Left):
		a.moveCursor(-1)
	case key.Matches(m, k.Right):
		a.moveCursor(1)
	case key.Matches(m, k.Up):
		_, lm := a.screen.Rows()
		a.moveCursor(-lm.ItemsPerRow)
	case key.Matches(m, k.Down):
		_, lm := a.screen.Rows()
		a.moveCursor(lm.ItemsPerRow)
	case key.Matches(m, k.Open):
		if friends := a.screen.Friends(); a.cursor < len(friends) {
			a.open(friends[a.cursor])
		}
	default:
		if action, ok := a.actionFor(m); ok {
			a.screen.Invoke(action)
		}
	}
}

func (a *App) actionFor(m tea.KeyMsg) (profile.Action, bool) {
	for _, b := range a.actionBindings() {
		if key.Matches(m, b.binding) {
			return b.action, true
		}
	}
	return "", false
}

type actionBinding struct {
	action  profile.Action
	binding key.Binding
}

func (a *App) actionBindings() []actionBinding {
	return []actionBinding{
		{profile.ActionFollow, a.keys.Follow},
		{profile.ActionUnfollow, a.keys.Unfollow},
		{profile.ActionChat, a.keys.Chat},
		{profile.ActionReload, a.keys.Reload},
		{profile.ActionIgnore24h, a.keys.Ignore},
		{profile.ActionAccept, a.keys.Accept},
	}
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc", "ctrl+c":
		a.closeSearch()
		return nil
	case "enter":
		target := a.search.Value()
		if a.suggestCursor < len(a.suggestions) {
			target = a.suggestions[a.suggestCursor]
		}
		a.closeSearch()
		a.open(target)
		return nil
	case "up", "ctrl+p":
		if a.suggestCursor > 0 {
			a.suggestCursor--
		}
		return nil
	case "down", "ctrl+n":
		if a.suggestCursor < len(a.suggestions)-1 {
			a.suggestCursor++
		}
		return nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.suggestions = service.Suggest(a.search.Value(), a.known, searchLimit)
	a.suggestCursor = 0
	return cmd
}

func (a *App) closeSearch() {
	a.searching = false
	a.search.Blur()
	a.suggestions = nil
}

func (a *App) moveCursor(delta int) {
	n := len(a.screen.Friends())
	if n == 0 {
		a.cursor = 0
		return
	}
	next := a.cursor + delta
	if next < 0 || next >= n {
		return
	}
	a.cursor = next
}

func (a *App) clampCursor() {
	if n := len(a.screen.Friends()); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

// commands

func (a *App) loadCmd(username string) tea.Cmd {
	viewer := a.viewer
	return func() tea.Msg {
		d, err := a.src.Load(a.ctx, viewer, username)
		return detailsMsg{username: username, details: d, err: err}
	}
}

func (a *App) loadUsernames() tea.Cmd {
	return func() tea.Msg {
		names, err := a.src.Usernames(a.ctx)
		if err != nil {
			log.Printf("usernames: %v", err)
			return usernamesMsg(nil)
		}
		return usernamesMsg(names)
	}
}

func (a *App) loadCards(lists ...[]string) tea.Cmd {
	var missing []string
	seen := map[string]bool{}
	for _, list := range lists {
		for _, u := range list {
			if _, ok := a.cards[u]; ok || seen[u] {
				continue
			}
			seen[u] = true
			missing = append(missing, u)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	viewer := a.viewer
	return func() tea.Msg {
		out := make(cardsMsg, 0, len(missing))
		for _, u := range missing {
			c, err := a.src.Friend(a.ctx, viewer, u)
			if err != nil {
				log.Printf("friend card %s: %v", u, err)
			}
			out = append(out, c)
		}
		return out
	}
}

func (a *App) trackCmd(verb string, fn func(ctx context.Context, viewer, username string) error) tea.Cmd {
	viewer, username := a.viewer, a.details.Username
	return func() tea.Msg {
		err := fn(a.ctx, viewer, username)
		return trackDoneMsg{verb: verb, username: username, err: err}
	}
}
