package tui

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/profileview/internal/profile"
	"github.com/jask/profileview/internal/service"
)

const (
	gridPadding = 1
	tileHeight  = 5 // border + avatar + username + fullname
	sideWidth   = 36
	wideLayout  = 80
)

var (
	white  = lipgloss.Color("#FFFFFF")
	blue   = lipgloss.Color("#4C8EFF")
	green  = lipgloss.Color("#3DCC8E")
	orange = lipgloss.Color("#FF6F21")
	grey   = lipgloss.Color("#8A8A8A")
	faint  = lipgloss.Color("#3A3A3A")

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(grey)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(blue)
	statusStyle  = lipgloss.NewStyle().Faint(true)

	tabStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(grey)
	tabSelectedStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(blue)

	tileStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(faint).Align(lipgloss.Center)
	tileSelectedStyle = tileStyle.BorderForeground(blue)
)

// avatarPalette colours avatars by a hash of the name.
var avatarPalette = []lipgloss.Color{"#4C8EFF", "#3DCC8E", "#FF6F21", "#A8CCFF", "#F9E2AF", "#CBA6F7", "#F38BA8", "#94E2D5"}

func avatarColor(name string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

func initials(name string) string {
	name = strings.TrimLeft(name, "@.")
	if name == "" {
		return "?"
	}
	r := []rune(strings.ToUpper(name))
	if len(r) == 1 {
		return string(r)
	}
	return string(r[:2])
}

func avatar(name string, large bool) string {
	s := lipgloss.NewStyle().Background(avatarColor(name)).Foreground(lipgloss.Color("#1E1E2E")).Bold(true)
	if large {
		return s.Padding(1, 3).Render(initials(name))
	}
	return s.Padding(0, 1).Render(initials(name))
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	header := a.renderHeader()
	if a.screen.Width() == 0 {
		// nothing to lay out until the first size arrives
		return header
	}
	bio := a.renderBioTeamProofs()
	tabs := a.renderTabs()
	footer := a.renderFooter()

	rows, metrics := a.screen.Rows()
	cursorRow := 0
	if metrics.ItemsPerRow > 0 {
		cursorRow = a.cursor / metrics.ItemsPerRow
	}

	fit := len(rows)
	offset := 0
	if a.height > 0 {
		room := a.height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(footer)
		fit = max(1, (room-lipgloss.Height(bio))/tileHeight)
		if cursorRow >= fit {
			// scrolled past the bio; the tabs stay pinned under the header
			bio = ""
			fit = max(1, room/tileHeight)
			offset = cursorRow - fit + 1
		}
	}
	end := min(len(rows), offset+fit)

	var grid []string
	for i := offset; i < end; i++ {
		grid = append(grid, a.renderFriendRow(rows[i], i*metrics.ItemsPerRow, metrics.ItemWidth))
	}
	if len(rows) == 0 && a.details.State != profile.StateChecking {
		grid = append(grid, statusStyle.Render(emptyListText(a.screen.SelectedTab())))
	}

	parts := []string{header}
	if bio != "" {
		parts = append(parts, bio)
	}
	parts = append(parts, tabs, lipgloss.NewStyle().PaddingLeft(gridPadding).Render(strings.Join(grid, "\n")), footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func emptyListText(tab profile.Tab) string {
	if tab == profile.TabFollowing {
		return "Not following anyone yet."
	}
	return "No followers yet."
}

func (a *App) renderHeader() string {
	bg := a.details.BackgroundColor
	if bg == "" {
		bg = service.ColorBlue
	}
	back := "← Back"
	if len(a.history) == 0 {
		back = "× Close"
	}
	left := back + "   " + a.details.Username
	if a.searching {
		left = a.search.View()
	}
	bar := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(white).Bold(true).Padding(0, 1)
	if a.width > 0 {
		bar = bar.Width(a.width)
	}
	out := bar.Render(left)
	if a.searching && len(a.suggestions) > 0 {
		var b strings.Builder
		for i, s := range a.suggestions {
			marker := "  "
			if i == a.suggestCursor {
				marker = "▶ "
			}
			b.WriteString(marker + s + "\n")
		}
		out += "\n" + strings.TrimRight(b.String(), "\n")
	}
	return out
}

func (a *App) renderBioTeamProofs() string {
	bio := a.renderBio()
	if a.screen.Props().State == profile.StateNotAUserYet {
		return bio
	}
	// mobile keeps the profile to the bio alone
	if a.platform == profile.PlatformMobile {
		return bio
	}
	side := lipgloss.JoinVertical(lipgloss.Left, a.renderTeams(), a.renderProofs())
	if a.width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(a.width-sideWidth-2).Render(bio), lipgloss.NewStyle().Width(sideWidth).Render(side))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bio, side)
}

func (a *App) renderBio() string {
	p := a.screen.Props()
	nameColor := orange
	if p.FollowThem {
		nameColor = green
	}
	lines := []string{
		avatar(p.Username, true),
		lipgloss.NewStyle().Bold(true).Foreground(nameColor).Render(p.Username),
	}
	if p.Fullname != "" {
		lines = append(lines, p.Fullname)
	}
	if p.FollowsYou {
		lines = append(lines, statusStyle.Render("FOLLOWS YOU"))
	}
	if p.Bio != "" {
		lines = append(lines, p.Bio)
	}
	if p.Location != "" {
		lines = append(lines, statusStyle.Render(p.Location))
	}
	if p.State == profile.StateNotAUserYet {
		lines = append(lines, statusStyle.Render(p.Username+" is not a user yet."))
	}
	lines = append(lines, "", a.renderActions())
	return lipgloss.NewStyle().Padding(1, gridPadding).Render(strings.Join(lines, "\n"))
}

func (a *App) renderActions() string {
	if a.screen.Props().State == profile.StateChecking {
		return a.spinner.View() + " Loading..."
	}
	var buttons []string
	for _, action := range a.screen.Actions() {
		hint := ""
		for _, b := range a.actionBindings() {
			if b.action == action {
				hint = "[" + b.binding.Help().Key + "] "
			}
		}
		buttons = append(buttons, buttonStyle.Render(hint+action.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (a *App) renderTeams() string {
	teams := a.screen.Props().TeamShowcase
	if len(teams) == 0 {
		return ""
	}
	out := sectionStyle.Render("Teams")
	for _, t := range teams {
		line := avatar(t.Name, false) + " " + lipgloss.NewStyle().Bold(true).Render(t.Name)
		if t.MemberCount > 0 {
			line += statusStyle.Render(fmt.Sprintf("  %d members", t.MemberCount))
		}
		out += "\n" + line
	}
	return out + "\n"
}

func (a *App) renderProofs() string {
	proofs := a.screen.Proofs()
	if len(proofs) == 0 {
		return ""
	}
	out := sectionStyle.Render("Proofs")
	for _, key := range proofs {
		svc := profile.AssertionService(key)
		if svc == "" {
			svc = "?"
		}
		out += fmt.Sprintf("\n%-10s %s", svc, profile.AssertionValue(key))
	}
	return out
}

func (a *App) renderTabs() string {
	render := func(following bool) string {
		label := a.screen.TabLabel(following)
		if profile.Tab(following) == a.screen.SelectedTab() {
			return tabSelectedStyle.Render(label)
		}
		return tabStyle.Render(label)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, render(false), render(true))
	return lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(faint).Render(bar)
}

func (a *App) renderFriendRow(usernames []string, firstIndex, itemWidth int) string {
	tiles := make([]string, len(usernames))
	for i, u := range usernames {
		tiles[i] = a.renderFriend(u, itemWidth, firstIndex+i == a.cursor)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (a *App) renderFriend(username string, width int, selected bool) string {
	inner := max(1, width-2)
	card := a.cards[username]
	nameStyle := lipgloss.NewStyle().Foreground(blue)
	if card.FollowThem {
		nameStyle = nameStyle.Foreground(green)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Underline(true)
	}
	lines := []string{
		avatar(username, false),
		nameStyle.Render(ansi.Truncate(username, inner, "…")),
		statusStyle.Render(ansi.Truncate(card.FullName, inner, "…")),
	}
	style := tileStyle
	if selected {
		style = tileSelectedStyle
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

func (a *App) renderFooter() string {
	out := a.help.View(a.keys)
	if a.status != "" {
		out = statusStyle.Render(a.status) + "\n" + out
	}
	return out
}
