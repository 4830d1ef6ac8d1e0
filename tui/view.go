package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	w := m.width - 4
	if w <= 0 {
		w = 92
	}

	var (
		appPad = lipgloss.NewStyle().Padding(1, 2)

		muted = lipgloss.NewStyle().Faint(true)
		bold  = lipgloss.NewStyle().Bold(true)

		titleBar = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder())

		panelBase = lipgloss.NewStyle().
				Padding(1, 1).
				Border(lipgloss.RoundedBorder()).
				MarginTop(1)

		panelFocused = panelBase.Copy().
				Border(lipgloss.DoubleBorder()).
				Bold(true)

		panelTitle = lipgloss.NewStyle().Bold(true)

		fieldFocused = lipgloss.NewStyle().Bold(true)
		fieldBlurred = lipgloss.NewStyle().Faint(true)

		statusBox = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder())

		errorBox = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				Bold(true)

		footer = lipgloss.NewStyle().MarginTop(1)
	)

	gap := 2
	leftW := (w - 2*2 - gap) * 2 / 3
	rightW := (w - 2*2 - gap) - leftW
	if leftW < 40 {
		leftW = 40
	}
	if rightW < 34 {
		rightW = 34
	}

	// Right panel inner width accounts for 2 columns of border and 2 of
	// padding, since panel padding is (1,1).
	rightInnerW := rightW - 4
	if rightInnerW < 10 {
		rightInnerW = 10
	}

	title := "GitHub Release Asset Downloader"
	sub := strings.TrimSpace(m.user.Value()) + "/" + strings.TrimSpace(m.repo.Value())
	if sub == "/" {
		sub = "enter a user and repo, then ctrl+r"
	}
	if m.loadingReleases {
		sub = fmt.Sprintf("%s  •  %s Refreshing releases…", sub, m.spin.View())
	}
	if m.downloading {
		sub = fmt.Sprintf("%s  •  %s Downloading…", sub, m.spin.View())
	}

	header := titleBar.Width(w-2*2).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			bold.Render(title),
			muted.Render(sub),
		),
	)

	releasesPanelStyle := panelBase
	if m.focus == focusReleases {
		releasesPanelStyle = panelFocused
	}
	settingsPanelStyle := panelBase
	if m.focus != focusReleases {
		settingsPanelStyle = panelFocused
	}

	releasesHeader := "Releases"
	if m.selectedTag != "" {
		releasesHeader = fmt.Sprintf("%s (selected: %s)", releasesHeader, m.selectedTag)
	}
	if m.focus == focusReleases {
		releasesHeader = "▶ " + releasesHeader
	}

	releasesPanel := releasesPanelStyle.
		Width(leftW).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				panelTitle.Render(releasesHeader),
				m.releasesList.View(),
			),
		)

	var rightBody strings.Builder

	settingsTitle := "Download Settings"
	if m.focus != focusReleases {
		settingsTitle = "▶ " + settingsTitle
	}

	fmt.Fprintf(&rightBody, "%s\n%s\n",
		panelTitle.Render(settingsTitle),
		muted.Render("Tab/Shift+Tab to change focus."),
	)

	inputs := []struct {
		view  string
		focus focusTarget
	}{
		{m.user.View(), focusUser},
		{m.repo.View(), focusRepo},
		{m.pattern.View(), focusPattern},
		{m.output.View(), focusOutput},
		{m.token.View(), focusToken},
	}
	fmt.Fprintln(&rightBody)
	for _, in := range inputs {
		style := fieldBlurred
		if m.focus == in.focus {
			style = fieldFocused
		}
		fmt.Fprintf(&rightBody, "%s\n", style.Render(in.view))
	}

	if strings.TrimSpace(m.status) != "" {
		fmt.Fprintf(&rightBody, "\n%s\n", statusBox.Width(rightInnerW).Render(m.status))
	}
	if m.err != nil {
		fmt.Fprintf(&rightBody, "\n%s\n", errorBox.Width(rightInnerW).Render("Error: "+m.err.Error()))
	}

	rightPanel := settingsPanelStyle.
		Width(rightW).
		Render(rightBody.String())

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		releasesPanel,
		lipgloss.NewStyle().Width(gap).Render(""),
		rightPanel,
	)

	footerLine := footer.Render(muted.Render(helpText))

	return appPad.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
			footerLine,
		),
	)
}
