package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samiconductor/ghradl/internal/ghrel"
	"github.com/samiconductor/ghradl/internal/releases"
	"github.com/samiconductor/ghradl/internal/version"
)

type releasesLoadedMsg struct {
	releases []ghrel.Release
}

type releasesErrMsg struct {
	err error
}

type releasesCanceledMsg struct{}

type downloadDoneMsg struct {
	count int
	dir   string
}

type downloadErrMsg struct {
	err error
}

type downloadCanceledMsg struct{}

// initRefreshMsg triggers the startup auto-refresh flow.
type initRefreshMsg struct{}

func retryWithBackoff(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if i == attempts-1 {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return ctx.Err()
}

func refreshReleasesCmd(ctx context.Context, src releases.Source, user, repo, token string) tea.Cmd {
	return func() tea.Msg {
		var all []ghrel.Release
		err := retryWithBackoff(ctx, 3, 250*time.Millisecond, func() error {
			rels, e := src.Releases(ctx, user, repo, token)
			if e == nil {
				all = rels
			}
			return e
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return releasesCanceledMsg{}
			}
			return releasesErrMsg{err: fmt.Errorf("refresh releases: %w", err)}
		}
		return releasesLoadedMsg{releases: all}
	}
}

func downloadCmd(ctx context.Context, src releases.Source, rel ghrel.Release, dir, token string) tea.Cmd {
	return func() tea.Msg {
		err := retryWithBackoff(ctx, 3, 500*time.Millisecond, func() error {
			return src.DownloadAssets(ctx, rel, dir, token, false)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return downloadCanceledMsg{}
			}
			return downloadErrMsg{err: fmt.Errorf("download assets: %w", err)}
		}
		return downloadDoneMsg{count: len(rel.Assets), dir: dir}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg { return initRefreshMsg{} },
	)
}

func (m *model) startRefresh() tea.Cmd {
	// Cancel/replace policy: starting a refresh cancels any in-flight work.
	m.cancelDownload()
	m.downloading = false
	m.cancelRefresh()

	if err := m.validateRefresh(); err != nil {
		m.SetError(err)
		return nil
	}

	m.ClearBanner()
	m.loadingReleases = true
	m.SetStatus("Refreshing release list…")

	baseCtx, cancel := context.WithCancel(context.Background())
	m.refreshCancel = cancel
	ctx, timeoutCancel := context.WithTimeout(baseCtx, 30*time.Second)

	inner := refreshReleasesCmd(ctx, m.src, m.user.Value(), m.repo.Value(), m.resolveToken())
	return func() tea.Msg {
		defer timeoutCancel()
		return inner()
	}
}

func (m *model) startDownload() tea.Cmd {
	// Cancel/replace policy: starting a download cancels any in-flight work.
	m.cancelRefresh()
	m.loadingReleases = false
	m.cancelDownload()

	if err := m.validateDownload(); err != nil {
		m.SetError(err)
		return nil
	}

	rel, ok := m.selectedRelease()
	if !ok {
		m.SetError(errors.New("selected release is no longer in the list; refresh and pick again"))
		return nil
	}

	pattern, err := m.resolvePattern()
	if err != nil {
		m.SetError(err)
		return nil
	}

	filtered := ghrel.FilterAssets(rel, pattern)
	if len(filtered.Assets) == 0 {
		m.SetError(&ghrel.NoMatchError{Tag: rel.Tag, Pattern: pattern.String()})
		return nil
	}

	m.ClearBanner()
	m.downloading = true
	m.SetStatus("Downloading…")

	baseCtx, cancel := context.WithCancel(context.Background())
	m.downloadCancel = cancel
	ctx, timeoutCancel := context.WithTimeout(baseCtx, 2*time.Minute)

	inner := downloadCmd(ctx, m.src, filtered, m.resolveOutput(), m.resolveToken())
	return func() tea.Msg {
		defer timeoutCancel()
		return inner()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case initRefreshMsg:
		return m, m.startRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.releasesList.SetSize(max(msg.Width-4, 40), max(msg.Height-14, 6))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "q" || key == "ctrl+c" {
			m.cancelRefresh()
			m.cancelDownload()
			return m, tea.Quit
		}

		if key == "esc" {
			m.ClearBanner()
			m.SetStatus("Ready")
			return m, nil
		}

		if key == "ctrl+r" {
			return m, m.startRefresh()
		}

		if key == "ctrl+d" {
			return m, m.startDownload()
		}

		if key == "tab" {
			m.focus = focusTarget((int(m.focus) + 1) % focusCount)
			m.applyFocus()
			return m, nil
		}
		if key == "shift+tab" {
			i := int(m.focus) - 1
			if i < 0 {
				i = focusCount - 1
			}
			m.focus = focusTarget(i)
			m.applyFocus()
			return m, nil
		}

		if m.focus == focusReleases {
			var cmd tea.Cmd
			m.releasesList, cmd = m.releasesList.Update(msg)

			if key == "enter" {
				if it, ok := m.releasesList.SelectedItem().(releaseItem); ok {
					m.selectedTag = it.release.Tag
					if it.isLatest {
						m.SetStatus("Selected release: " + it.display + " (latest)")
					} else {
						m.SetStatus("Selected release: " + it.display)
					}
				}
			}
			return m, cmd
		}

		return m.updateFocusedInput(msg)

	case releasesLoadedMsg:
		m.loadingReleases = false
		m.refreshCancel = nil

		items := make([]releaseItem, 0, len(msg.releases))
		for _, rel := range msg.releases {
			items = append(items, releaseItem{
				release: rel,
				display: version.NormalizeTag(rel.Tag),
			})
		}

		if len(items) == 0 {
			m.SetError(errors.New("no releases found for this repository"))
			m.SetStatus("No releases found.")
			m.releasesList.SetItems(nil)
			return m, nil
		}

		// Sort newest first; ties on display fall back to the raw tag.
		sort.Slice(items, func(i, j int) bool {
			di := items[i].display
			dj := items[j].display
			if di == dj {
				return items[i].release.Tag > items[j].release.Tag
			}
			return version.Greater(di, dj)
		})

		items[0].isLatest = true

		litems := make([]list.Item, 0, len(items))
		for _, it := range items {
			litems = append(litems, it)
		}
		m.releasesList.SetItems(litems)

		selectedIdx := 0
		if m.selectedTag != "" {
			found := false
			for i := range items {
				if items[i].release.Tag == m.selectedTag {
					selectedIdx = i
					found = true
					break
				}
			}
			if !found {
				m.selectedTag = items[0].release.Tag
				selectedIdx = 0
			}
		} else {
			m.selectedTag = items[0].release.Tag
		}

		m.releasesList.Select(selectedIdx)

		selectedDisplay := items[selectedIdx].display
		if selectedIdx == 0 {
			m.SetStatus("Selected release: " + selectedDisplay + " (latest)")
		} else {
			m.SetStatus("Selected release: " + selectedDisplay)
		}

		return m, nil

	case releasesErrMsg:
		m.loadingReleases = false
		m.refreshCancel = nil
		m.SetError(msg.err)
		return m, nil

	case releasesCanceledMsg:
		m.loadingReleases = false
		m.refreshCancel = nil
		m.SetStatus("Refresh canceled.")
		return m, nil

	case downloadDoneMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus(fmt.Sprintf("Downloaded %d asset(s) to %s", msg.count, msg.dir))
		return m, nil

	case downloadErrMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetError(msg.err)
		return m, nil

	case downloadCanceledMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus("Download canceled.")
		return m, nil

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}

func (m *model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusUser:
		m.user, cmd = m.user.Update(msg)
	case focusRepo:
		m.repo, cmd = m.repo.Update(msg)
	case focusPattern:
		m.pattern, cmd = m.pattern.Update(msg)
	case focusOutput:
		m.output, cmd = m.output.Update(msg)
	case focusToken:
		m.token, cmd = m.token.Update(msg)
	}
	return *m, cmd
}
