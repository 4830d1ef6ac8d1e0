package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/samiconductor/ghradl/internal/ghrel"
	"github.com/samiconductor/ghradl/internal/releases"
)

// Params seeds the TUI with values resolved by the CLI layer.
type Params struct {
	User   string
	Repo   string
	Token  string
	Source releases.Source
}

type focusTarget int

const (
	focusUser focusTarget = iota
	focusRepo
	focusReleases
	focusPattern
	focusOutput
	focusToken
)

const focusCount = int(focusToken) + 1

const helpText = "ctrl+r: refresh releases   ctrl+d: download   tab: next   shift+tab: prev   q: quit"

type releaseItem struct {
	release  ghrel.Release
	display  string
	isLatest bool
}

func (r releaseItem) Title() string { return r.display }

func (r releaseItem) Description() string {
	switch n := len(r.release.Assets); n {
	case 0:
		return "no assets"
	case 1:
		return "1 asset"
	default:
		return fmt.Sprintf("%d assets", n)
	}
}

func (r releaseItem) FilterValue() string { return r.display }

type model struct {
	src releases.Source

	user    textinput.Model
	repo    textinput.Model
	pattern textinput.Model
	output  textinput.Model
	token   textinput.Model

	releasesList list.Model

	selectedTag string

	focus focusTarget

	loadingReleases bool
	downloading     bool
	spin            spinner.Model

	status string
	err    error

	refreshCancel  context.CancelFunc
	downloadCancel context.CancelFunc

	width  int
	height int
}

func newModel(p Params) model {
	user := textinput.New()
	user.Placeholder = "samiconductor"
	user.Prompt = "User:    "
	user.CharLimit = 200
	user.Width = 40
	user.SetValue(p.User)

	repo := textinput.New()
	repo.Placeholder = "ghradl"
	repo.Prompt = "Repo:    "
	repo.CharLimit = 200
	repo.Width = 40
	repo.SetValue(p.Repo)

	pattern := textinput.New()
	pattern.Placeholder = ".*"
	pattern.Prompt = "Pattern: "
	pattern.CharLimit = 500
	pattern.Width = 40

	output := textinput.New()
	output.Placeholder = "."
	output.Prompt = "Output:  "
	output.CharLimit = 2000
	output.Width = 40

	token := textinput.New()
	token.Placeholder = "(optional; overrides GITHUB_TOKEN)"
	token.Prompt = "Token:   "
	token.CharLimit = 4000
	token.Width = 40
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.SetValue(p.Token)

	l := list.New(nil, list.NewDefaultDelegate(), 40, 8)
	l.Title = "Releases"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()

	m := model{
		src:          p.Source,
		user:         user,
		repo:         repo,
		pattern:      pattern,
		output:       output,
		token:        token,
		releasesList: l,
		focus:        focusUser,
		spin:         sp,
		status:       helpText,
	}

	m.applyFocus()
	return m
}

func (m *model) resolveToken() string {
	return strings.TrimSpace(m.token.Value())
}

func (m *model) resolveOutput() string {
	if out := strings.TrimSpace(m.output.Value()); out != "" {
		return out
	}
	return "."
}

func (m *model) resolvePattern() (*regexp.Regexp, error) {
	raw := strings.TrimSpace(m.pattern.Value())
	if raw == "" {
		raw = ".*"
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid asset pattern %q: %w", raw, err)
	}
	return re, nil
}

func (m *model) selectedRelease() (ghrel.Release, bool) {
	for _, it := range m.releasesList.Items() {
		if ri, ok := it.(releaseItem); ok && ri.release.Tag == m.selectedTag {
			return ri.release, true
		}
	}
	return ghrel.Release{}, false
}

func (m *model) validateRefresh() error {
	if strings.TrimSpace(m.user.Value()) == "" || strings.TrimSpace(m.repo.Value()) == "" {
		return errors.New("user and repo are required to refresh releases")
	}
	return nil
}

func (m *model) validateDownload() error {
	if strings.TrimSpace(m.user.Value()) == "" {
		return errors.New("user is required")
	}
	if strings.TrimSpace(m.repo.Value()) == "" {
		return errors.New("repo is required")
	}
	if strings.TrimSpace(m.selectedTag) == "" {
		return errors.New("select a release (refresh with ctrl+r and choose one)")
	}
	if _, err := m.resolvePattern(); err != nil {
		return err
	}
	return nil
}

func (m *model) SetStatus(s string) {
	m.status = s
}

func (m *model) SetError(err error) {
	m.err = err
	if err != nil {
		m.status = err.Error()
	}
}

func (m *model) ClearBanner() {
	m.err = nil
	m.status = helpText
}

func (m *model) cancelRefresh() {
	if m.refreshCancel != nil {
		m.refreshCancel()
		m.refreshCancel = nil
	}
}

func (m *model) cancelDownload() {
	if m.downloadCancel != nil {
		m.downloadCancel()
		m.downloadCancel = nil
	}
}

func (m *model) applyFocus() {
	m.user.Blur()
	m.repo.Blur()
	m.pattern.Blur()
	m.output.Blur()
	m.token.Blur()

	switch m.focus {
	case focusUser:
		m.user.Focus()
	case focusRepo:
		m.repo.Focus()
	case focusPattern:
		m.pattern.Focus()
	case focusOutput:
		m.output.Focus()
	case focusToken:
		m.token.Focus()
	}
}
