package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jobpanel/internal/config"
	"github.com/five82/jobpanel/internal/debounce"
	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
	"github.com/five82/jobpanel/internal/logtail"
	"github.com/five82/jobpanel/internal/prefs"
	"github.com/five82/jobpanel/internal/state"
)

// pane identifies which pane receives navigation keys.
type pane int

const (
	paneTable pane = iota
	paneDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   jobsapi.Fetcher
	Store     *state.Store
	Config    *config.Config
	ThemeName string
	PrefsPath string

	// UITick is how often the model re-reads the store. Zero means DefaultUIInterval.
	UITick time.Duration

	// Debouncer replaces the search debouncer built from Config.SearchDebounce.
	Debouncer *debounce.Debouncer
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   jobsapi.Fetcher
	store     *state.Store
	username  string
	logFile   string
	pageSizes []int
	prefsPath string
	uiTick    time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  pane
	boxes  layoutBoxes

	// Data state
	view jobview.View

	// Components
	table   table.Model
	detail  viewport.Model
	spinner spinner.Model
	pager   paginator.Model
	help    help.Model

	// Search state
	search      textinput.Model
	searching   bool
	searchStart string
	debouncer   *debounce.Debouncer
	queries     chan string

	// Overlays
	showHelp bool
	showLogs bool
	logView  viewport.Model

	// Footer notice
	flash      string
	flashUntil time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.New(0)
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	debouncer := opts.Debouncer
	if debouncer == nil {
		debouncer = debounce.New(cfg.SearchDebounce)
	}

	pageSizes := cfg.PageSizes
	if len(pageSizes) == 0 {
		pageSizes = jobview.DefaultPageSizes
	}

	m := Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		store:     store,
		username:  cfg.Username,
		logFile:   cfg.LogFile,
		pageSizes: pageSizes,
		prefsPath: prefsPath,
		uiTick:    uiTick,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		table:     newJobTable(),
		detail:    viewport.New(0, 0),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		pager:     newPager(),
		help:      help.New(),
		search:    newSearchInput(),
		debouncer: debouncer,
		queries:   make(chan string, 1),
		logView:   viewport.New(0, 0),
	}
	m.applyTheme()
	m.setView(store.View())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.uiTick),
		m.spinner.Tick,
		waitForQuery(m.queries),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.setView(m.view)
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case refreshDoneMsg:
		m.setView(m.store.View())
		return m, nil

	case queryMsg:
		m.handleQuery(string(msg))
		return m, waitForQuery(m.queries)

	case copiedMsg:
		if msg.err != nil {
			m.setFlash("Copy failed: " + msg.err.Error())
		} else {
			m.setFlash("Copied " + msg.id)
		}
		return m, nil

	case logLinesMsg:
		m.setLogLines(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.setView(m.view)
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.setFlash("Save theme failed: " + err.Error())
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, loadLogsCmd(m.logFile)

	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch()

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.store, m.fetcher, m.username)

	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneTable && m.view.Selected != nil {
			m.focus = paneDetail
		} else {
			m.focus = paneTable
		}
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if m.focus == paneDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Up) {
			m.table.MoveUp(1)
		} else {
			m.table.MoveDown(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.changePage(jobview.PagePrev)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.changePage(jobview.PageNext)
		return m, nil

	case key.Matches(msg, m.keys.FirstPage):
		m.changePage(jobview.PageFirst)
		return m, nil

	case key.Matches(msg, m.keys.LastPage):
		m.changePage(jobview.PageLast)
		return m, nil

	case key.Matches(msg, m.keys.PageSize):
		size := jobview.NextPageSize(m.pageSizes, m.view.PageSize)
		m.dispatch(jobview.PageSizeChanged{Size: size})
		m.table.SetCursor(0)
		m.setFlash(fmt.Sprintf("%d rows per page", m.view.PageSize))
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		cols := jobview.Columns()
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(cols) {
			m.dispatch(jobview.SortToggled{Column: cols[idx]})
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if row := m.cursorRow(); row != nil {
			m.dispatch(jobview.RowSelected{PayloadID: row.PayloadID})
			m.detail.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		id := m.copyTarget()
		if id == "" {
			return m, nil
		}
		return m, copyCmd(id)

	case key.Matches(msg, m.keys.Escape):
		m.handleEscape()
		return m, nil
	}

	return m, nil
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	t := m.theme
	styles := t.Styles()

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(t.Accent)).
		Bold(true)
	ts.Cell = ts.Cell.Foreground(lipgloss.Color(t.Text))
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(t.SelectionText)).
		Background(lipgloss.Color(t.SelectionBg)).
		Bold(false)
	m.table.SetStyles(ts)

	m.spinner.Style = styles.WarningText

	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText

	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText
}

// handleEscape unwinds one level: detail focus, selection, error, query.
func (m *Model) handleEscape() {
	switch {
	case m.focus == paneDetail:
		m.focus = paneTable
	case m.view.Selected != nil:
		m.dispatch(jobview.SelectionCleared{})
	case m.view.Phase == jobview.PhaseError:
		m.dispatch(jobview.ErrorDismissed{})
	case m.view.Query != "":
		m.debouncer.Cancel()
		m.search.SetValue("")
		m.applyQuery("")
	}
}

// handleTick re-reads the store and expires the footer notice.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.flash != "" && now.After(m.flashUntil) {
		m.flash = ""
	}
	m.setView(m.store.View())
	return m, tickCmd(m.uiTick)
}

// dispatch applies an action to the store and re-renders from the result.
func (m *Model) dispatch(action jobview.Action) {
	m.store.Dispatch(action)
	m.setView(m.store.View())
}

// changePage moves to another page and puts the cursor on its first row.
func (m *Model) changePage(target jobview.PageTarget) {
	m.dispatch(jobview.PageChanged{Target: target})
	m.table.SetCursor(0)
}

// setView installs a new projection and syncs every component with it.
func (m *Model) setView(v jobview.View) {
	prev := m.cursorID()
	m.view = v
	if v.Selected == nil && m.focus == paneDetail {
		m.focus = paneTable
	}
	m.layout()
	m.syncTable(prev)
	m.syncDetail()
	m.syncPager()
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashUntil = time.Now().Add(FlashDuration)
}

// cursorRow returns the job under the table cursor.
func (m Model) cursorRow() *jobview.JobRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Rows) {
		return nil
	}
	row := m.view.Rows[i]
	return &row
}

func (m Model) cursorID() string {
	if row := m.cursorRow(); row != nil {
		return row.PayloadID
	}
	return ""
}

// copyTarget prefers the selected job over the cursor row.
func (m Model) copyTarget() string {
	if m.view.Selected != nil {
		return m.view.Selected.PayloadID
	}
	return m.cursorID()
}

// Messages

type tickMsg time.Time

// refreshDoneMsg carries no view; Update reads the store so keys pressed
// while the fetch was in flight are not undone.
type refreshDoneMsg struct{}

type queryMsg string

type copiedMsg struct {
	id  string
	err error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd runs one store refresh and reports the resulting view.
func refreshCmd(ctx context.Context, store *state.Store, fetcher jobsapi.Fetcher, username string) tea.Cmd {
	if fetcher == nil {
		return nil
	}
	return func() tea.Msg {
		store.Refresh(ctx, fetcher, username)
		return refreshDoneMsg{}
	}
}

func copyCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{id: id, err: clipboard.WriteAll(id)}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogOverlayLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if m.debouncer != nil {
		m.debouncer.Cancel()
	}
	// A cancelled context is a normal shutdown.
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
