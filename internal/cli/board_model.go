package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/service"
)

const (
	boardColWidth     = 24
	defaultBoardWidth = 120
)

type boardKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Pick    key.Binding
	Backlog key.Binding
	Cancel  key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Pick:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick up / drop")),
		Backlog: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "to backlog")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "put back")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pick, k.Backlog, k.Cancel, k.Reload, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Up, k.Down}, {k.Pick, k.Backlog, k.Cancel}, {k.Reload, k.Quit}}
}

// boardLoadedMsg carries a freshly computed schedule.
type boardLoadedMsg struct {
	resp *app.ScheduleResponse
	err  error
}

// dropDoneMsg reports the outcome of a drop.
type dropDoneMsg struct {
	taskID int64
	target *time.Time
	resp   *app.RescheduleResponse
	err    error
}

// carriedCard is the card picked up and waiting to be dropped.
type carriedCard struct {
	taskID int64
	title  string
	from   int
}

// boardModel is the interactive drag-and-drop board for one assignee. The
// last column is the backlog.
type boardModel struct {
	workload service.WorkloadService
	gestures *service.Gestures
	req      app.ScheduleRequest

	name   string
	board  board.Board
	today  time.Time
	loaded bool

	col, row int
	carrying *carriedCard
	busy     bool

	spinner spinner.Model
	help    help.Model
	keys    boardKeyMap

	status string
	err    error
	width  int
}

func newBoardModel(workload service.WorkloadService, gestures *service.Gestures, req app.ScheduleRequest) *boardModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))
	return &boardModel{
		workload: workload,
		gestures: gestures,
		req:      req,
		spinner:  sp,
		help:     help.New(),
		keys:     newBoardKeyMap(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	workload, req := m.workload, m.req
	return func() tea.Msg {
		resp, err := workload.Compute(context.Background(), req)
		return boardLoadedMsg{resp: resp, err: err}
	}
}

func (m *boardModel) dropCmd(taskID int64, target *time.Time) tea.Cmd {
	g := m.gestures
	return func() tea.Msg {
		resp, err := drop(context.Background(), g, taskID, target)
		return dropDoneMsg{taskID: taskID, target: target, resp: resp, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.apply(msg.resp, 0)
		return m, nil

	case dropDoneMsg:
		return m, m.finishDrop(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveCol(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCol(1)
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Cancel):
		if m.carrying != nil {
			m.col = m.carrying.from
			m.carrying = nil
			m.status = ""
			m.clampRow()
		}
	case key.Matches(msg, m.keys.Reload):
		if m.busy {
			return nil
		}
		return m.load()
	case key.Matches(msg, m.keys.Pick):
		if m.busy {
			m.status = "A move is still being saved."
			return nil
		}
		if m.carrying == nil {
			m.pick()
			return nil
		}
		return m.dropCarried()
	case key.Matches(msg, m.keys.Backlog):
		if m.busy {
			m.status = "A move is still being saved."
			return nil
		}
		taskID, title, ok := m.selected()
		if !ok {
			return nil
		}
		m.carrying = nil
		return m.startDrop(taskID, title, nil)
	}
	return nil
}

func (m *boardModel) pick() {
	taskID, title, ok := m.selected()
	if !ok {
		return
	}
	m.carrying = &carriedCard{taskID: taskID, title: title, from: m.col}
	m.status = fmt.Sprintf("Carrying #%d %s. Move to a day and press enter.", taskID, title)
}

func (m *boardModel) dropCarried() tea.Cmd {
	c := m.carrying
	m.carrying = nil
	if m.col == m.backlogCol() {
		return m.startDrop(c.taskID, c.title, nil)
	}
	day, err := domain.ParseDate(m.board.Columns[m.col].Date)
	if err != nil {
		m.err = err
		return nil
	}
	return m.startDrop(c.taskID, c.title, &day)
}

func (m *boardModel) startDrop(taskID int64, title string, target *time.Time) tea.Cmd {
	m.busy = true
	m.err = nil
	where := "backlog"
	if target != nil {
		where = domain.FormatDate(*target)
	}
	m.status = fmt.Sprintf("Moving #%d %s to %s", taskID, title, where)
	return tea.Batch(m.spinner.Tick, m.dropCmd(taskID, target))
}

func (m *boardModel) finishDrop(msg dropDoneMsg) tea.Cmd {
	m.busy = false
	where := "backlog"
	if msg.target != nil {
		where = domain.FormatDate(*msg.target)
	}

	switch {
	case msg.err == nil:
		m.err = nil
		m.status = fmt.Sprintf("Moved #%d to %s.", msg.taskID, where)
		if msg.resp != nil && msg.resp.Schedule != nil {
			m.apply(msg.resp.Schedule, msg.taskID)
		}
		return nil
	case errors.Is(msg.err, service.ErrRescheduleInFlight):
		m.status = "Another move for this board is in flight; try again."
		return nil
	case errors.Is(msg.err, service.ErrPersistence):
		m.status = ""
		m.err = fmt.Errorf("move of #%d was not saved: %w", msg.taskID, msg.err)
		if msg.resp != nil && msg.resp.Schedule != nil {
			m.apply(msg.resp.Schedule, 0)
			return nil
		}
		return m.load()
	default:
		m.status = ""
		m.err = msg.err
		return nil
	}
}

// apply swaps in a new schedule and puts the cursor on focusTask when it is
// on the board.
func (m *boardModel) apply(resp *app.ScheduleResponse, focusTask int64) {
	m.loaded = true
	m.name = resp.Assignee.Name
	m.today = domain.DateOf(resp.GeneratedAt)
	m.board = board.Build(resp.Schedule, m.today)

	if focusTask != 0 {
		for col := 0; col <= m.backlogCol(); col++ {
			for row, id := range m.columnTaskIDs(col) {
				if id == focusTask {
					m.col, m.row = col, row
					return
				}
			}
		}
	}
	if m.col > m.backlogCol() {
		m.col = m.backlogCol()
	}
	m.clampRow()
}

func (m *boardModel) backlogCol() int {
	return len(m.board.Columns)
}

func (m *boardModel) columnTaskIDs(col int) []int64 {
	if col == m.backlogCol() {
		ids := make([]int64, len(m.board.Backlog))
		for i, c := range m.board.Backlog {
			ids[i] = c.TaskID
		}
		return ids
	}
	if col < 0 || col >= len(m.board.Columns) {
		return nil
	}
	cards := m.board.Columns[col].Cards
	ids := make([]int64, len(cards))
	for i, c := range cards {
		ids[i] = c.TaskID
	}
	return ids
}

// selected returns the card under the cursor.
func (m *boardModel) selected() (int64, string, bool) {
	if m.col == m.backlogCol() {
		if m.row < 0 || m.row >= len(m.board.Backlog) {
			return 0, "", false
		}
		c := m.board.Backlog[m.row]
		return c.TaskID, c.Title, true
	}
	if m.col < 0 || m.col >= len(m.board.Columns) {
		return 0, "", false
	}
	cards := m.board.Columns[m.col].Cards
	if m.row < 0 || m.row >= len(cards) {
		return 0, "", false
	}
	return cards[m.row].TaskID, cards[m.row].Title, true
}

func (m *boardModel) moveCol(delta int) {
	m.col += delta
	if m.col < 0 {
		m.col = 0
	}
	if m.col > m.backlogCol() {
		m.col = m.backlogCol()
	}
	m.clampRow()
}

func (m *boardModel) moveRow(delta int) {
	m.row += delta
	m.clampRow()
}

func (m *boardModel) clampRow() {
	n := len(m.columnTaskIDs(m.col))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// ── View ─────────────────────────────────────────────────────────────────────

var (
	boardColStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Width(boardColWidth).
			Padding(0, 1)
	boardColActive  = boardColStyle.BorderForeground(formatter.ColorHeader)
	boardColTarget  = boardColStyle.BorderForeground(formatter.ColorGreen)
	boardCursorCard = lipgloss.NewStyle().Reverse(true)
)

func (m *boardModel) View() string {
	if m.err != nil && !m.loaded {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}
	if !m.loaded {
		return formatter.Dim("Loading board...") + "\n"
	}

	var b strings.Builder
	name := m.name
	if name == "" {
		name = m.board.AssigneeKey
	}
	b.WriteString(formatter.Header("Workload · " + name))
	b.WriteString("\n\n")

	first, last := m.visibleRange()
	cols := make([]string, 0, last-first+1)
	for col := first; col <= last; col++ {
		cols = append(cols, m.renderColumn(col))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	if first > 0 || last < m.backlogCol() {
		b.WriteString(formatter.Dim(fmt.Sprintf("columns %d-%d of %d", first+1, last+1, m.backlogCol()+1)))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " " + formatter.Dim(m.status))
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(formatter.StyleYellow.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// visibleRange picks the columns that fit the terminal, keeping the cursor
// column on screen.
func (m *boardModel) visibleRange() (int, int) {
	width := m.width
	if width <= 0 {
		width = defaultBoardWidth
	}
	fit := width / (boardColWidth + 4)
	if fit < 1 {
		fit = 1
	}
	total := m.backlogCol() + 1
	if fit >= total {
		return 0, total - 1
	}
	first := m.col - fit/2
	if first < 0 {
		first = 0
	}
	if first+fit > total {
		first = total - fit
	}
	return first, first + fit - 1
}

func (m *boardModel) renderColumn(col int) string {
	style := boardColStyle
	switch {
	case m.carrying != nil && col == m.col:
		style = boardColTarget
	case col == m.col:
		style = boardColActive
	}

	var lines []string
	inner := boardColWidth - 2
	if col == m.backlogCol() {
		lines = append(lines, formatter.StyleHeader.Render(fmt.Sprintf("Backlog (%d)", len(m.board.Backlog))), "")
		for i, c := range m.board.Backlog {
			label := fmt.Sprintf("#%d %s", c.TaskID, c.Title)
			if c.MissingEstimate {
				label += " ?h"
			} else {
				label += " " + formatter.FormatHours(c.EstimatedHours)
			}
			lines = append(lines, m.cardLine(col, i, c.TaskID, formatter.Truncate(label, inner)))
		}
		return style.Render(strings.Join(lines, "\n"))
	}

	c := m.board.Columns[col]
	head := c.Label
	if c.IsToday {
		head += " •"
	}
	headStyle := formatter.StyleBold
	if c.IsWeekend {
		headStyle = formatter.StyleDim
	}
	lines = append(lines,
		headStyle.Render(head),
		formatter.LoadColor(c.UsedHours, c.CapacityHours, c.IsOverCapacity).
			Render(formatter.FormatHours(c.UsedHours)+"/"+formatter.FormatHours(c.CapacityHours)))
	for i, card := range c.Cards {
		label := fmt.Sprintf("#%d %s %s", card.TaskID, card.Title, formatter.FormatHours(card.Hours))
		if card.PartLabel != "" {
			label += " " + card.PartLabel
		}
		lines = append(lines, m.cardLine(col, i, card.TaskID, formatter.Truncate(label, inner)))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *boardModel) cardLine(col, row int, taskID int64, label string) string {
	switch {
	case m.carrying != nil && m.carrying.taskID == taskID:
		return formatter.Dim(label)
	case m.carrying == nil && col == m.col && row == m.row:
		return boardCursorCard.Render(label)
	}
	return label
}
