package teatest

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type doneMsg struct{}

// counterModel counts keys, spins while busy and quits on q.
type counterModel struct {
	keys    int
	done    bool
	spinner spinner.Model
}

func (m counterModel) Init() tea.Cmd { return nil }

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.keys++
		if msg.Type == tea.KeyEnter {
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg { return doneMsg{} })
		}
	case doneMsg:
		m.done = true
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m counterModel) View() string { return "" }

func TestDriver_DrainsBatchAndSkipsSpinnerLoop(t *testing.T) {
	d := New(t, counterModel{spinner: spinner.New()}, WithCmdTimeout(time.Second))
	start := time.Now()

	d.PressEnter()

	m := d.Model.(counterModel)
	assert.True(t, m.done)
	assert.Equal(t, 1, m.keys)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDriver_DetectsQuit(t *testing.T) {
	d := New(t, counterModel{spinner: spinner.New()})
	d.Type("ab")
	d.PressKey('q')
	d.PressKey('c')

	assert.True(t, d.Quitting)
	assert.Equal(t, 2, d.Model.(counterModel).keys)
}

func TestDriver_CmdTimeoutDropsSlowCmds(t *testing.T) {
	slow := func() tea.Msg {
		time.Sleep(200 * time.Millisecond)
		return doneMsg{}
	}
	d := New(t, counterModel{spinner: spinner.New()})

	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	d.drain(slow, 0)

	assert.False(t, d.Model.(counterModel).done, "slow Cmd is skipped under the default timeout")
}

func TestDriver_WithSize(t *testing.T) {
	d := New(t, &sizeModel{}, WithSize(90, 30))
	assert.Equal(t, 90, d.Model.(*sizeModel).width)
}

type sizeModel struct{ width int }

func (m *sizeModel) Init() tea.Cmd { return nil }
func (m *sizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}
func (m *sizeModel) View() string { return "" }
