// Package teatest drives bubbletea models synchronously in tests.
//
// The driver stands in for tea.Program: it calls Update directly and runs
// every returned Cmd to completion before the next key is sent, so a test can
// press keys and then assert on the model and the store behind it.
//
// Cmds that do not return within the driver's timeout are dropped. Spinner
// frames and cursor blinks are dropped as soon as they arrive, otherwise the
// driver would follow their timer chains forever.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one message may chain.
const MaxDrainDepth = 100

// DefaultCmdTimeout suits Cmds that only compute. Timer Cmds take 80ms or
// more and are skipped under it.
const DefaultCmdTimeout = 50 * time.Millisecond

type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd returns tea.QuitMsg. Later sends are
	// ignored, as they would be by a stopped program.
	Quitting bool

	cmdTimeout time.Duration
}

type Option func(*Driver)

// New wraps model. Call DrainInit to run its Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout changes the per-Cmd timeout. Models whose Cmds read or
// write a real store need more than the default.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send runs msg through Update and drains whatever it returns.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) press(k tea.KeyMsg) {
	d.T.Helper()
	d.Send(k)
}

func (d *Driver) PressKey(r rune) { d.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}) }
func (d *Driver) PressEnter()     { d.press(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()       { d.press(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressSpace()     { d.press(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}) }
func (d *Driver) PressLeft()      { d.press(tea.KeyMsg{Type: tea.KeyLeft}) }
func (d *Driver) PressRight()     { d.press(tea.KeyMsg{Type: tea.KeyRight}) }
func (d *Driver) PressUp()        { d.press(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()      { d.press(tea.KeyMsg{Type: tea.KeyDown}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd, d.cmdTimeout)
	if !ok || msg == nil || isTimerFrame(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after timeout.
func run(cmd tea.Cmd, timeout time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}

// isTimerFrame matches spinner ticks and the unexported cursor blink
// messages of bubbles/cursor.
func isTimerFrame(msg tea.Msg) bool {
	if _, ok := msg.(spinner.TickMsg); ok {
		return true
	}
	name := fmt.Sprintf("%T", msg)
	return strings.Contains(name, "Blink") || strings.Contains(name, "blink")
}
