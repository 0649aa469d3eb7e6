// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the driver calls Update directly and
// runs whatever Cmd comes back until the model settles. Cmds that block
// (viewport or cursor timers) are dropped after a short wait.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxSteps bounds how many follow-up messages one Send may produce.
const maxSteps = 64

const cmdWait = 10 * time.Millisecond

// Driver feeds messages to a model and keeps the latest copy of it.
type Driver[M tea.Model] struct {
	t     *testing.T
	model M

	// Quit is set once a Cmd produced tea.QuitMsg.
	Quit bool
}

// New wraps model. If width and height are positive a WindowSizeMsg is
// delivered before the model's Init command runs.
func New[M tea.Model](t *testing.T, model M, width, height int) *Driver[M] {
	t.Helper()
	d := &Driver[M]{t: t, model: model}
	if width > 0 && height > 0 {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
	d.run(d.model.Init())
	return d
}

// Model returns the current model.
func (d *Driver[M]) Model() M { return d.model }

// View renders the current model.
func (d *Driver[M]) View() string { return d.model.View() }

// Send delivers msg and runs the resulting Cmds. Nothing is delivered
// after the model quit.
func (d *Driver[M]) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	d.run(d.update(msg))
}

// Key sends a key by its bubbletea name ("enter", "left", "ctrl+c") or,
// for single runes, the rune itself.
func (d *Driver[M]) Key(name string) {
	d.t.Helper()
	d.Send(keyMsg(name))
}

// Keys sends each name in order.
func (d *Driver[M]) Keys(names ...string) {
	d.t.Helper()
	for _, n := range names {
		d.Key(n)
	}
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver[M]) update(msg tea.Msg) tea.Cmd {
	next, cmd := d.model.Update(msg)
	m, ok := next.(M)
	if !ok {
		d.t.Fatalf("teatest: Update returned %T, want %T", next, d.model)
	}
	d.model = m
	return cmd
}

// run executes cmd and every Cmd it leads to, breadth first.
func (d *Driver[M]) run(cmd tea.Cmd) {
	d.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= maxSteps {
			d.t.Logf("teatest: stopped after %d steps", maxSteps)
			return
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := await(c).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quit = true
			return
		default:
			queue = append(queue, d.update(msg))
		}
	}
}

// await runs c, giving up after cmdWait.
func await(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}
