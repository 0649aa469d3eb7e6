package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}

// counter counts keys, answers "p" with a pingMsg and quits on "q".
type counter struct {
	keys, pings, width int
}

func (c counter) Init() tea.Cmd { return nil }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case pingMsg:
		c.pings++
	case tea.KeyMsg:
		c.keys++
		switch msg.String() {
		case "p":
			return c, tea.Batch(func() tea.Msg { return pingMsg{} }, nil)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_SizeAndKeys(t *testing.T) {
	d := New(t, counter{}, 80, 24)
	assert.Equal(t, 80, d.Model().width)

	d.Keys("left", "x", "p")
	assert.Equal(t, 3, d.Model().keys)
	assert.Equal(t, 1, d.Model().pings)
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	d := New(t, counter{}, 0, 0)
	d.Keys("q", "x")
	assert.True(t, d.Quit)
	assert.Equal(t, 1, d.Model().keys)
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, "enter", keyMsg("enter").String())
	assert.Equal(t, "shift+tab", keyMsg("shift+tab").String())
	assert.Equal(t, "G", keyMsg("G").String())
}
