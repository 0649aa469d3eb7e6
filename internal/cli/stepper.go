package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/service"
)

type stepperKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	First  key.Binding
	Last   key.Binding
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func newStepperKeyMap() stepperKeyMap {
	return stepperKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next")),
		First:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "make active")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k stepperKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Down, k.Choose, k.Quit}
}

func (k stepperKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.First, k.Last}, {k.Up, k.Down, k.Choose, k.Quit}}
}

// stepperModel walks the Planning P one phase at a time, showing the
// sections of the phase under the cursor. Any phase can be reached from any
// other; the cycle order is only the order of the steps.
type stepperModel struct {
	ctx    context.Context
	ws     *service.Workspace
	title  string
	now    func() time.Time
	phases []phase.Info
	cursor int

	keys stepperKeyMap
	help help.Model
	body viewport.Model

	width, height int
	chosen        bool
	quitting      bool
}

func newStepperModel(ctx context.Context, ws *service.Workspace, title string, now func() time.Time) stepperModel {
	m := stepperModel{
		ctx:    ctx,
		ws:     ws,
		title:  title,
		now:    now,
		phases: phase.Ordered(),
		keys:   newStepperKeyMap(),
		help:   help.New(),
		body:   viewport.New(80, 20),
	}
	for i, p := range m.phases {
		if p.ID == ws.ActivePhase() {
			m.cursor = i
		}
	}
	m.refresh()
	return m
}

// Phase is the phase under the cursor.
func (m stepperModel) Phase() domain.PhaseID {
	return m.phases[m.cursor].ID
}

// Chosen reports whether the user confirmed the phase with enter.
func (m stepperModel) Chosen() bool { return m.chosen }

func (m stepperModel) Init() tea.Cmd { return nil }

func (m stepperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-lipgloss.Height(m.headerView())-2, 3)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			m.chosen = true
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.moveTo(m.cursor - 1)
		case key.Matches(msg, m.keys.Next):
			m.moveTo(m.cursor + 1)
		case key.Matches(msg, m.keys.First):
			m.moveTo(0)
		case key.Matches(msg, m.keys.Last):
			m.moveTo(len(m.phases) - 1)
		default:
			if n := digit(msg); n > 0 && n <= len(m.phases) {
				m.moveTo(n - 1)
				return m, nil
			}
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func digit(msg tea.KeyMsg) int {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0
	}
	return int(r - '0')
}

// moveTo clamps i to the cycle, selects that phase in the workspace and
// redraws the body.
func (m *stepperModel) moveTo(i int) {
	i = max(min(i, len(m.phases)-1), 0)
	if i == m.cursor {
		return
	}
	m.cursor = i
	m.ws.SelectPhase(m.ctx, m.phases[i].ID)
	m.refresh()
}

func (m *stepperModel) refresh() {
	m.body.SetContent(renderPhase(m.ws, m.Phase(), m.now()))
	m.body.GotoTop()
}

func (m stepperModel) headerView() string {
	var steps []string
	for i := range m.phases {
		label := fmt.Sprintf("%d", i+1)
		if i == m.cursor {
			steps = append(steps, formatter.StyleYellowBold.Render("["+label+"]"))
		} else {
			steps = append(steps, formatter.Dim(label))
		}
	}
	info := m.phases[m.cursor]
	return fmt.Sprintf("%s  %s\n%s\n%s",
		formatter.StyleHeader.Render(strings.ToUpper(m.title)),
		strings.Join(steps, formatter.Dim(" → ")),
		formatter.Bold(info.Title),
		formatter.Dim(string(info.ID)),
	)
}

func (m stepperModel) View() string {
	if m.quitting {
		return ""
	}
	return m.headerView() + "\n\n" + m.body.View() + "\n" + m.help.View(m.keys)
}
