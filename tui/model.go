package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"score-follower/debug"
	"score-follower/follower"
	"score-follower/midi"
	"score-follower/player"
	"score-follower/theme"
	"score-follower/widgets"
)

// progressWidth is the longest repeat count drawn as a bar
const progressWidth = 16

type Model struct {
	Manager   *player.Manager
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme

	help     help.Model
	prompt   textinput.Model
	entering bool
	showHelp bool
	quitting bool
	status   string
	input    string // connected input port (may be empty)
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(manager *player.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Manager:   manager,
		DeviceMgr: deviceMgr,
		Theme:     th,
		help:      help.New(),
		prompt:    newPrompt(),
	}
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "60 3 trigger 144 72 100 next"
	ti.Prompt = ": "
	ti.CharLimit = 256
	ti.Width = 48
	return ti
}

func ListenForUpdates(manager *player.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Manager),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.input = event.ID
			m.Manager.Attach(event.Controller)
			m.Manager.Notice("input connected: %s", event.ID)
		case midi.DeviceDisconnected:
			if m.input == event.ID {
				m.input = ""
			}
			m.Manager.Notice("input disconnected: %s", event.ID)
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextCue):
		m.setStatus(m.Manager.NextCue())

	case key.Matches(msg, keys.PrevCue):
		m.setStatus(m.Manager.PrevCue())

	case key.Matches(msg, keys.Restart):
		m.setStatus(m.Manager.Start())

	case key.Matches(msg, keys.ResetCounters):
		m.Manager.ResetCounters()

	case key.Matches(msg, keys.ResetAll):
		m.Manager.ResetAll()

	case key.Matches(msg, keys.Dump):
		if !debug.Enabled() {
			m.status = "debug log is off (run with -debug)"
			break
		}
		m.setStatus(m.Manager.Dump(debug.Writer("dump")))
		if m.status == "" {
			m.status = "dumped to " + debug.DefaultPath()
		}

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, keys.Define):
		m.entering = true
		m.prompt.Reset()
		return m, m.prompt.Focus()
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.entering = false
		m.prompt.Blur()
		return m, nil

	case key.Matches(msg, keys.Submit):
		line := m.prompt.Value()
		m.entering = false
		m.prompt.Blur()
		m.prompt.Reset()
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		t, err := m.Manager.DefineTrigger(line)
		if err != nil {
			m.setStatus(err)
			return m, nil
		}
		m.status = fmt.Sprintf("armed trigger @%d", t.ID)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(err error) {
	if err != nil {
		m.status = "error: " + err.Error()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Manager.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(m.header(snap)))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(m.inputLine(snap)))
	out.WriteString("\n\n")

	out.WriteString(m.triggerList(snap.State, fgStyle, dimStyle))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderNoteGrid(m.noteCells(snap.State), dimStyle))
	out.WriteString("\n\n")
	out.WriteString(m.activity(snap.Recent, dimStyle))

	if m.entering {
		out.WriteString("\n\n")
		out.WriteString(m.prompt.View())
	}
	if m.status != "" {
		out.WriteString("\n\n")
		out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(m.status))
	}

	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keys.sections())))
	} else {
		out.WriteString(m.help.View(keys))
	}
	return out.String()
}

func (m Model) header(s player.Snapshot) string {
	title := s.Title
	if title == "" {
		title = "score-follower"
	}
	switch {
	case s.Cues == 0:
		return fmt.Sprintf("%s  no score", title)
	case s.Ended():
		return fmt.Sprintf("%s  end of score", title)
	default:
		return fmt.Sprintf("%s  cue %d/%d: %s", title, s.Cue+1, s.Cues, s.CueName)
	}
}

func (m Model) inputLine(s player.Snapshot) string {
	input := m.input
	if input == "" {
		input = "waiting for input"
	}
	return fmt.Sprintf("in: %s  min velocity: %d", input, s.MinVelocity)
}

func (m Model) triggerList(st follower.State, fg, dim lipgloss.Style) string {
	if len(st.Triggers) == 0 {
		return dim.Render("no armed triggers")
	}
	on := widgets.Cell{Color: m.Theme.RGB(theme.RoleSuccess), Symbol: m.Theme.Symbols.RepeatDone}
	off := widgets.Cell{Color: m.Theme.RGB(theme.RoleMuted), Symbol: m.Theme.Symbols.RepeatTodo}

	var lines []string
	for _, tv := range st.Triggers {
		bar := widgets.RenderProgress(tv.Hits, tv.Repeats, progressWidth, on, off)
		line := fmt.Sprintf("%s  %s", bar, fg.Render(tv.Describe()))
		if tv.Advance {
			line += " " + lipgloss.NewStyle().Foreground(m.Theme.Active()).Render(string(m.Theme.Symbols.Advance))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) noteCells(st follower.State) [follower.NumNotes]widgets.Cell {
	watched := make(map[int]bool, len(st.Triggers))
	for _, tv := range st.Triggers {
		watched[tv.Note] = true
	}
	busiest := 0
	for _, c := range st.Counts {
		busiest = max(busiest, c)
	}

	var cells [follower.NumNotes]widgets.Cell
	for n, hits := range st.Counts {
		switch {
		case hits > 0:
			cells[n] = widgets.Cell{Color: m.Theme.Heat(hits, busiest), Symbol: m.Theme.Symbols.NoteHit}
		case watched[n]:
			cells[n] = widgets.Cell{Color: m.Theme.RGB(theme.RoleAccent), Symbol: m.Theme.Symbols.NoteWatched}
		default:
			cells[n] = widgets.Cell{Color: m.Theme.RGB(theme.RoleMuted), Symbol: m.Theme.Symbols.NoteIdle}
		}
	}
	return cells
}

func (m Model) activity(entries []player.Entry, dim lipgloss.Style) string {
	if len(entries) == 0 {
		return dim.Render("no activity yet")
	}
	var lines []string
	for _, e := range entries {
		color := m.Theme.FG()
		switch e.Kind {
		case player.EntryAction:
			color = m.Theme.Success()
		case player.EntryCue:
			color = m.Theme.Accent()
		case player.EntryError:
			color = m.Theme.Warning()
		}
		text := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-6s %s", e.Kind, e.Text))
		lines = append(lines, dim.Render(e.Time.Format("15:04:05"))+" "+text)
	}
	return strings.Join(lines, "\n")
}
