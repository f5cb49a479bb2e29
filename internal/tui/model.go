package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/server"
)

// Actions sends table commands to the server
type Actions interface {
	Join(room, playerID, name string) error
	StartRound(room string) error
	Bet(room, playerID string, amount int) error
	Hit(room, playerID string) error
	Stand(room, playerID string) error
}

// Seat identifies who the terminal is playing as
type Seat struct {
	Room     string
	PlayerID string
	Name     string
}

type outboundMsg server.Outbound

type disconnectedMsg struct{}

type actionErrMsg struct{ err error }

// Model is the Bubble Tea model for one seat at a blackjack room
type Model struct {
	actions  Actions
	messages <-chan server.Outbound
	logger   *log.Logger
	seat     Seat

	// Latest room_update for the current room
	room *game.RoomView

	betting       bool
	settling      bool
	creditsBefore int

	logViewport viewport.Model
	input       textinput.Model
	gameLog     []string

	width    int
	height   int
	quitting bool
}

// NewModel creates a model that plays seat through actions and renders
// frames read from messages.
func NewModel(actions Actions, messages <-chan server.Outbound, seat Seat, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &Model{
		actions:     actions,
		messages:    messages,
		logger:      logger.WithPrefix("tui"),
		seat:        seat,
		logViewport: vp,
		input:       ti,
	}
	m.updatePlaceholder()
	return m
}

// Init joins the configured room and starts listening for frames
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.join(), m.waitForMessage())
}

func (m *Model) waitForMessage() tea.Cmd {
	messages := m.messages
	return func() tea.Msg {
		msg, ok := <-messages
		if !ok {
			return disconnectedMsg{}
		}
		return outboundMsg(msg)
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case outboundMsg:
		m.apply(server.Outbound(msg))
		cmds = append(cmds, m.waitForMessage())

	case disconnectedMsg:
		m.addLog(ErrorStyle.Render("Disconnected from server"))
		m.quitting = true
		return m, tea.Quit

	case actionErrMsg:
		m.logger.Warn("Failed to send command", "error", msg.err)
		m.addLog(ErrorStyle.Render(msg.err.Error()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			if cmd := m.submit(line); cmd != nil {
				cmds = append(cmds, cmd)
			}
			if m.quitting {
				return m, tea.Batch(cmds...)
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// apply folds one server frame into the model
func (m *Model) apply(msg server.Outbound) {
	if msg.RoomName != m.seat.Room {
		m.logger.Debug("Ignoring frame for another room", "room", msg.RoomName)
		return
	}

	switch msg.Type {
	case server.MessageTypeRoundStart:
		m.betting = true
		m.addLog(SuccessStyle.Render("Round started.") + " Place a bet with bet N or +N/-N, then hit or stand.")

	case server.MessageTypeRoundEnd:
		m.betting = false
		m.settling = true
		if p, ok := m.self(); ok {
			m.creditsBefore = p.Credits
		}

	case server.MessageTypeRoomUpdate:
		if msg.Room == nil {
			return
		}
		m.room = msg.Room
		m.betting = msg.Room.RoundActive
		if m.settling {
			m.settling = false
			m.addLog(describeResult(m.room, m.seat.PlayerID, m.creditsBefore))
		}
	}
	m.updatePlaceholder()
}

func (m *Model) self() (game.PlayerView, bool) {
	if m.room == nil {
		return game.PlayerView{}, false
	}
	p, ok := m.room.Players[m.seat.PlayerID]
	return p, ok
}

// submit runs one line of user input. The returned command performs the
// network send.
func (m *Model) submit(line string) tea.Cmd {
	cmd, err := ParseCommand(line)
	if err != nil {
		m.addLog(ErrorStyle.Render(err.Error()) + InfoStyle.Render("  ("+helpText+")"))
		return nil
	}

	room, pid := m.seat.Room, m.seat.PlayerID

	switch cmd.Kind {
	case CommandNone:
		return nil

	case CommandHelp:
		m.addLog(InfoStyle.Render(helpText))
		return nil

	case CommandQuit:
		m.quitting = true
		return tea.Quit

	case CommandStart:
		return m.send(func() error { return m.actions.StartRound(room) })

	case CommandBet, CommandAdjust:
		p, ok := m.self()
		if !m.betting || !ok {
			m.addLog(WarningStyle.Render("No round in progress, type start to deal"))
			return nil
		}
		amount := AdjustBet(0, cmd.Amount, p.Credits)
		if cmd.Kind == CommandAdjust {
			amount = AdjustBet(p.Bet, cmd.Amount, p.Credits)
		}
		return m.send(func() error { return m.actions.Bet(room, pid, amount) })

	case CommandHit:
		return m.send(func() error { return m.actions.Hit(room, pid) })

	case CommandStand:
		return m.send(func() error { return m.actions.Stand(room, pid) })

	case CommandJoin:
		m.seat.Room = cmd.Room
		m.room = nil
		m.betting = false
		m.settling = false
		m.addLog(fmt.Sprintf("Joining %s", cmd.Room))
		m.updatePlaceholder()
		return m.join()
	}

	return nil
}

func (m *Model) join() tea.Cmd {
	seat := m.seat
	return m.send(func() error { return m.actions.Join(seat.Room, seat.PlayerID, seat.Name) })
}

func (m *Model) send(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

func (m *Model) updatePlaceholder() {
	if m.betting {
		m.input.Placeholder = "bet N, +N/-N, hit, stand"
	} else {
		m.input.Placeholder = "start to deal, join <room>, quit"
	}
}

// addLog appends an entry to the game log and scrolls to it
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	roomPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1)).
		Render(RenderRoom(m.room, m.seat.PlayerID))

	help := InfoStyle.Render(helpText + " • PgUp/PgDn scroll • Ctrl+C to quit")
	inputPane := lipgloss.JoinVertical(lipgloss.Left, m.input.View(), help)

	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.height-lipgloss.Height(roomPane)-lipgloss.Height(inputPane)-2, 1)

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(m.logViewport.Width).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, roomPane, logPane, inputPane)
}
