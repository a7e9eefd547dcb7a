// Package tui is the interactive terminal front-end for a game session.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/session"
)

const helpText = "r/p/s to play • pause • resume • reset • status • quit"

// Model is the Bubble Tea model for a game session
type Model struct {
	session *session.Session
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	width       int
	height      int
	initialized bool

	testMode    bool
	capturedLog []string
}

// NewModel creates a TUI model driving the given session
func NewModel(s *session.Session, logger *log.Logger) *Model {
	return NewModelWithOptions(s, logger, false)
}

// NewModelWithOptions creates a TUI model; test mode captures log entries
// instead of rendering them.
func NewModelWithOptions(s *session.Session, logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "rock, paper or scissors (r/p/s)"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     s,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
		testMode:    testMode,
	}
	m.AddLogEntry("Choose your move! " + helpText)
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				cmd := m.processAction(m.input.Value())
				m.input.SetValue("")
				if cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderSidebarPane() string {
	status := m.session.Status()
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" ROCK PAPER SCISSORS "))
	content.WriteString("\n\n")
	content.WriteString(scoreStyle(status.Score.Player, status.Score.Bot).Render(
		fmt.Sprintf("You %d : %d Bot", status.Score.Player, status.Score.Bot)))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Ties: %d\n", status.Score.Ties))
	content.WriteString(fmt.Sprintf("Rounds: %d\n\n", len(status.History)))

	if status.Paused {
		content.WriteString(WarningStyle.Render("PAUSED"))
	} else {
		content.WriteString(InfoStyle.Render("Playing"))
	}
	content.WriteString("\n")

	if last := status.Last; last != nil {
		content.WriteString("\n")
		content.WriteString(resultText(last.Result))
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Bot read: %s", last.Source)))
	}

	return content.String()
}

func (m *Model) renderActionPane() string {
	var content strings.Builder
	content.WriteString(m.input.View())
	content.WriteString("\n")
	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render(helpText + " • Tab to scroll log • Ctrl+C to quit"))
	}
	return content.String()
}

// processAction handles one line of user input. It returns tea.Quit when
// the user asks to leave.
func (m *Model) processAction(input string) tea.Cmd {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return nil
	}

	switch action := parts[0]; action {
	case "quit", "exit", "q":
		m.quitting = true
		return tea.Quit
	case "pause":
		m.session.Pause()
		m.AddLogEntry(WarningStyle.Render("Game paused"))
	case "resume":
		m.session.Resume()
		m.AddLogEntry(InfoStyle.Render("Game resumed"))
	case "reset":
		m.session.Reset()
		m.ClearLog()
		m.AddLogEntry("Game reset. Choose your move!")
	case "status":
		m.AddLogEntry(m.formatStatus(m.session.Status()))
	case "help", "?":
		m.AddLogEntry(InfoStyle.Render(helpText))
	default:
		m.play(action)
	}
	return nil
}

func (m *Model) play(symbol string) {
	choice, err := move.Parse(symbol)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Invalid choice %q. %s", symbol, helpText)))
		return
	}

	round, err := m.session.Play(choice)
	switch {
	case errors.Is(err, session.ErrPaused):
		m.AddLogEntry(WarningStyle.Render("Game is paused. Type 'resume' to continue"))
		return
	case err != nil:
		m.logger.Error("Failed to play round", "error", err)
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return
	}

	m.AddLogEntry(fmt.Sprintf("%s you %s %s vs bot %s %s  %s",
		RoundStyle.Render(fmt.Sprintf("Round %d:", round.Number)),
		round.PlayerMove.Emoji(), round.PlayerMove,
		round.BotMove.Emoji(), round.BotMove,
		resultText(round.Result)))
}

func (m *Model) formatStatus(status session.Status) string {
	return fmt.Sprintf("Score: you %d, bot %d, ties %d | rounds %d | paused %t | history %s",
		status.Score.Player, status.Score.Bot, status.Score.Ties,
		len(status.History), status.Paused, move.FormatHistory(status.History))
}

// AddLogEntry appends an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *Model) ClearLog() {
	m.gameLog = nil
	m.capturedLog = nil
	m.logViewport.SetContent("")
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the model captures its log
func (m *Model) IsTestMode() bool {
	return m.testMode
}

func resultText(r move.Result) string {
	switch r {
	case move.Win:
		return WinStyle.Render("🎉 You Win!")
	case move.Lose:
		return LoseStyle.Render("😅 You Lose!")
	default:
		return TieStyle.Render("🤝 It's a Tie!")
	}
}

func scoreStyle(player, bot int) lipgloss.Style {
	switch {
	case player > bot:
		return WinStyle
	case player < bot:
		return LoseStyle
	default:
		return TieStyle
	}
}
