// Package ui provides the terminal dashboard for live journeys
package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
)

const (
	appASCIIBanner = `
 ███╗   ███╗███████╗████████╗██████╗  ██████╗ ███████╗██╗███╗   ███╗
 ████╗ ████║██╔════╝╚══██╔══╝██╔══██╗██╔═══██╗██╔════╝██║████╗ ████║
 ██╔████╔██║█████╗     ██║   ██████╔╝██║   ██║███████╗██║██╔████╔██║
 ██║╚██╔╝██║██╔══╝     ██║   ██╔══██╗██║   ██║╚════██║██║██║╚═╝ ██║
 ██║ ╚═╝ ██║███████╗   ██║   ██║  ██║╚██████╔╝███████║██║██║     ██║
 ╚═╝     ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝╚═╝     ╚═╝
              Procedural Metro Ambience Synthesizer
`
	maxSpeed = 80.0 // km/h, bar scale
)

// Define some styles
var (
	appStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61E3FA")).
			Background(lipgloss.Color("#1E1E2E")).
			Padding(1, 2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A9B1D6"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A")).
			MarginTop(1)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF9E64"))

	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7AA2F7")).
			Padding(1, 2)
)

// Status is one dashboard update: the current segment label plus the
// context and physical-state snapshots it was rendered from.
type Status struct {
	Time    float64
	Label   string
	Event   engine.EventType
	Context engine.JourneyContext
	State   engine.EvolutionState
}

// JourneyModel is the TUI model
type JourneyModel struct {
	spinner       spinner.Model
	status        Status
	running       bool
	statusMessage string
	recentEvents  []string
	logMessages   []string
	maxLogLines   int
	width         int
	mutex         sync.Mutex
	ready         bool
	quitChan      chan struct{}
}

// NewJourneyModel creates a new TUI model
func NewJourneyModel() JourneyModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A"))

	return JourneyModel{
		spinner:       s,
		statusMessage: "Departing",
		maxLogLines:   5,
		quitChan:      make(chan struct{}),
	}
}

// Init initializes the model
func (m *JourneyModel) Init() tea.Cmd {
	return spinner.Tick
}

// Update updates the model based on messages
func (m *JourneyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			select {
			case <-m.quitChan:
				// Already closed
			default:
				close(m.quitChan)
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetStatus updates the journey snapshot shown by the dashboard
func (m *JourneyModel) SetStatus(status Status) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.status = status
	m.running = true
	m.statusMessage = status.Label

	if status.Event != "" {
		entry := fmt.Sprintf("%6.1fs  %s", status.Time, status.Event)
		m.recentEvents = append([]string{entry}, m.recentEvents...)
		if len(m.recentEvents) > 5 {
			m.recentEvents = m.recentEvents[:5]
		}
	}
}

// AddLogMessage adds a log message to the display
func (m *JourneyModel) AddLogMessage(msg string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logMessages = append([]string{msg}, m.logMessages...)
	if len(m.logMessages) > m.maxLogLines {
		m.logMessages = m.logMessages[:m.maxLogLines]
	}
}

// View renders the TUI
func (m *JourneyModel) View() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.ready {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(appStyle.Render(appASCIIBanner))

	statusIndicator := ""
	if m.running {
		statusIndicator = m.spinner.View() + " "
	}
	s.WriteString("\n" + statusStyle.Render(fmt.Sprintf("%sNow: %s  (t=%.1fs)",
		statusIndicator, m.statusMessage, m.status.Time)))

	s.WriteString("\n" + infoStyle.Render("Press 'q' to end the journey"))

	s.WriteString("\n\n" + renderGauge("Speed      ", m.status.Context.Speed, maxSpeed, "km/h"))
	s.WriteString("\n" + renderGauge("Brake temp ", m.status.State.BrakeTemperature, 300, "C"))
	s.WriteString("\n" + renderGauge("Motor temp ", m.status.State.MotorTemperature, 120, "C"))
	s.WriteString("\n" + renderGauge("Bearing    ", m.status.State.BearingWear*100, 100, "%"))

	events := "none yet"
	if len(m.recentEvents) > 0 {
		events = strings.Join(m.recentEvents, "\n")
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	s.WriteString("\n\n" + frameStyle.Width(width).Render("Recent events:\n"+eventStyle.Render(events)))

	if len(m.logMessages) > 0 {
		s.WriteString("\n\nLog:")
		for _, msg := range m.logMessages {
			s.WriteString("\n" + infoStyle.Render("• "+msg))
		}
	}

	return s.String()
}

// renderGauge creates a text bar for a bounded quantity
func renderGauge(label string, value, max float64, unit string) string {
	const width = 30

	ratio := value / max
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * width)

	color := "#9ECE6A"
	switch {
	case ratio > 0.8:
		color = "#F7768E"
	case ratio > 0.5:
		color = "#E0AF68"
	}

	bar := strings.Repeat("█", filled) + strings.Repeat(" ", width-filled)
	return label + "[" +
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar) +
		fmt.Sprintf("] %6.1f %s", value, unit)
}

// TerminalUI manages the terminal user interface
type TerminalUI struct {
	program *tea.Program
	model   *JourneyModel
	logCh   chan string
}

// NewTerminalUI creates a new terminal UI
func NewTerminalUI() *TerminalUI {
	model := NewJourneyModel()
	program := tea.NewProgram(&model)

	ui := &TerminalUI{
		program: program,
		model:   &model,
		logCh:   make(chan string, 10),
	}

	// Start log channel handler
	go func() {
		for msg := range ui.logCh {
			ui.model.AddLogMessage(msg)
			ui.program.Send(tea.Tick(0, func(t time.Time) tea.Msg {
				return nil // Just trigger a redraw
			}))
		}
	}()

	return ui
}

// Start begins the terminal UI in a goroutine
func (t *TerminalUI) Start() {
	go func() {
		if err := t.program.Start(); err != nil {
			if !errors.Is(err, tea.ErrProgramKilled) {
				t.AddLog("Terminal UI error: " + err.Error())
			}
		}
	}()
}

// Stop terminates the terminal UI
func (t *TerminalUI) Stop() {
	t.program.Quit()
}

// SetStatus updates the journey snapshot shown by the dashboard
func (t *TerminalUI) SetStatus(status Status) {
	t.model.SetStatus(status)
}

// AddLog adds a log message to the display
func (t *TerminalUI) AddLog(msg string) {
	select {
	case t.logCh <- msg:
		// Message sent
	default:
		// Channel full, drop message
	}
}

// QuitRequested returns a channel closed when the user asks to quit
func (t *TerminalUI) QuitRequested() <-chan struct{} {
	return t.model.quitChan
}
