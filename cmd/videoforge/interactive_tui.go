package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/videoforge/videoforge/internal/demohost"
	"github.com/videoforge/videoforge/internal/host"
)

// welcomeMarkdown is the banner rendered when the session starts.
const welcomeMarkdown = `# VideoForge demo

Type a prompt (or a full ` + "`/video ...`" + ` line) to generate a video.

- ` + "`/video settings`" + ` shows the current configuration
- ` + "`/video models`" + ` lists the available models
- ` + "`/quit`" + ` exits
`

// tuiEntry is a rendered line in the chat pane.
type tuiEntry struct {
	// Role labels the entry origin (you, forge, system).
	Role string
	// Content is the entry text.
	Content string
}

// replyMsg carries a command reply into the TUI event loop.
type replyMsg struct {
	// Text is the reply text.
	Text string
}

// runDoneMsg signals a completed command dispatch.
type runDoneMsg struct {
	// Err is the dispatch error, when any.
	Err error
}

// confirmRequest is a pending yes/no question issued by the plugin.
type confirmRequest struct {
	// Question is the question text shown to the user.
	Question string
	// Response returns the user's free-text answer.
	Response chan string
}

// confirmRequestMsg delivers a confirmation prompt to the UI loop.
type confirmRequestMsg struct {
	// Request carries the pending question.
	Request *confirmRequest
}

// tuiModel drives the interactive demo session.
type tuiModel struct {
	// demo is the in-memory host serving the plugin.
	demo *demohost.DemoHost
	// channel is the provider the /video command is registered on.
	channel *demohost.MemoryChannel
	// entries holds the chat history for rendering.
	entries []tuiEntry
	// chatView renders the chat history.
	chatView viewport.Model
	// input collects user input.
	input textarea.Model
	// statusText is the bottom status line.
	statusText string
	// width and height track the terminal size.
	width  int
	height int
	// running indicates an in-flight command dispatch.
	running bool
	// streamCh delivers replies and prompts into the update loop.
	streamCh chan tea.Msg
	// pendingConfirm is the active confirmation prompt, when any.
	pendingConfirm *confirmRequest
	// quitting indicates a user-requested exit.
	quitting bool
}

var (
	// roleStyle renders entry role labels.
	roleStyle = lipgloss.NewStyle().Bold(true)
	// statusStyle renders the bottom status line.
	statusStyle = lipgloss.NewStyle().Faint(true)
	// headerStyle renders the session header.
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// runInteractiveTUI starts the terminal session for the demo host.
func runInteractiveTUI(opts *options, demo *demohost.DemoHost, channel *demohost.MemoryChannel) error {
	if !term.IsTerminal(int(0)) || !term.IsTerminal(int(1)) {
		return errors.New("interactive mode requires a TTY; use --print for scripting")
	}
	modelState := newTUIModel(demo, channel)

	// Route plugin confirmation prompts through the UI loop.
	demo.Confirm = func(ctx context.Context, req host.InjectRequest) (string, error) {
		request := &confirmRequest{Question: req.Payload, Response: make(chan string, 1)}
		modelState.streamCh <- confirmRequestMsg{Request: request}
		select {
		case answer := <-request.Response:
			return answer, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	// Stream replies into the chat pane as the handler emits them.
	channel.OnReply = func(text string) {
		modelState.streamCh <- replyMsg{Text: text}
	}

	program := tea.NewProgram(modelState, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// newTUIModel constructs the initial TUI state.
func newTUIModel(demo *demohost.DemoHost, channel *demohost.MemoryChannel) *tuiModel {
	input := textarea.New()
	input.Placeholder = "Describe the video to generate..."
	input.Focus()
	input.CharLimit = 0
	input.Prompt = "> "
	input.SetHeight(1)
	input.SetWidth(20)

	chatView := viewport.New(20, 10)

	modelState := &tuiModel{
		demo:       demo,
		channel:    channel,
		chatView:   chatView,
		input:      input,
		statusText: "Enter: send | Ctrl+C/Ctrl+Q: quit",
		streamCh:   make(chan tea.Msg, 16),
	}
	modelState.entries = append(modelState.entries, tuiEntry{Role: "system", Content: renderWelcome()})
	return modelState
}

// renderWelcome formats the welcome banner, preferring glamour markdown.
func renderWelcome() string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return welcomeMarkdown
	}
	rendered, err := renderer.Render(welcomeMarkdown)
	if err != nil {
		return welcomeMarkdown
	}
	return strings.TrimSpace(rendered)
}

// Init starts the blinking cursor for the input field.
func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.listenStream())
}

// listenStream waits for the next message from the dispatch goroutine.
func (m *tuiModel) listenStream() tea.Cmd {
	return func() tea.Msg {
		return <-m.streamCh
	}
}

// Update handles UI events and dispatch updates.
func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.applyWindowSize(typed)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case replyMsg:
		m.entries = append(m.entries, tuiEntry{Role: "forge", Content: typed.Text})
		m.refreshChat()
		return m, m.listenStream()
	case confirmRequestMsg:
		m.pendingConfirm = typed.Request
		m.entries = append(m.entries, tuiEntry{Role: "forge", Content: typed.Request.Question})
		m.statusText = "y: confirm | n: decline"
		m.refreshChat()
		return m, m.listenStream()
	case runDoneMsg:
		m.running = false
		m.statusText = "Enter: send | Ctrl+C/Ctrl+Q: quit"
		if typed.Err != nil {
			m.entries = append(m.entries, tuiEntry{Role: "system", Content: typed.Err.Error()})
		}
		m.refreshChat()
		return m, m.listenStream()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes keyboard input and command submission.
func (m *tuiModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingConfirm != nil {
		switch strings.ToLower(key.String()) {
		case "y":
			m.resolveConfirm("yes")
			return m, nil
		case "n", "esc", "enter":
			m.resolveConfirm("no")
			return m, nil
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "ctrl+q":
		m.quitting = true
		return m, tea.Quit
	case "pgup":
		m.chatView.LineUp(10)
		return m, nil
	case "pgdown":
		m.chatView.LineDown(10)
		return m, nil
	}

	if key.Type == tea.KeyEnter {
		return m, m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// resolveConfirm answers the pending confirmation prompt.
func (m *tuiModel) resolveConfirm(answer string) {
	if m.pendingConfirm == nil {
		return
	}
	m.pendingConfirm.Response <- answer
	m.pendingConfirm = nil
	m.statusText = "Enter: send | Ctrl+C/Ctrl+Q: quit"
}

// submitInput dispatches the current input line as a /video invocation.
func (m *tuiModel) submitInput() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	if line == "" || m.running {
		return nil
	}
	if line == "/quit" || line == "/exit" {
		m.quitting = true
		return tea.Quit
	}

	m.input.SetValue("")
	m.entries = append(m.entries, tuiEntry{Role: "you", Content: line})
	m.refreshChat()

	tokens := commandTokens(strings.Fields(line))
	m.running = true
	m.statusText = "Working..."

	go func() {
		_, err := m.channel.Dispatch(context.Background(), "video", "demo-channel", "demo-user", tokens)
		m.streamCh <- runDoneMsg{Err: err}
	}()
	return m.listenStream()
}

// applyWindowSize resizes the panes to the terminal.
func (m *tuiModel) applyWindowSize(size tea.WindowSizeMsg) {
	m.width = size.Width
	m.height = size.Height
	inputHeight := 3
	chromeHeight := 3
	m.chatView.Width = size.Width
	m.chatView.Height = maxInt(size.Height-inputHeight-chromeHeight, 3)
	m.input.SetWidth(size.Width - 2)
	m.refreshChat()
}

// refreshChat re-renders the chat viewport and pins it to the bottom.
func (m *tuiModel) refreshChat() {
	var b strings.Builder
	for index, entry := range m.entries {
		if index > 0 {
			b.WriteString("\n")
		}
		if entry.Role == "system" {
			b.WriteString(entry.Content)
			b.WriteString("\n")
			continue
		}
		b.WriteString(roleStyle.Render(entry.Role+":") + " " + entry.Content)
		b.WriteString("\n")
	}
	m.chatView.SetContent(b.String())
	m.chatView.GotoBottom()
}

// View renders the full UI layout.
func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}
	header := headerStyle.Render(fmt.Sprintf("VideoForge demo (%s)", m.channel.Name()))
	status := statusStyle.Render(m.statusText)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.chatView.View(), m.input.View(), status)
}

// maxInt returns the larger of two ints.
func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
