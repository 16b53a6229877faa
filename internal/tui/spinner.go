package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/promptplay/internal/provider"
)

// Labels shown next to the spinner per workflow.
var spinnerLabels = map[string]string{
	"brainstorm": "Thinking...",
	"score":      "Scoring issue...",
	"decompose":  "Decomposing task...",
	"dispatch":   "Dispatching roles...",
}

// SpinnerLabel returns the text shown while workflow waits on the model.
func SpinnerLabel(workflow string) string {
	if l, ok := spinnerLabels[workflow]; ok {
		return l
	}
	return "Waiting for model..."
}

type stopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))),
	)
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + m.label
}

// Spinner animates while a blocking call runs. A disabled spinner just
// runs the call.
type Spinner struct {
	out     io.Writer
	enabled bool
}

// NewSpinner creates a spinner drawing on out when enabled is true.
func NewSpinner(out io.Writer, enabled bool) *Spinner {
	return &Spinner{out: out, enabled: enabled}
}

// Run calls fn while the spinner is shown and clears it afterwards.
func (s *Spinner) Run(ctx context.Context, label string, fn func() error) error {
	if s == nil || !s.enabled {
		return fn()
	}

	p := tea.NewProgram(newSpinnerModel(label),
		tea.WithContext(ctx),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	err := fn()
	p.Send(stopMsg{})
	<-done
	return err
}

// Middleware shows the spinner around every chat call.
func (s *Spinner) Middleware() provider.Middleware {
	return func(next provider.ChatClient) provider.ChatClient {
		if s == nil || !s.enabled {
			return next
		}
		return spinningClient{next: next, spinner: s}
	}
}

type spinningClient struct {
	next    provider.ChatClient
	spinner *Spinner
}

func (c spinningClient) Name() string { return provider.NameOf(c.next) }

func (c spinningClient) Chat(ctx context.Context, systemPrompt string, messages []provider.Message) (string, error) {
	var reply string
	err := c.spinner.Run(ctx, SpinnerLabel(provider.WorkflowFrom(ctx)), func() error {
		var err error
		reply, err = c.next.Chat(ctx, systemPrompt, messages)
		return err
	})
	return reply, err
}
