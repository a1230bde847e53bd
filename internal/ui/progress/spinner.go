// Package progress provides progress indication for long-running waits.
//
// The only long-running operation in altiumate is waiting for Altium
// Designer to write its result, which can legitimately take minutes for
// output jobs. The spinner shows the wait is alive and how long it has
// been going.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/altiumate/altiumate/internal/styles"
)

// Spinner wraps a Bubbletea spinner for simple non-interactive use.
type Spinner struct {
	program   *tea.Program
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	message   string
}

// spinnerModel is the internal Bubbletea model. Elapsed time refreshes
// with every animation tick.
type spinnerModel struct {
	spinner spinner.Model
	message string
	started time.Time
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	elapsed := time.Since(m.started).Round(time.Second)
	return tea.NewView(fmt.Sprintf("%s %s %s", m.spinner.View(), m.message, styles.MutedStyle(fmt.Sprintf("(%s)", elapsed))))
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		done:    make(chan struct{}),
		message: message,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := spinnerModel{
		spinner: sp,
		message: s.message,
		started: time.Now(),
	}

	// Stderr keeps stdout clean for piping the resolved path or YAML.
	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))
	s.isRunning = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}
