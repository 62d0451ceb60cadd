// Package display hosts the game in the terminal using Bubble Tea.
//
// The Bubble Tea event loop is the game loop: a fixed-rate tick drives the
// flow machine and mouse motion feeds the fallback pointer. The frame is
// redrawn from the machine's presentation queries and fills the terminal,
// so mouse cells map straight onto the game surface. Event lines are
// printed through tea.Println so they never garble the frame.
package display

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/flow"
	"github.com/hammamikhairi/eliksir/internal/logger"
	"github.com/hammamikhairi/eliksir/internal/notify"
	"github.com/hammamikhairi/eliksir/internal/pointer"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	handStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0abfc"))

	noHandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	// BannerStyle is the muted slate of the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	successLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0")).
				Bold(true)

	urgentLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// ── Sizing ───────────────────────────────────────────────────────

const (
	// FrameRate is the game loop rate in ticks per second.
	FrameRate = 60

	defaultWidth  = 96
	defaultHeight = 32
	minCanvasW    = 40
	minCanvasH    = 14
	statusLines   = 2
)

// Option configures the UI.
type Option func(*UI)

// withProgramOptions passes extra options to the Bubble Tea program.
func withProgramOptions(opts ...tea.ProgramOption) Option {
	return func(u *UI) {
		u.programOpts = append(u.programOpts, opts...)
	}
}

// WithFrameRate overrides the game loop rate.
func WithFrameRate(fps int) Option {
	return func(u *UI) {
		if fps > 0 {
			u.frame = time.Second / time.Duration(fps)
		}
	}
}

// ── UI ───────────────────────────────────────────────────────────

// UI runs the game loop inside Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Cancelling the context passed to
// Run ends the program.
type UI struct {
	machine  *flow.Machine
	fusion   *pointer.Fusion
	fallback *pointer.Fallback
	feed     *notify.Feed
	log      *logger.Logger
	frame    time.Duration

	programOpts []tea.ProgramOption
}

// NewUI creates the display. The machine must read its pointer from fusion,
// and fallback must be fusion's secondary source.
func NewUI(machine *flow.Machine, fusion *pointer.Fusion, fallback *pointer.Fallback, feed *notify.Feed, log *logger.Logger, opts ...Option) *UI {
	u := &UI{
		machine:  machine,
		fusion:   fusion,
		fallback: fallback,
		feed:     feed,
		log:      log,
		frame:    time.Second / FrameRate,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run starts the event loop and blocks until the player quits or ctx ends.
func (u *UI) Run(ctx context.Context) error {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)

	m := model{
		ctx:      ctx,
		machine:  u.machine,
		fusion:   u.fusion,
		fallback: u.fallback,
		feed:     u.feed,
		log:      u.log,
		frame:    u.frame,
		bar:      bar,
	}

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseAllMotion(),
	}, u.programOpts...)
	_, err := tea.NewProgram(m, opts...).Run()
	u.log.Debug("program exited: %v", err)
	if err != nil && ctx.Err() != nil {
		// Cancelled from outside; not a UI failure.
		return nil
	}
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx      context.Context
	machine  *flow.Machine
	fusion   *pointer.Fusion
	fallback *pointer.Fallback
	feed     *notify.Feed
	log      *logger.Logger
	frame    time.Duration

	bar    progress.Model
	width  int
	height int
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.frame),
		tea.SetWindowTitle("Eliksir"),
	)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		m.trackMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Debug("window resized to %dx%d", msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.machine.Tick(m.ctx, time.Time(msg))
		cmds := []tea.Cmd{tickCmd(m.frame)}
		for _, line := range m.feed.Drain() {
			cmds = append(cmds, tea.Println(styleLine(line)))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// trackMouse feeds the fallback pointer. The cursor leaving the game area
// counts as no cursor.
func (m model) trackMouse(msg tea.MouseMsg) {
	w, h := m.canvasSize()
	if msg.X < 0 || msg.Y < 0 || msg.X >= w || msg.Y >= h {
		m.fallback.Forget()
		return
	}
	x, y := toSurface(msg.X, msg.Y, w, h)
	m.fallback.Move(x, y)
}

func (m model) canvasSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return max(w, minCanvasW), max(h-statusLines, minCanvasH)
}

func (m model) View() string {
	w, h := m.canvasSize()
	c := newCanvas(w, h)

	step, glowing := m.machine.ActiveSequenceStep()
	renderScene(c, scene{
		state:       m.machine.State(),
		regions:     m.machine.Regions(),
		hovering:    m.machine.IsHovering,
		progress:    m.machine.Progress,
		activeStep:  step,
		glowing:     glowing,
		intensity:   m.machine.FadeIntensity(),
		errorActive: m.machine.ErrorActive(),
		session:     m.machine.Session(),
		pointer:     m.fusion.Current(),
		fromHand:    m.fusion.FromPrimary(),
	})

	var b strings.Builder
	b.WriteString(c.String())
	b.WriteByte('\n')
	b.WriteString(m.renderBar(w))
	b.WriteByte('\n')
	if line, ok := m.feed.Last(); ok {
		b.WriteString(styleLine(line))
	}
	return b.String()
}

func (m model) renderBar(width int) string {
	parts := []string{labelStyle.Render(screenName(m.machine.State()))}

	switch {
	case m.fusion.FromPrimary():
		parts = append(parts, handStyle.Render("dłoń: wykryta"))
	case m.fusion.Current().Valid:
		parts = append(parts, noHandStyle.Render("dłoń: brak · mysz"))
	default:
		parts = append(parts, noHandStyle.Render("dłoń: brak"))
	}

	if label, p, ok := m.hovered(); ok {
		parts = append(parts, labelStyle.Render(label+" ")+m.bar.ViewAs(p))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	return barBg.Width(width).Render(content)
}

// hovered returns the region with the most dwell progress on the active
// screen.
func (m model) hovered() (string, float64, bool) {
	best, label, found := -1.0, "", false
	for _, r := range m.machine.Regions() {
		if !m.machine.IsHovering(r.ID) {
			continue
		}
		if p := m.machine.Progress(r.ID); p > best {
			best, label, found = p, r.Label, true
		}
	}
	return label, best, found
}

// ── Helpers ──────────────────────────────────────────────────────

func styleLine(l notify.Line) string {
	switch {
	case l.Urgent:
		return urgentLineStyle.Render("  " + l.Text)
	case l.Kind == domain.EventSuccess:
		return successLineStyle.Render("  " + l.Text)
	default:
		return lineStyle.Render("  " + l.Text)
	}
}

func screenName(s flow.State) string {
	switch s {
	case flow.StateStart:
		return "start"
	case flow.StateDifficulty:
		return "wybór poziomu"
	case flow.StatePlaying:
		return "gra"
	case flow.StateEndSuccess:
		return "sukces"
	case flow.StateEndFailure:
		return "porażka"
	default:
		return s.String()
	}
}
