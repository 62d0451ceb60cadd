package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/flow"
)

// paint selects the style of a canvas cell.
type paint uint8

const (
	paintBlank paint = iota
	paintFrame
	paintLabel
	paintHover
	paintFill
	paintGlowHigh
	paintGlowLow
	paintError
	paintTitle
	paintSubtitle
	paintHand
	paintMouse
)

var paintStyles = [...]lipgloss.Style{
	paintBlank:    lipgloss.NewStyle(),
	paintFrame:    lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b")),
	paintLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8")),
	paintHover:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")).Bold(true),
	paintFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc")),
	paintGlowHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")).Bold(true),
	paintGlowLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a16207")),
	paintError:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true),
	paintTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0")).Bold(true),
	paintSubtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
	paintHand:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f0abfc")).Bold(true),
	paintMouse:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e7")),
}

type cell struct {
	r rune
	p paint
}

// canvas is a character grid standing in for the 1024×768 surface.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, p: p}
}

// text writes s centred on column cx, clipped to [minX, maxX].
func (c *canvas) text(cx, y, minX, maxX int, s string, p paint) {
	runes := []rune(s)
	if room := maxX - minX + 1; room < len(runes) {
		if room <= 0 {
			return
		}
		runes = runes[:room]
	}
	x := cx - len(runes)/2
	if x < minX {
		x = minX
	}
	if x+len(runes)-1 > maxX {
		x = maxX - len(runes) + 1
	}
	for i, r := range runes {
		c.set(x+i, y, r, p)
	}
}

// toCell maps a surface point to a canvas cell.
func (c *canvas) toCell(p domain.Point) (int, int) {
	return p.X * c.w / domain.SurfaceWidth, p.Y * c.h / domain.SurfaceHeight
}

// toSurface maps the centre of a canvas cell back to the surface.
func toSurface(col, row, w, h int) (int, int) {
	x := (2*col + 1) * domain.SurfaceWidth / (2 * w)
	y := (2*row + 1) * domain.SurfaceHeight / (2 * h)
	return min(max(x, 0), domain.SurfaceWidth), min(max(y, 0), domain.SurfaceHeight)
}

// box draws a region outline with its label. fill in [0, 1] shades the
// interior from the left using the shade rune.
func (c *canvas) box(r domain.Rect, label string, frame, labelPaint paint, fill float64, shade rune, shadePaint paint) {
	x0, y0 := c.toCell(domain.Point{X: r.X, Y: r.Y})
	x1, y1 := c.toCell(domain.Point{X: r.X + r.W, Y: r.Y + r.H})
	if x1 >= c.w {
		x1 = c.w - 1
	}
	if y1 >= c.h {
		y1 = c.h - 1
	}
	if x1-x0 < 2 {
		x1 = x0 + 2
	}
	if y1-y0 < 2 {
		y1 = y0 + 2
	}

	if fill > 0 {
		inner := x1 - x0 - 1
		upto := x0 + 1 + int(float64(inner)*fill+0.5)
		for y := y0 + 1; y < y1; y++ {
			for x := x0 + 1; x < upto && x < x1; x++ {
				c.set(x, y, shade, shadePaint)
			}
		}
	}

	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', frame)
		c.set(x, y1, '─', frame)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', frame)
		c.set(x1, y, '│', frame)
	}
	c.set(x0, y0, '╭', frame)
	c.set(x1, y0, '╮', frame)
	c.set(x0, y1, '╰', frame)
	c.set(x1, y1, '╯', frame)

	c.text((x0+x1)/2, (y0+y1)/2, x0+1, x1-1, label, labelPaint)
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].p == row[start].p {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:i] {
				run.WriteRune(cl.r)
			}
			if row[start].p == paintBlank {
				b.WriteString(run.String())
			} else {
				b.WriteString(paintStyles[row[start].p].Render(run.String()))
			}
			start = i
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// scene is everything the renderer reads from the game in one frame.
type scene struct {
	state       flow.State
	regions     []domain.Region
	hovering    func(id string) bool
	progress    func(id string) float64
	activeStep  string
	glowing     bool
	intensity   float64
	errorActive bool
	session     *domain.Session
	pointer     domain.PointerSample
	fromHand    bool
}

// renderScene draws one frame of the game surface.
func renderScene(c *canvas, s scene) {
	drawTitles(c, s)

	for _, r := range s.regions {
		switch {
		case s.glowing && r.ID == s.activeStep:
			shade, p := '▓', paintGlowHigh
			if s.intensity < 0.75 {
				shade, p = '▒', paintGlowLow
			}
			c.box(r.Rect, r.Label, p, p, 1, shade, p)
		case s.errorActive:
			c.box(r.Rect, r.Label, paintError, paintLabel, 0, ' ', paintBlank)
		case s.hovering(r.ID):
			c.box(r.Rect, r.Label, paintHover, paintHover, s.progress(r.ID), '░', paintFill)
		default:
			c.box(r.Rect, r.Label, paintFrame, paintLabel, 0, ' ', paintBlank)
		}
	}

	if s.pointer.Valid {
		x, y := c.toCell(s.pointer.Point)
		if s.fromHand {
			c.set(x, y, '●', paintHand)
		} else {
			c.set(x, y, '+', paintMouse)
		}
	}
}

func drawTitles(c *canvas, s scene) {
	mid := c.w / 2
	title, subtitle := screenText(s)
	subPaint := paintSubtitle
	if s.errorActive {
		subtitle, subPaint = flow.ErrorLine, paintError
	}
	c.text(mid, 1, 0, c.w-1, title, paintTitle)
	c.text(mid, 2, 0, c.w-1, subtitle, subPaint)
}

func screenText(s scene) (string, string) {
	switch s.state {
	case flow.StateStart:
		return "ELIKSIR", "Przytrzymaj dłoń nad przyciskiem, aby go wcisnąć"
	case flow.StateDifficulty:
		return "Wybierz poziom trudności", "Łatwy: 5 składników · Trudny: 7 składników"
	case flow.StatePlaying:
		if s.session == nil {
			return "", ""
		}
		name := s.session.Recipe.Name
		switch s.session.Mode {
		case domain.ModePlayback:
			return name, fmt.Sprintf("Zapamiętaj kolejność (%d/%d)", min(s.session.PlaybackIndex+1, s.session.Recipe.Len()), s.session.Recipe.Len())
		case domain.ModeAwaitingInput:
			return name, fmt.Sprintf("Twoja kolej: %d/%d", len(s.session.PlayerProgress), s.session.Recipe.Len())
		default:
			return name, ""
		}
	case flow.StateEndSuccess:
		if s.session != nil {
			return "Eliksir gotowy!", s.session.Recipe.Name
		}
		return "Eliksir gotowy!", ""
	case flow.StateEndFailure:
		return "Eliksir się nie udał", ""
	default:
		return "", ""
	}
}
