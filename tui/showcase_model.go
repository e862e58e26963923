package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"merch-intake/models"
	"merch-intake/showcase"
)

const (
	// rowsPerPanel is the virtual scroll distance of one panel
	rowsPerPanel = 24
	// indicatorCircumference matches the r=20 ring of the scroll indicator
	indicatorCircumference = 2 * math.Pi * 20
	autoplayInterval       = 50 * time.Millisecond
	trackCells             = 40
)

// turntable frames, indexed by eighths of a turn
var turntable = []string{"▲", "◥", "▶", "◢", "▼", "◣", "◀", "◤"}

type autoplayTickMsg time.Time

// ShowcaseModel scrolls through the product line the way the landing page
// does: one vertical scroll position drives the horizontal track and the
// rotation of every panel.
type ShowcaseModel struct {
	products []models.Product
	choreo   *showcase.Choreographer

	scrollTop int
	viewport  int
	autoplay  bool
	width     int
}

// NewShowcaseModel builds a showcase of the catalog products
func NewShowcaseModel(catalog *models.Catalog) ShowcaseModel {
	var products []models.Product
	if catalog != nil {
		products = catalog.Products
	}
	return ShowcaseModel{
		products: products,
		choreo:   showcase.New(len(products)),
		viewport: rowsPerPanel,
		width:    80,
	}
}

// trackHeight is the scrollable distance; the sticky section is one viewport
// taller than that.
func (m ShowcaseModel) trackHeight() int {
	return len(m.products) * rowsPerPanel
}

// Progress is the scroll fraction of the track
func (m ShowcaseModel) Progress() float64 {
	return showcase.ScrollFraction(float64(m.scrollTop), 0, float64(m.trackHeight()))
}

// Frame is the choreographer state for the current scroll position
func (m ShowcaseModel) Frame() showcase.Frame {
	return m.choreo.Frame(m.Progress())
}

func (m ShowcaseModel) Init() tea.Cmd {
	return nil
}

func autoplayTick() tea.Cmd {
	return tea.Tick(autoplayInterval, func(t time.Time) tea.Msg { return autoplayTickMsg(t) })
}

func (m ShowcaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Height > 0 {
			m.viewport = msg.Height
		}
		return m, nil

	case autoplayTickMsg:
		if !m.autoplay {
			return m, nil
		}
		m.scroll(1)
		if m.scrollTop >= m.trackHeight() {
			m.autoplay = false
			return m, nil
		}
		return m, autoplayTick()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.scroll(3)
		case tea.MouseButtonWheelUp:
			m.scroll(-3)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "down", "j":
			m.scroll(1)
		case "up", "k":
			m.scroll(-1)
		case "pgdown", "f":
			m.scroll(m.viewport / 2)
		case "pgup", "b":
			m.scroll(-m.viewport / 2)
		case "home", "g":
			m.scrollTop = 0
		case "end", "G":
			m.scrollTop = m.trackHeight()
		case " ":
			m.autoplay = !m.autoplay
			if m.autoplay {
				if m.scrollTop >= m.trackHeight() {
					m.scrollTop = 0
				}
				return m, autoplayTick()
			}
		}
	}
	return m, nil
}

// scroll moves the viewport; like a browser it stops at both ends of the page
func (m *ShowcaseModel) scroll(delta int) {
	m.scrollTop += delta
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
	if max := m.trackHeight(); m.scrollTop > max {
		m.scrollTop = max
	}
}

func (m ShowcaseModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("The lineup") + "\n\n")

	if len(m.products) == 0 {
		b.WriteString("  " + mutedStyle.Render("No products in the catalog.") + "\n")
		return b.String()
	}

	frame := m.Frame()
	b.WriteString("  " + m.viewTrack(frame) + "\n\n")

	panels := make([]string, 0, 3)
	for i := frame.ActivePanel - 1; i <= frame.ActivePanel+1; i++ {
		if i < 0 || i >= len(m.products) {
			continue
		}
		panels = append(panels, m.viewPanel(frame.RawProgress, frame.Panels[i], i == frame.ActivePanel))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n\n")

	offset := showcase.IndicatorDashOffset(frame.RawProgress, indicatorCircumference)
	b.WriteString(fmt.Sprintf("  %s %3.0f%%  %s\n",
		m.viewIndicator(frame.RawProgress),
		frame.RawProgress*100,
		mutedStyle.Render(fmt.Sprintf("track %.0f%%  ring offset %.1f", frame.TrackOffsetPercent, offset)),
	))

	help := "↑/↓ scroll · pgup/pgdn jump · space autoplay · q quit"
	if m.autoplay {
		help = "space pause · q quit"
	}
	b.WriteString("\n  " + mutedStyle.Render(help) + "\n")
	return b.String()
}

// viewTrack draws the horizontal strip of panels shifted by the track offset
func (m ShowcaseModel) viewTrack(frame showcase.Frame) string {
	n := len(m.products)
	cellsPerPanel := trackCells / n
	if cellsPerPanel < 1 {
		cellsPerPanel = 1
	}
	// a TrackOffsetPercent of -100 moves the strip by one panel
	shift := int(math.Round(-frame.TrackOffsetPercent / 100 * float64(cellsPerPanel)))

	var b strings.Builder
	for i := 0; i < n; i++ {
		cell := strings.Repeat("▬", cellsPerPanel)
		if i == frame.ActivePanel {
			b.WriteString(accentStyle.Render(cell))
		} else {
			b.WriteString(mutedStyle.Render(cell))
		}
	}
	return strings.Repeat(" ", max(0, (n-1)*cellsPerPanel-shift)) + b.String()
}

// turntableFrame picks the glyph nearest to a signed rotation in radians
func turntableFrame(angle float64) string {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return turntable[int(math.Round(angle/(2*math.Pi)*8))%len(turntable)]
}

func (m ShowcaseModel) viewPanel(progress float64, state showcase.PanelState, active bool) string {
	p := m.products[state.Index]
	glyph := turntableFrame(m.choreo.SignedRotation(progress, state.Index))

	body := strings.Join([]string{
		titleStyle.Render(p.Label),
		"",
		lipgloss.PlaceHorizontal(20, lipgloss.Center, accentStyle.Render(glyph)),
		"",
		mutedStyle.Render(fmt.Sprintf("%3.0f° ", state.Angle*180/math.Pi)) + progressBar(state.Progress, 12),
		mutedStyle.Render(p.Turnaround),
	}, "\n")

	style := panelStyle.Width(22)
	if active {
		style = activePanelStyle.Width(22)
	}
	return style.Render(body)
}

func (m ShowcaseModel) viewIndicator(p float64) string {
	const segments = 8
	filled := int(math.Round(p * segments))
	return accentStyle.Render(strings.Repeat("●", filled)) + mutedStyle.Render(strings.Repeat("○", segments-filled))
}

func progressBar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	return okStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
