package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/soillab/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	tickRate        = 30
	scrubStep       = 1.0
	minSpeed        = 0.25
	maxSpeed        = 8
)

// RecordingPath is where a toggled recording is written.
var RecordingPath = "preview.gif"

type TickMsg time.Time

// Model plays a timeline in the terminal.
type Model struct {
	name      string
	src       sim.Source
	player    *sim.Simulator
	plotID    string
	t         float64
	speed     float64
	running   bool
	canvas    *Canvas
	theme     Theme
	tipHist   []float64
	visHist   []float64
	frame     sim.Frame
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	status    string
	embedded  bool
}

// NewModel prepares a preview of src. plotID names the tracked plot; empty
// tracks the topmost visible plot.
func NewModel(name string, src sim.Source, plotID, theme string) Model {
	m := Model{
		name:    name,
		src:     src,
		player:  sim.New(src),
		plotID:  plotID,
		speed:   1,
		running: true,
		canvas:  NewCanvas(width, height),
		theme:   GetTheme(theme),
		tipHist: make([]float64, 0, historyCapacity),
		visHist: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Time is the playback position in seconds.
func (m Model) Time() float64 { return m.t }

func (m Model) Running() bool { return m.running }

func (m Model) Speed() float64 { return m.speed }

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.embedded && msg.String() == "q" {
				return m, backToMenu
			}
			return m, tea.Quit
		case " ":
			if !m.running && m.t >= m.src.Duration() {
				m.restart()
			} else {
				m.running = !m.running
			}
		case "r":
			m.restart()
		case "[":
			m.seek(m.t - scrubStep)
		case "]":
			m.seek(m.t + scrubStep)
		case "+", "=":
			m.speed = math.Min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = math.Max(m.speed/2, minSpeed)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case TickMsg:
		if m.running {
			m.advance(m.speed / tickRate)
		}
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// advance moves playback forward by dt seconds and stops at the end.
func (m *Model) advance(dt float64) {
	m.t += dt
	if d := m.src.Duration(); m.t >= d {
		m.t = d
		m.running = false
	}
	m.draw()
	if m.frame.Tip.Valid {
		m.tipHist = push(m.tipHist, m.frame.Tip.Y)
	}
	m.visHist = push(m.visHist, float64(m.frame.Scene.Visible()))
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) seek(t float64) {
	m.t = math.Max(0, math.Min(t, m.src.Duration()))
	m.draw()
}

func (m *Model) restart() {
	m.t = 0
	m.tipHist = m.tipHist[:0]
	m.visHist = m.visHist[:0]
	m.running = true
	m.draw()
}

// draw evaluates the frame at the playhead and redraws the canvas.
func (m *Model) draw() {
	m.frame = m.player.FrameAt(m.t, m.plotID)
	m.canvas.Clear()
	m.canvas.DrawScene(m.frame.Scene)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		m.status = "recording"
		return
	}
	m.recording = false
	if err := m.saveGIF(RecordingPath); err != nil {
		m.status = "record failed: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), RecordingPath)
	}
	m.frames = nil
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	canvasView := canvasStyle.Foreground(m.theme.Primary).Render(m.canvas.String())
	header := lipgloss.NewStyle().Foreground(m.theme.Secondary).Bold(true).MarginBottom(1)
	graph := lipgloss.NewStyle().Foreground(m.theme.Accent).Padding(1, 0)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")
	d := m.src.Duration()
	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("PLAYING") + "\n\n")
	case m.t >= d:
		s.WriteString(StatusPaused.Render("DONE") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.tipHist) > 1 {
		chart := asciigraph.Plot(m.tipHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("curve tip"))
		s.WriteString(graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs / %.2fs", m.t, d))
	row("Segment", fmt.Sprintf("%d", m.frame.Segment))
	if m.frame.Tip.Valid {
		row("Tip x", fmt.Sprintf("%.3f", m.frame.Tip.X))
		row("Tip y", fmt.Sprintf("%.3f", m.frame.Tip.Y))
	} else {
		row("Tip", "-")
	}
	row("Speed", fmt.Sprintf("%gx", m.speed))
	row("Visible", fmt.Sprintf("%d", m.frame.Scene.Visible()))
	if len(m.visHist) > 1 {
		row("", SparklineChart(m.visHist, 20))
	}
	row("Theme", m.theme.Name)

	progress := 0.0
	if d > 0 {
		progress = m.t / d
	}
	s.WriteString("\n" + ProgressBar(progress, 30) + "\n")
	if m.status != "" {
		s.WriteString(KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record  ?:Help\n[ ]:Scrub +-:Speed"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from the top     ║
║  Q        - Quit                     ║
║  [        - Back one second          ║
║  ]        - Forward one second       ║
║  + / -    - Double / halve speed     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// captureFrame rasterises the braille grid, one 4x4 block per dot.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	dotW, dotH := charW/2, charH/4
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for y := 0; y < m.canvas.Height*4; y++ {
		for x := 0; x < m.canvas.Width*2; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF(path string) error {
	if len(m.frames) == 0 {
		return fmt.Errorf("no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 100/tickRate)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Run starts a full-screen preview of src.
func Run(name string, src sim.Source, plotID, theme string) error {
	_, err := tea.NewProgram(NewModel(name, src, plotID, theme), tea.WithAltScreen()).Run()
	return err
}
