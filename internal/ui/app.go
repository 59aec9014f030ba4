package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/config"
	"github.com/jscyril/vinyl_player/internal/frameloop"
	"github.com/jscyril/vinyl_player/internal/player"
	"github.com/jscyril/vinyl_player/internal/render"
	"github.com/jscyril/vinyl_player/internal/ui/components"
	"github.com/jscyril/vinyl_player/internal/ui/views"
	"github.com/rs/zerolog"
)

const (
	volumeStep = 0.1
	panStep    = 0.1

	// minListRows is kept for the playlist before the record is shrunk.
	minListRows = 3
)

// Options wires the model to the player. Canvas and the screen's canvas rows
// are upper bounds; both shrink to fit the terminal.
type Options struct {
	Controller    *player.Controller
	Loop          *frameloop.Loop
	Canvas        *render.GG
	Screen        *Screen
	Events        <-chan api.Event
	Keys          config.KeyMap
	FrameInterval time.Duration
	Logger        zerolog.Logger
}

// Model is the main bubbletea model
type Model struct {
	width  int
	height int

	ctrl     *player.Controller
	loop     *frameloop.Loop
	canvas   *render.GG
	screen   *Screen
	maxRows  int // canvas rows asked for at startup
	maxSide  int // canvas pixels asked for at startup
	events   <-chan api.Event
	interval time.Duration

	keys KeyMap
	help help.Model
	log  zerolog.Logger
}

// FrameMsg drives one animation frame.
type FrameMsg time.Time

// LoadMsg carries a load result from the event bus.
type LoadMsg api.Event

// NewModel creates a new application model
func NewModel(opts Options) Model {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}
	m := Model{
		width:    80,
		height:   24,
		ctrl:     opts.Controller,
		loop:     opts.Loop,
		canvas:   opts.Canvas,
		screen:   opts.Screen,
		maxRows:  opts.Screen.player.CanvasRows(),
		maxSide:  int(min(opts.Canvas.Width(), opts.Canvas.Height())),
		events:   opts.Events,
		interval: interval,
		keys:     NewKeyMap(opts.Keys),
		help:     help.New(),
		log:      opts.Logger.With().Str("component", "ui").Logger(),
	}
	m.report(nil)
	m.updateViewSizes()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), m.listenForEvents())
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// listenForEvents waits for the next load notification.
func (m Model) listenForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return LoadMsg(event)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewSizes()
		return m, nil

	case FrameMsg:
		m.frame()
		return m, m.frameCmd()

	case LoadMsg:
		m.handleLoad(api.Event(msg))
		return m, m.listenForEvents()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) frame() {
	f := m.loop.Tick(m.canvas)
	m.screen.player.Canvas = components.RenderImage(m.canvas.Image())

	for i := 0; i < m.ctrl.Len(); i++ {
		if e, ok := m.ctrl.Entry(i); ok && e.Sound != nil {
			m.screen.playlist.SetLoadState(i, e.Sound.LoadState())
		}
	}

	state := m.ctrl.State()
	m.screen.playlist.TrackList.Active = state.CurrentIndex
	m.screen.playlist.TrackList.Playing = state.IsPlaying

	if f.Err != nil {
		m.screen.player.Err = f.Err
	}
}

func (m *Model) handleLoad(e api.Event) {
	entry, ok := m.ctrl.Entry(e.Index)
	if !ok {
		return
	}
	switch e.Type {
	case api.EventTrackLoaded:
		m.screen.playlist.SetLoadState(e.Index, api.LoadLoaded)
		m.screen.player.Status = "Loaded " + entry.Track.DisplayTitle()
	case api.EventLoadFailed:
		m.screen.playlist.SetLoadState(e.Index, api.LoadFailed)
		m.screen.player.Status = "Could not load " + entry.Track.DisplayTitle()
		if err, ok := e.Payload.(error); ok {
			m.screen.player.Status += ": " + err.Error()
			m.log.Warn().Err(err).Int("index", e.Index).Msg("track unplayable")
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	settings := m.ctrl.Settings()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewSizes()
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		err = m.ctrl.TogglePlay()

	case key.Matches(msg, m.keys.Play):
		if !m.ctrl.State().IsPlaying {
			err = m.ctrl.Play()
		}

	case key.Matches(msg, m.keys.Pause):
		m.ctrl.Pause()

	case key.Matches(msg, m.keys.Stop):
		m.ctrl.Stop()

	case key.Matches(msg, m.keys.Next):
		err = m.ctrl.Next()

	case key.Matches(msg, m.keys.Prev):
		err = m.ctrl.Prev()

	case key.Matches(msg, m.keys.VolumeUp):
		err = m.ctrl.SetVolume(step(settings.Volume, volumeStep, 0, 1))

	case key.Matches(msg, m.keys.VolumeDown):
		err = m.ctrl.SetVolume(step(settings.Volume, -volumeStep, 0, 1))

	case key.Matches(msg, m.keys.PanLeft):
		err = m.ctrl.SetPan(step(settings.Pan, -panStep, -1, 1))

	case key.Matches(msg, m.keys.PanRight):
		err = m.ctrl.SetPan(step(settings.Pan, panStep, -1, 1))

	case key.Matches(msg, m.keys.Seek):
		digit := float64(msg.Runes[0] - '0')
		err = m.ctrl.Seek(digit / 10)

	case key.Matches(msg, m.keys.Select):
		err = m.ctrl.Select(m.screen.playlist.Selected())

	case key.Matches(msg, m.keys.Up):
		m.screen.playlist.Move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.screen.playlist.Move(1)
		return m, nil

	default:
		return m, nil
	}

	m.report(err)
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if msg.Y == m.screen.player.ProgressRow() {
		if p, ok := m.screen.player.ProgressBar.RatioAt(msg.X); ok {
			m.report(m.ctrl.Seek(p))
		}
		return
	}

	if i, ok := m.screen.playlist.RowAt(msg.Y - m.screen.player.Lines()); ok {
		m.report(m.ctrl.Select(i))
	}
}

// report shows the outcome of a control action and refreshes the mixer.
func (m *Model) report(err error) {
	settings := m.ctrl.Settings()
	m.screen.player.Volume.Value = settings.Volume
	m.screen.player.Pan.Value = settings.Pan

	if err != nil {
		m.log.Warn().Err(err).Msg("control action failed")
		m.screen.player.Err = err
		return
	}
	m.screen.player.Err = nil
}

func step(v, delta, lo, hi float64) float64 {
	v = math.Round((v+delta)*10) / 10
	return math.Max(lo, math.Min(hi, v))
}

// updateViewSizes fits the screen into the terminal. The record gives up
// rows first so the title, the controls and a few playlist rows stay on
// screen and mouse rows keep matching what is drawn.
func (m *Model) updateViewSizes() {
	m.screen.player.SetWidth(m.width)
	m.help.Width = m.width
	helpLines := lipgloss.Height(m.help.View(m.keys))

	spare := m.height - views.FixedLines - 1 - minListRows - helpLines
	rows := max(0, min(m.maxRows, spare))
	m.screen.player.SetCanvasRows(rows)
	m.resizeCanvas(min(m.maxSide, 2*rows, m.width))

	list := m.height - m.screen.player.Lines() - 1 - helpLines
	m.screen.playlist.SetSize(m.width, max(1, list))
}

// resizeCanvas swaps in a square canvas of side pixels. The previous frame is
// dropped; the next tick redraws it.
func (m *Model) resizeCanvas(side int) {
	if side < 2 || int(m.canvas.Width()) == side {
		return
	}
	m.canvas = render.NewGG(side, side)
	m.screen.player.Canvas = ""
}

// View renders the UI
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.screen.player.View(),
		m.screen.playlist.View(),
		m.help.View(m.keys),
	)
}

// Run starts the bubbletea program. Cancelling ctx ends it like quitting.
func Run(ctx context.Context, opts Options) error {
	return run(ctx, opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func run(ctx context.Context, opts Options, extra ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(opts), append([]tea.ProgramOption{tea.WithContext(ctx)}, extra...)...)
	_, err := p.Run()
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		opts.Controller.Stop()
	default:
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
