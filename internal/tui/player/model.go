// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/player"
	"github.com/hazadus/fb24/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

// Controller часть плеера, нужная экрану воспроизведения
type Controller interface {
	Play(rc io.ReadCloser, name string, loops int) error
	Pause()
	IsPlaying() bool
	Progress() <-chan player.Status
	Done() <-chan struct{}
}

// Opener открывает трек библиотеки по имени
type Opener func(name string) (io.ReadCloser, error)

// Track трек, выбранный для воспроизведения
type Track struct {
	Name  string
	Label string
	Loops int
}

// GoBackMsg отправляется для возврата к списку треков
type GoBackMsg struct{}

// PlaybackStartedMsg отправляется, когда плеер принял трек.
// done - канал завершения именно этого воспроизведения.
type PlaybackStartedMsg struct {
	done  <-chan struct{}
	owner *Model
}

// ProgressMsg содержит обновления прогресса воспроизведения
// owner - экран, запустивший прослушивание; чужие сообщения игнорируются.
type ProgressMsg struct {
	Status player.Status
	owner  *Model
}

// PlaybackFinishedMsg отправляется при завершении воспроизведения
type PlaybackFinishedMsg struct {
	owner *Model
}

// PlaybackErrorMsg отправляется при ошибке воспроизведения
type PlaybackErrorMsg struct {
	Error error
}

// Model представляет модель экрана воспроизведения
type Model struct {
	track       Track
	player      Controller
	open        Opener
	bindings    control.Bindings
	progressBar progress.Model
	done        <-chan struct{}
	status      player.Status
	isPlaying   bool
	error       error
	width       int
	height      int
}

// NewModel создает модель экрана для трека и общего плеера
func NewModel(track Track, p Controller, open Opener, bindings control.Bindings) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	if track.Label == "" {
		track.Label = track.Name
	}

	return &Model{
		track:       track,
		player:      p,
		open:        open,
		bindings:    bindings,
		progressBar: prog,
	}
}

// Init запускает воспроизведение. Прогресс слушается после PlaybackStartedMsg.
func (m *Model) Init() tea.Cmd {
	return m.startPlayback()
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = max(10, min(60, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, goBack
		}
		switch m.bindings.Resolve(msg.String()) {
		case control.Quit:
			// Воспроизведение продолжается, возвращаемся к списку
			return m, goBack

		case control.Pause:
			m.player.Pause()
			m.isPlaying = m.player.IsPlaying()
			return m, nil
		}

	case PlaybackStartedMsg:
		if msg.owner != m {
			return m, nil
		}
		m.done = msg.done
		m.isPlaying = true
		m.error = nil
		return m, m.listenForProgress()

	case ProgressMsg:
		if msg.owner != m {
			return m, nil
		}
		m.status = msg.Status
		m.isPlaying = msg.Status.IsPlaying

		var percent float64
		if msg.Status.Total > 0 {
			percent = float64(msg.Status.Current) / float64(msg.Status.Total)
		}

		return m, tea.Batch(
			m.progressBar.SetPercent(percent),
			m.listenForProgress(),
		)

	case PlaybackFinishedMsg:
		if msg.owner != m {
			return m, nil
		}
		m.isPlaying = false
		return m, goBack

	case PlaybackErrorMsg:
		m.error = msg.Error
		m.isPlaying = false
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	back := fmt.Sprintf("Нажмите '%s' или 'esc' для возврата", m.bindings.Quit)

	if m.error != nil {
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("Ошибка воспроизведения"),
			errorStyle.Render(m.error.Error()),
			controlsStyle.Render(back),
		)
	}

	title := titleStyle.Render("Воспроизведение")
	trackInfo := trackInfoStyle.Render(fmt.Sprintf("%s\n%s", m.track.Label, m.track.Name))

	statusIcon := "⏸"
	if m.isPlaying {
		statusIcon = "▶"
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, formatStatus(m.isPlaying)))

	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatDuration(m.status.Current),
		utils.FormatDuration(m.status.Total),
	)

	controls := controlsStyle.Render(fmt.Sprintf(
		"%s: пауза/воспроизведение • %s/esc: назад к списку",
		m.bindings.Pause, m.bindings.Quit,
	))

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s",
		title,
		trackInfo,
		statusText,
		m.progressBar.View(),
		timeText,
		controls,
	)
}

// Track возвращает трек экрана
func (m *Model) Track() Track {
	return m.track
}

// startPlayback открывает трек и передает его плееру
func (m *Model) startPlayback() tea.Cmd {
	return func() tea.Msg {
		rc, err := m.open(m.track.Name)
		if err != nil {
			return PlaybackErrorMsg{Error: err}
		}
		if err := m.player.Play(rc, m.track.Name, m.track.Loops); err != nil {
			return PlaybackErrorMsg{Error: err}
		}
		return PlaybackStartedMsg{done: m.player.Done(), owner: m}
	}
}

// listenForProgress слушает обновления прогресса от плеера
func (m *Model) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case status, ok := <-m.player.Progress():
			if !ok {
				return PlaybackFinishedMsg{owner: m}
			}
			return ProgressMsg{Status: status, owner: m}

		case <-m.done:
			return PlaybackFinishedMsg{owner: m}
		}
	}
}

func goBack() tea.Msg {
	return GoBackMsg{}
}

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}
