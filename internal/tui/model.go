package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/fb24/internal/tui/player"
	"github.com/hazadus/fb24/internal/tui/tracklist"
)

// screenType определяет тип текущего экрана
type screenType int

const (
	tracklistScreen screenType = iota
	playerScreen
)

// mainModel переключает экраны списка и воспроизведения
type mainModel struct {
	opts           Options
	currentScreen  screenType
	tracklistModel *tracklist.Model
	playerModel    *player.Model
	size           *tea.WindowSizeMsg
}

func newMainModel(opts Options) *mainModel {
	list := tracklist.NewModel(opts.Title, opts.Names, opts.Bindings, opts.Policy)
	list.SetPlaying(opts.Playing)

	return &mainModel{
		opts:           opts,
		currentScreen:  tracklistScreen,
		tracklistModel: list,
	}
}

// Init инициализирует модель
func (m *mainModel) Init() tea.Cmd {
	return m.tracklistModel.Init()
}

// Update обрабатывает сообщения
func (m *mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Размер нужен обоим экранам: список пересчитывает область просмотра
		m.size = &msg
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		if m.playerModel != nil {
			m.playerModel.Update(msg)
		}
		return m, cmd

	case tracklist.TrackSelectedMsg:
		track := player.Track{Name: msg.Name, Loops: m.opts.Loops}
		if m.opts.Label != nil {
			track.Label = m.opts.Label(msg.Name)
		}
		m.opts.Log.Info().Int("index", msg.Index).Str("track", msg.Name).Msg("выбран трек")

		m.currentScreen = playerScreen
		m.playerModel = player.NewModel(track, m.opts.Player, m.opts.Open, m.opts.Bindings)
		if m.size != nil {
			m.playerModel.Update(*m.size)
		}
		m.tracklistModel.SetPlaying(msg.Name)
		return m, m.playerModel.Init()

	case tracklist.PauseMsg:
		m.opts.Player.Pause()
		return m, nil

	case player.GoBackMsg:
		m.currentScreen = tracklistScreen
		m.playerModel = nil
		return m, nil

	case player.PlaybackErrorMsg:
		m.opts.Log.Error().Err(msg.Error).Msg("ошибка воспроизведения")
		m.tracklistModel.SetPlaying("")
	}

	switch m.currentScreen {
	case tracklistScreen:
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		return m, cmd

	case playerScreen:
		if m.playerModel != nil {
			_, cmd := m.playerModel.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View отображает интерфейс
func (m *mainModel) View() string {
	switch m.currentScreen {
	case tracklistScreen:
		return m.tracklistModel.View()

	case playerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	default:
		return "Неизвестный экран"
	}
}
