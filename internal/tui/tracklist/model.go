// Package tracklist содержит модель экрана списка треков для TUI
package tracklist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/viewport"
)

// chrome строки, занятые заголовком, рамкой и справкой
const chrome = 4

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).
				Background(lipgloss.Color("#808080")).
				Foreground(lipgloss.Color("#00ffff"))
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).PaddingLeft(2)
	quitTextStyle = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Index int
	Name  string
}

// PauseMsg отправляется по клавише паузы
type PauseMsg struct{}

// Model представляет модель экрана списка треков
type Model struct {
	list     *viewport.Model[string]
	machine  *control.Machine
	bindings control.Bindings
	title    string
	playing  string
	width    int
	quitting bool
}

// NewModel создает модель списка для имен файлов.
// Каждая строка занимает одну строку терминала.
func NewModel(title string, names []string, bindings control.Bindings, policy viewport.Policy) *Model {
	list := viewport.New[string](0, policy)
	for _, n := range names {
		list.Add(n, lipgloss.Width(n), 1)
	}

	return &Model{
		list:     list,
		machine:  control.NewMachine(bindings, list),
		bindings: bindings,
		title:    title,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selected возвращает индекс выделенной строки
func (m *Model) Selected() int {
	return m.list.Selected()
}

// SetPlaying отмечает трек, который сейчас звучит
func (m *Model) SetPlaying(name string) {
	m.playing = name
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetViewportHeight(msg.Height - chrome)
		return m, nil

	case tea.KeyMsg:
		switch m.machine.Key(msg.String()) {
		case control.Quit:
			m.quitting = true
			return m, tea.Quit

		case control.Play:
			row, ok := m.list.SelectedRow()
			if !ok {
				return m, nil
			}
			index := m.list.Selected()
			return m, func() tea.Msg {
				return TrackSelectedMsg{Index: index, Name: row.Item}
			}

		case control.Pause:
			return m, func() tea.Msg {
				return PauseMsg{}
			}
		}
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	width := m.list.MaxWidth()
	if m.list.Len() == 0 {
		width = lipgloss.Width("(пусто)")
	}

	rows := make([]string, 0, m.list.VisibleRowCount())
	top := m.list.TopVisible()
	for i, r := range m.list.Visible() {
		style := itemStyle
		if top+i == m.list.Selected() {
			style = selectedItemStyle
		}
		label := r.Item
		if r.Item == m.playing {
			label = "♪ " + label
		}
		rows = append(rows, style.Width(width+4).Render(label))
	}
	if m.list.Len() == 0 {
		rows = append(rows, itemStyle.Render("(пусто)"))
	}

	b.WriteString(frameStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) help() string {
	return strings.Join([]string{
		m.bindings.Next + "/" + m.bindings.Prev + ": навигация",
		m.bindings.Play + ": воспроизвести",
		m.bindings.Pause + ": пауза",
		m.bindings.Quit + ": выход",
	}, " • ")
}
