// Package tui содержит текстовый интерфейс плеера: список треков и экран воспроизведения
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/tui/player"
	"github.com/hazadus/fb24/internal/viewport"
)

// Options параметры TUI приложения
type Options struct {
	Title    string
	Names    []string
	Open     player.Opener
	Player   player.Controller
	Bindings control.Bindings
	Policy   viewport.Policy
	Loops    int
	// Label возвращает подпись трека по имени файла; nil - подпись равна имени
	Label func(name string) string
	// Playing имя трека, запущенного до старта интерфейса
	Playing string
	Log     zerolog.Logger
}

// App представляет основное TUI приложение
type App struct {
	opts Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(opts Options) *App {
	return &App{opts: opts}
}

// Run запускает TUI приложение и блокируется до выхода
func (a *App) Run() error {
	model := newMainModel(a.opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}
