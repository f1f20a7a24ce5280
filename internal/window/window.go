// Package window владеет окном плеера и его циклом событий
package window

import (
	"context"
	"errors"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/render"
	"github.com/hazadus/fb24/internal/viewport"
)

// Options параметры окна и списка
type Options struct {
	Title    string
	Width    int
	Height   int
	X, Y     int
	Policy   viewport.Policy
	Border   viewport.BorderMode
	Bindings control.Bindings
}

// Game реализует ebiten.Game: список строк, выделение и перерисовка по вводу
type Game struct {
	ctx        context.Context
	opts       Options
	typesetter *render.Typesetter
	lines      []string
	block      *viewport.Model[*ebiten.Image]
	machine    *control.Machine
	onPlay     func(index int, name string)
	onPause    func()
	log        zerolog.Logger
}

// New создает окно для списка строк. Строки растеризуются на первом кадре.
func New(ctx context.Context, opts Options, typesetter *render.Typesetter, lines []string, log zerolog.Logger) *Game {
	return &Game{
		ctx:        ctx,
		opts:       opts,
		typesetter: typesetter,
		lines:      lines,
		log:        log,
	}
}

// OnPlay задает обработчик воспроизведения выделенной строки
func (g *Game) OnPlay(fn func(index int, name string)) { g.onPlay = fn }

// OnPause задает обработчик паузы
func (g *Game) OnPause(fn func()) { g.onPause = fn }

// Run открывает окно и блокируется до выхода из цикла событий
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	// Кадр рисуется только при вводе
	ebiten.SetFPSMode(ebiten.FPSModeVsyncOffMinimum)

	defer g.release()

	// Сигнал завершения должен разбудить цикл, который ждет ввода
	wake, stop := context.WithCancel(g.ctx)
	defer stop()
	go func() {
		<-wake.Done()
		ebiten.ScheduleFrame()
	}()

	err := ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// SetTitle меняет заголовок окна (например, на имя текущего трека)
func (g *Game) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (g *Game) build() {
	g.block = g.typesetter.Block(g.lines, g.opts.Height, g.opts.Policy)
	g.machine = control.NewMachine(g.opts.Bindings, g.block)
	g.machine.OnPlay(g.playSelected)
	g.machine.OnPause(func() {
		if g.onPause != nil {
			g.onPause()
		}
	})
	g.log.Debug().Int("rows", g.block.Len()).Int("visible", g.block.VisibleRowCount()).Msg("список построен")
}

func (g *Game) playSelected() {
	if g.onPlay == nil {
		return
	}
	i := g.block.Selected()
	if i < 0 || i >= len(g.lines) {
		return
	}
	g.onPlay(i, g.lines[i])
}

// Update обрабатывает ввод. Выход из цикла - ebiten.Termination.
func (g *Game) Update() error {
	if g.block == nil {
		g.build()
	}

	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		g.machine.Terminate()
	}

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		action := g.machine.Key(keyName(key))
		if action != control.None {
			g.log.Debug().Str("action", action.String()).Int("selected", g.block.Selected()).Msg("клавиша")
		}
	}

	if g.machine.State() == control.Terminated {
		return ebiten.Termination
	}
	return nil
}

// Draw очищает поверхность и рисует список
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	if g.block == nil {
		return
	}
	render.DrawBlock(screen, g.opts.X, g.opts.Y, g.block, g.opts.Border)
}

// Layout фиксирует логический размер поверхности
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

func (g *Game) release() {
	if g.block != nil {
		render.Release(g.block)
	}
	if err := g.typesetter.Close(); err != nil {
		g.log.Warn().Err(err).Msg("ошибка закрытия шрифта")
	}
}

// keyName переводит клавишу ebiten в имя, понятное control.Bindings
func keyName(key ebiten.Key) string {
	switch key {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return "enter"
	case ebiten.KeySpace:
		return "space"
	case ebiten.KeyEscape:
		return "escape"
	case ebiten.KeyArrowUp:
		return "up"
	case ebiten.KeyArrowDown:
		return "down"
	}
	return strings.ToLower(key.String())
}
