// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat возвращается для файла с неизвестным расширением
var ErrUnsupportedFormat = errors.New("неподдерживаемый формат")

// ErrInvalidLoops возвращается для количества повторов меньше LoopForever или 0
var ErrInvalidLoops = errors.New("недопустимое количество повторов")

// LoopForever количество повторов для бесконечного воспроизведения
const LoopForever = -1

// Status представляет текущий статус плеера
type Status struct {
	Current   time.Duration // Текущая позиция
	Total     time.Duration // Общая продолжительность (0 для потока неизвестной длины)
	IsPlaying bool
}

// Decode выбирает декодер по расширению имени
func Decode(rc io.ReadCloser, name string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext {
	case "mp3":
		streamer, format, err = mp3.Decode(rc)
	case "flac":
		streamer, format, err = flac.Decode(rc)
	case "wav":
		streamer, format, err = wav.Decode(rc)
	case "ogg", "oga":
		streamer, format, err = vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("ошибка декодирования %s: %w", strings.ToUpper(ext), err)
	}
	return streamer, format, nil
}

// Player управляет воспроизведением треков через speaker
type Player struct {
	progressChan chan Status
	doneChan     chan struct{}

	ctx        context.Context
	cancel     context.CancelFunc
	mutex      sync.RWMutex
	sampleRate beep.SampleRate // частота speaker, 0 до первой инициализации
	isPaused   bool
	current    string

	streamer   beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	source     io.Closer
	stopRender context.CancelFunc

	log zerolog.Logger
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer(log zerolog.Logger) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		log:          log,
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал текущего воспроизведения; он закрывается, когда трек доиграл.
// Каждый вызов Play заводит новый канал.
func (p *Player) Done() <-chan struct{} {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.doneChan
}

// ValidLoops проверяет количество повторов: LoopForever или положительное число
func ValidLoops(loops int) error {
	if loops == 0 || loops < LoopForever {
		return fmt.Errorf("%w: %d", ErrInvalidLoops, loops)
	}
	return nil
}

// Play начинает воспроизведение потока rc. Имя нужно для выбора декодера.
// loops: 1 - один раз, LoopForever - бесконечно. Плеер становится владельцем rc.
func (p *Player) Play(rc io.ReadCloser, name string, loops int) error {
	if err := ValidLoops(loops); err != nil {
		rc.Close()
		return err
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()
	p.drainProgress()

	streamer, format, err := Decode(rc, name)
	if err != nil {
		rc.Close()
		return err
	}

	// Инициализируем speaker (только один раз)
	if p.sampleRate == 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			rc.Close()
			return fmt.Errorf("ошибка инициализации аудиоустройства: %w", err)
		}
		p.sampleRate = format.SampleRate
		p.log.Debug().Int("sample_rate", int(format.SampleRate)).Msg("аудиоустройство открыто")
	}

	var s beep.Streamer = streamer
	if loops != 1 {
		s = beep.Loop(loops, streamer)
	}
	if format.SampleRate != p.sampleRate {
		s = beep.Resample(4, format.SampleRate, p.sampleRate, s)
	}

	p.streamer = streamer
	p.source = rc
	p.current = name
	p.isPaused = false
	p.ctrl = &beep.Ctrl{Streamer: s}

	done := make(chan struct{})
	p.doneChan = done
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		close(done)
	})))

	monitorCtx, stop := context.WithCancel(p.ctx)
	p.stopRender = stop
	go p.monitorProgress(monitorCtx, streamer, format)

	p.log.Info().Str("track", name).Int("loops", loops).Msg("воспроизведение начато")
	return nil
}

// Pause приостанавливает или возобновляет воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.isPaused = !p.isPaused
		p.ctrl.Paused = p.isPaused
		speaker.Unlock()
	}
}

// Stop останавливает воспроизведение
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.stopRender != nil {
		p.stopRender()
		p.stopRender = nil
	}

	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.source != nil {
		p.source.Close()
		p.source = nil
	}

	p.current = ""
	p.isPaused = false
}

// Close останавливает воспроизведение и закрывает аудиоустройство
func (p *Player) Close() error {
	p.cancel()
	p.Stop()

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.sampleRate != 0 {
		speaker.Close()
		p.sampleRate = 0
	}
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentTrack возвращает имя текущего трека или пустую строку
func (p *Player) CurrentTrack() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.current
}

// drainProgress выбрасывает статус предыдущего трека (должен вызываться под мьютексом)
func (p *Player) drainProgress() {
	for {
		select {
		case <-p.progressChan:
		default:
			return
		}
	}
}

// monitorProgress раз в секунду отправляет статус воспроизведения
func (p *Player) monitorProgress(ctx context.Context, streamer beep.StreamSeekCloser, format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()
			if ctx.Err() != nil {
				p.mutex.RUnlock()
				return
			}
			paused := p.isPaused
			speaker.Lock()
			status := Status{
				Current:   format.SampleRate.D(streamer.Position()),
				Total:     format.SampleRate.D(streamer.Len()),
				IsPlaying: !paused,
			}
			speaker.Unlock()
			p.mutex.RUnlock()

			select {
			case p.progressChan <- status:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}
