package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/fb24/internal/library"
	"github.com/hazadus/fb24/internal/logging"
	"github.com/hazadus/fb24/internal/metadata"
	"github.com/hazadus/fb24/internal/player"
	"github.com/hazadus/fb24/internal/utils"
)

var errNoTrack = errors.New("трек не указан и не задан в конфигурации")

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [track]",
		Short: "Play a track without opening the window",
		Long: `Play a file from music_dir, a local path, an http(s) URL or an s3:// key.
Without an argument the configured track is played.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			track := app.Config.Track
			if len(args) == 1 {
				track = app.resolveTrack(args[0])
			}
			if track == "" {
				return errNoTrack
			}
			return app.playTrack(ctx, track)
		},
	}
}

// resolveTrack ищет имя файла в music_dir, если это не путь и не ссылка
func (app *Application) resolveTrack(arg string) string {
	if library.IsURL(arg) || library.IsS3(arg) || filepath.IsAbs(arg) {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	if library.IsS3(app.Config.MusicDir) {
		return strings.TrimSuffix(app.Config.MusicDir, "/") + "/" + arg
	}
	return filepath.Join(app.Config.MusicDir, arg)
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

func (app *Application) playTrack(ctx context.Context, track string) error {
	p := player.NewPlayer(logging.Component(app.Logger, "player"))
	defer p.Close()

	rc, err := library.Open(ctx, track, app.s3Options())
	if err != nil {
		return fmt.Errorf("ошибка открытия трека %s: %w", track, err)
	}
	if err := p.Play(rc, track, app.Config.Loops); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}

	fmt.Printf("🎵 Сейчас играет:\n")
	if !library.IsURL(track) && !library.IsS3(track) {
		meta := metadata.NewExtractor().ExtractFromFile(track)
		fmt.Printf("   Исполнитель: %s\n", meta.Artist)
		fmt.Printf("   Название: %s\n", meta.Title)
		if meta.Album != "" {
			fmt.Printf("   Альбом: %s\n", meta.Album)
		}
	} else {
		fmt.Printf("   %s\n", track)
	}
	fmt.Println()
	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	enableRawMode()
	defer disableRawMode()

	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				return
			}
			if char == ' ' || char == '\n' || char == '\r' {
				p.Pause()
			}
		}
	}()

	for {
		select {
		case status := <-p.Progress():
			displayProgress(status)
		case <-p.Done():
			fmt.Println("\n✅ Воспроизведение завершено")
			return nil
		case <-ctx.Done():
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			p.Stop()
			return nil
		}
	}
}

// displayProgress отображает прогресс воспроизведения в одной строке
func displayProgress(status player.Status) {
	statusIcon := "▶️"
	if !status.IsPlaying {
		statusIcon = "⏸️"
	}

	if status.Total > 0 {
		percent := float64(status.Current) / float64(status.Total) * 100
		fmt.Printf("\r\033[K%s  %.1f%% | %s / %s",
			statusIcon,
			percent,
			utils.FormatDuration(status.Current),
			utils.FormatDuration(status.Total))
		return
	}

	fmt.Printf("\r\033[K%s  %s", statusIcon, utils.FormatDuration(status.Current))
}
