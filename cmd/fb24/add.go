package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/fb24/internal/library"
	"github.com/hazadus/fb24/internal/metadata"
	"github.com/hazadus/fb24/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add [file path]",
		Short: "Add a local file to the music directory",
		Long:  `Copy a local audio file into music_dir, or upload it when music_dir is an s3:// prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки (10 минут)
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.addTrack(uploadCtx, args[0])
		},
	}
}

// addTrack добавляет файл в фонотеку с отображением прогресса
func (app *Application) addTrack(ctx context.Context, filePath string) error {
	src, err := app.source()
	if err != nil {
		return err
	}
	dst, ok := src.(library.Importer)
	if !ok {
		return fmt.Errorf("в фонотеку %s нельзя добавлять треки", src.Location())
	}

	meta := metadata.NewExtractor().ExtractFromFile(filePath)

	fmt.Printf("📤 Добавляем трек в %s:\n", src.Location())
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Трек: %s\n", meta.Label())
	fmt.Println()

	startTime := time.Now()
	location, err := library.ImportFile(ctx, dst, filePath, func(done, total int64) {
		if total <= 0 {
			return
		}
		elapsed := time.Since(startTime)
		speed := float64(done) / max(elapsed.Seconds(), 0.001)
		fmt.Printf("\r📊 Прогресс: %.1f%% | %s / %s | Скорость: %s/s",
			float64(done)/float64(total)*100,
			utils.FormatFileSize(done),
			utils.FormatFileSize(total),
			utils.FormatFileSize(int64(speed)))
	})
	if err != nil {
		return fmt.Errorf("ошибка добавления файла: %w", err)
	}

	fmt.Printf("\n✅ Трек добавлен: %s\n", location)
	app.Logger.Info().Str("file", filePath).Str("location", location).Msg("трек добавлен")
	return nil
}
