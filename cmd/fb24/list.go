package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/fb24/internal/library"
	"github.com/hazadus/fb24/internal/metadata"
	"github.com/hazadus/fb24/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the music directory",
		Long:  `Display the files of music_dir with artist, title, album and duration read from their tags.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listTracks(ctx)
		},
	}
}

func (app *Application) listTracks(ctx context.Context) error {
	src, err := app.source()
	if err != nil {
		return err
	}
	names, err := app.listNames(ctx, src)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Printf("📚 Каталог %s пуст.\n", src.Location())
		return nil
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(names))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-30s %-24s %-24s %-18s %-10s\n",
		"#", "Файл", "Исполнитель", "Название", "Альбом", "Длительность")
	fmt.Println(strings.Repeat("-", 116))

	dir, local := src.(*library.DirSource)
	extractor := metadata.NewExtractor()

	for i, name := range names {
		var (
			meta     metadata.TrackMetadata
			duration = "N/A"
		)
		if local {
			path := dir.Path(name)
			meta = extractor.ExtractFromFile(path)
			if d, err := extractor.GetDuration(path); err == nil {
				duration = utils.FormatDuration(d)
			} else {
				app.Logger.Debug().Err(err).Str("file", name).Msg("длительность не определена")
			}
		}

		fmt.Printf("%-4d %-30s %-24s %-24s %-18s %-10s\n",
			i+1,
			utils.TruncateString(name, 30),
			utils.TruncateString(meta.Artist, 24),
			utils.TruncateString(meta.Title, 24),
			utils.TruncateString(meta.Album, 18),
			duration)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'fb24 play [файл]' для воспроизведения трека")
	return nil
}
