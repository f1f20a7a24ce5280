package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/hazadus/fb24/internal/config"
	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/library"
	"github.com/hazadus/fb24/internal/logging"
)

const (
	defaultConfigPath = "~/.fb24.yaml"
)

// Application хранит конфигурацию и журнал, общие для всех команд
type Application struct {
	Config *config.Config
	Logger zerolog.Logger

	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &Application{Logger: zerolog.Nop()}
	rootCmd := app.createRootCommand(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// loadConfig загружает конфигурацию. Файл по умолчанию может отсутствовать,
// явно указанный через --config - нет.
func (app *Application) loadConfig(explicit bool) error {
	var (
		cfg *config.Config
		err error
	)
	if explicit {
		cfg, err = config.LoadConfig(app.configPath)
	} else {
		cfg, err = config.LoadOrDefault(app.configPath)
	}
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if app.logLevel != "" {
		cfg.LogLevel = app.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	app.Config = cfg
	app.Logger = logging.NewConsole(level)
	return nil
}

// bindings возвращает привязки клавиш из конфигурации
func (app *Application) bindings() control.Bindings {
	k := app.Config.Keys
	return control.Bindings{
		Next:  k.Next,
		Prev:  k.Prev,
		Quit:  k.Quit,
		Play:  k.Play,
		Pause: k.Pause,
	}
}

// s3Options возвращает параметры доступа к S3 из конфигурации
func (app *Application) s3Options() library.S3Options {
	s := app.Config.S3
	return library.S3Options{
		Region:    s.Region,
		AccessKey: s.AccessKey,
		SecretKey: s.SecretKey,
		Endpoint:  s.Endpoint,
	}
}

// source открывает фонотеку music_dir
func (app *Application) source() (library.Source, error) {
	src, err := library.NewSource(app.Config.MusicDir, app.s3Options())
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия фонотеки %s: %w", app.Config.MusicDir, err)
	}
	return src, nil
}

// listNames перечисляет строки списка
func (app *Application) listNames(ctx context.Context, src library.Source) ([]string, error) {
	names, err := src.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения фонотеки %s: %w", src.Location(), err)
	}
	app.Logger.Debug().Str("music_dir", src.Location()).Int("count", len(names)).Msg("фонотека прочитана")
	return names, nil
}
