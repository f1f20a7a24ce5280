// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/fb24/internal/player"
)

// ErrInvalid возвращается, если конфигурация не прошла проверку
var ErrInvalid = errors.New("некорректная конфигурация")

// WindowConfig параметры окна
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	X      int    `yaml:"x"` // отступ списка от левого края
	Y      int    `yaml:"y"` // отступ списка от верхнего края
}

// KeysConfig привязки клавиш
type KeysConfig struct {
	Next  string `yaml:"next"`
	Prev  string `yaml:"prev"`
	Quit  string `yaml:"quit"`
	Play  string `yaml:"play"`
	Pause string `yaml:"pause"`
}

// S3Config доступ к бакету, если music_dir указывает на s3://
type S3Config struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
}

// Config структура для хранения конфигурации приложения
type Config struct {
	MusicDir   string       `yaml:"music_dir"`
	Track      string       `yaml:"track"`
	Loops      int          `yaml:"loops"`
	FontPath   string       `yaml:"font_path"`
	FontSize   float64      `yaml:"font_size"`
	Foreground string       `yaml:"foreground"`
	Selection  string       `yaml:"selection"`
	Border     string       `yaml:"border"`
	LogLevel   string       `yaml:"log_level"`
	LogFile    string       `yaml:"log_file"`
	Window     WindowConfig `yaml:"window"`
	Keys       KeysConfig   `yaml:"keys"`
	S3         S3Config     `yaml:"s3"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	path, err := ExpandHome(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	// Раскрываем тильду в путях
	for _, p := range []*string{&config.MusicDir, &config.Track, &config.FontPath, &config.LogFile} {
		if *p, err = ExpandHome(*p); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// LoadOrDefault загружает конфигурацию; отсутствующий файл дает значения по умолчанию
func LoadOrDefault(filePath string) (*Config, error) {
	config, err := LoadConfig(filePath)
	if errors.Is(err, os.ErrNotExist) {
		config = Default()
		if config.MusicDir, err = ExpandHome(config.MusicDir); err != nil {
			return nil, err
		}
		return config, nil
	}
	return config, err
}

// Устанавливаем значения по умолчанию, если они не заданы
func (c *Config) applyDefaults() {
	if c.MusicDir == "" {
		c.MusicDir = "~/music"
	}
	if c.Loops == 0 {
		c.Loops = 1
	}
	if c.FontSize == 0 {
		c.FontSize = 24
	}
	if c.Foreground == "" {
		c.Foreground = "#00ffff"
	}
	if c.Selection == "" {
		c.Selection = "clamp"
	}
	if c.Border == "" {
		c.Border = "content"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Window.Title == "" {
		c.Window.Title = "fb2k24"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 480
	}
	if c.Keys.Next == "" {
		c.Keys.Next = "j"
	}
	if c.Keys.Prev == "" {
		c.Keys.Prev = "k"
	}
	if c.Keys.Quit == "" {
		c.Keys.Quit = "q"
	}
	if c.Keys.Play == "" {
		c.Keys.Play = "enter"
	}
	if c.Keys.Pause == "" {
		c.Keys.Pause = "space"
	}
}

// Validate проверяет значения, которые нельзя исправить значениями по умолчанию
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: размер окна %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("%w: размер шрифта %v", ErrInvalid, c.FontSize)
	}
	if err := player.ValidLoops(c.Loops); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := ParseColor(c.Foreground); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	keys := map[string]string{}
	for name, key := range map[string]string{
		"next": c.Keys.Next, "prev": c.Keys.Prev, "quit": c.Keys.Quit,
		"play": c.Keys.Play, "pause": c.Keys.Pause,
	} {
		k := strings.ToLower(key)
		if other, ok := keys[k]; ok {
			return fmt.Errorf("%w: клавиша %q назначена на %s и %s", ErrInvalid, key, other, name)
		}
		keys[k] = name
	}

	return nil
}

// ParseColor разбирает цвет в формате #rrggbb или #rrggbbaa
func ParseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	hex := strings.TrimPrefix(s, "#")

	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.New("неверная длина")
	}
	if err != nil {
		return c, fmt.Errorf("неверный цвет %q: %v", s, err)
	}
	return c, nil
}

// ExpandHome заменяет ведущую тильду домашним каталогом
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}
