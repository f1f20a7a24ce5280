// Package render растеризует текст и рисует список на поверхности окна
package render

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/hazadus/fb24/internal/viewport"
)

// Typesetter один шрифт, один размер и один цвет для всех строк
type Typesetter struct {
	face  font.Face
	color color.Color
}

// NewTypesetter загружает TTF/OTF шрифт. Пустой путь дает встроенный шрифт 7x13.
func NewTypesetter(fontPath string, size float64, clr color.Color) (*Typesetter, error) {
	if fontPath == "" {
		return &Typesetter{face: basicfont.Face7x13, color: clr}, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения шрифта: %w", err)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шрифта %s: %w", fontPath, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания начертания: %w", err)
	}

	return &Typesetter{face: face, color: clr}, nil
}

// Measure возвращает ширину и высоту строки в пикселях
func (ts *Typesetter) Measure(s string) (int, int) {
	m := ts.face.Metrics()
	return font.MeasureString(ts.face, s).Ceil(), m.Height.Ceil()
}

// Text растеризует строку в изображение и возвращает его размеры
func (ts *Typesetter) Text(s string) (*ebiten.Image, int, int) {
	width, height := ts.Measure(s)

	// Изображение нулевой ширины создать нельзя
	img := ebiten.NewImage(max(width, 1), max(height, 1))
	text.Draw(img, s, ts.face, 0, ts.face.Metrics().Ascent.Ceil(), ts.color)

	return img, width, height
}

// Block растеризует все строки и собирает из них модель списка
func (ts *Typesetter) Block(lines []string, viewportHeight int, policy viewport.Policy) *viewport.Model[*ebiten.Image] {
	block := viewport.New[*ebiten.Image](viewportHeight, policy)
	for _, l := range lines {
		img, width, height := ts.Text(l)
		block.Add(img, width, height)
	}
	return block
}

// Close освобождает начертание шрифта
func (ts *Typesetter) Close() error {
	return ts.face.Close()
}
