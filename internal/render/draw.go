package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hazadus/fb24/internal/viewport"
)

// Padding отступ текста от рамки и выделения
const Padding = 2

var (
	Background = color.RGBA{0, 0, 0, 255}
	Highlight  = color.RGBA{128, 128, 128, 255}
	Frame      = color.RGBA{255, 255, 255, 255}
)

// DrawBlock рисует выделение, видимые строки и рамку списка от точки (x, y)
func DrawBlock(screen *ebiten.Image, x, y int, block *viewport.Model[*ebiten.Image], border viewport.BorderMode) {
	layout := block.Layout(x, y, Padding, border)

	if !layout.Highlight.Empty() {
		r := layout.Highlight
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), Highlight, false)
	}

	for _, p := range layout.Rows {
		row, ok := block.Row(p.Index)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p.Rect.Min.X), float64(p.Rect.Min.Y))
		screen.DrawImage(row.Item, op)
	}

	b := layout.Border
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), 1, Frame, false)
}

// Release освобождает изображения строк
func Release(block *viewport.Model[*ebiten.Image]) {
	for _, r := range block.Rows() {
		r.Item.Deallocate()
	}
}
