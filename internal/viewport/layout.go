package viewport

import (
	"fmt"
	"image"
	"strings"
)

// BorderMode определяет высоту рамки вокруг списка
type BorderMode int

const (
	// BorderContent рамка по высоте всех строк, включая невидимые
	BorderContent BorderMode = iota
	// BorderViewport рамка по высоте только видимых строк
	BorderViewport
)

// ParseBorderMode разбирает режим рамки из конфигурации
func ParseBorderMode(s string) (BorderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "content":
		return BorderContent, nil
	case "viewport":
		return BorderViewport, nil
	default:
		return BorderContent, fmt.Errorf("неизвестный режим рамки: %q", s)
	}
}

// Placement положение одной видимой строки на поверхности
type Placement struct {
	Index int // индекс строки во всем списке
	Rect  image.Rectangle
}

// Layout результат раскладки списка
type Layout struct {
	Highlight image.Rectangle // пустой, если выделенная строка не видна
	Rows      []Placement
	Border    image.Rectangle
}

// Layout раскладывает видимые строки от точки (x, y).
// Строки идут друг за другом по своей собственной высоте, текст сдвинут на padding.
func (m *Model[T]) Layout(x, y, padding int, border BorderMode) Layout {
	var out Layout

	top := m.TopVisible()
	sel := m.SelectedVisible()
	blockWidth := m.maxWidth + 2*padding

	cursor := y
	for i, r := range m.Visible() {
		rect := image.Rect(x+padding, cursor, x+padding+r.Width, cursor+r.Height)
		out.Rows = append(out.Rows, Placement{Index: top + i, Rect: rect})
		if i == sel {
			out.Highlight = image.Rect(x, cursor, x+blockWidth, cursor+r.Height)
		}
		cursor += r.Height
	}

	height := m.totalHeight
	if border == BorderViewport {
		height = cursor - y
	}
	out.Border = image.Rect(x, y, x+blockWidth, y+height)

	return out
}
