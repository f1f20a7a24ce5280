// Package viewport содержит модель прокручиваемого списка строк с выделением
package viewport

import (
	"errors"
	"fmt"
	"strings"
)

// Policy определяет поведение выделения на границах списка
type Policy int

const (
	// Clamp останавливает выделение на первой и последней строке
	Clamp Policy = iota
	// Wrap переносит выделение с последней строки на первую и обратно
	Wrap
)

// ErrUnknownPolicy возвращается при разборе неизвестной политики выделения
var ErrUnknownPolicy = errors.New("неизвестная политика выделения")

// ParsePolicy разбирает строковое имя политики из конфигурации
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return Clamp, nil
	case "wrap":
		return Wrap, nil
	default:
		return Clamp, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p Policy) String() string {
	if p == Wrap {
		return "wrap"
	}
	return "clamp"
}

// Row одна строка списка: отрисованный элемент и его размеры
type Row[T any] struct {
	Item   T
	Width  int
	Height int
}

// Model хранит строки списка, индекс выделенной строки и высоту области просмотра.
// Item строки непрозрачен для модели: в окне это изображение, в терминале строка.
type Model[T any] struct {
	rows           []Row[T]
	selected       int
	rowHeight      int
	maxWidth       int
	totalHeight    int
	viewportHeight int
	policy         Policy
}

// New создает пустую модель для области просмотра заданной высоты
func New[T any](viewportHeight int, policy Policy) *Model[T] {
	return &Model[T]{
		rows:           make([]Row[T], 0),
		viewportHeight: viewportHeight,
		policy:         policy,
	}
}

// Add добавляет строку в конец списка.
// Высота строки становится высотой строки модели (побеждает последняя).
func (m *Model[T]) Add(item T, width, height int) {
	m.rows = append(m.rows, Row[T]{Item: item, Width: width, Height: height})
	m.totalHeight += height
	m.rowHeight = height
	if m.maxWidth < width {
		m.maxWidth = width
	}
}

// Len возвращает количество строк
func (m *Model[T]) Len() int {
	return len(m.rows)
}

// Rows возвращает все строки списка
func (m *Model[T]) Rows() []Row[T] {
	return m.rows
}

// Row возвращает строку по индексу
func (m *Model[T]) Row(i int) (Row[T], bool) {
	if i < 0 || i >= len(m.rows) {
		var zero Row[T]
		return zero, false
	}
	return m.rows[i], true
}

func (m *Model[T]) Selected() int    { return m.selected }
func (m *Model[T]) RowHeight() int   { return m.rowHeight }
func (m *Model[T]) MaxWidth() int    { return m.maxWidth }
func (m *Model[T]) TotalHeight() int { return m.totalHeight }
func (m *Model[T]) Policy() Policy   { return m.policy }

// SetViewportHeight меняет высоту области просмотра (терминал может менять размер)
func (m *Model[T]) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	m.viewportHeight = h
}

// VisibleRowCount возвращает количество строк, помещающихся в область просмотра
func (m *Model[T]) VisibleRowCount() int {
	if m.rowHeight <= 0 {
		return 0
	}
	return m.viewportHeight / m.rowHeight
}

// TopVisible возвращает индекс первой видимой строки.
// Выделение держится по центру, как только список прокручен больше чем на пол-экрана.
func (m *Model[T]) TopVisible() int {
	half := m.VisibleRowCount() / 2
	if m.selected > half {
		return m.selected - half
	}
	return 0
}

// SelectedVisible возвращает позицию выделенной строки внутри видимого окна
func (m *Model[T]) SelectedVisible() int {
	return m.selected - m.TopVisible()
}

// Visible возвращает строки, попадающие в текущее окно просмотра
func (m *Model[T]) Visible() []Row[T] {
	top := m.TopVisible()
	if top >= len(m.rows) {
		return nil
	}
	end := top + m.VisibleRowCount()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[top:end]
}

// VisibleHeight возвращает суммарную высоту видимых строк
func (m *Model[T]) VisibleHeight() int {
	h := 0
	for _, r := range m.Visible() {
		h += r.Height
	}
	return h
}

// Select устанавливает выделение с учетом политики
func (m *Model[T]) Select(i int) {
	n := len(m.rows)
	if n == 0 {
		m.selected = 0
		return
	}

	switch m.policy {
	case Wrap:
		i %= n
		if i < 0 {
			i += n
		}
	default:
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
	}
	m.selected = i
}

// Next сдвигает выделение на строку вниз
func (m *Model[T]) Next() {
	m.Select(m.selected + 1)
}

// Prev сдвигает выделение на строку вверх
func (m *Model[T]) Prev() {
	m.Select(m.selected - 1)
}

// SelectedRow возвращает выделенную строку; false для пустого списка
func (m *Model[T]) SelectedRow() (Row[T], bool) {
	return m.Row(m.selected)
}
