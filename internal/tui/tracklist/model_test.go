package tracklist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/fb24/internal/control"
	"github.com/hazadus/fb24/internal/viewport"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(names ...string) *Model {
	return NewModel("Треки", names, control.DefaultBindings(), viewport.Clamp)
}

func TestNewModel(t *testing.T) {
	model := newTestModel("a.mp3", "b.mp3")

	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.list.Len() != 2 {
		t.Fatalf("Expected 2 items, got %d", model.list.Len())
	}
	if model.list.RowHeight() != 1 {
		t.Errorf("Высота строки в терминале должна быть 1, получено %d", model.list.RowHeight())
	}
	if model.Selected() != 0 {
		t.Errorf("Изначально должна быть выделена первая строка, получено %d", model.Selected())
	}
}

func TestNavigation(t *testing.T) {
	model := newTestModel("a.mp3", "b.mp3", "c.mp3")

	model, _ = model.Update(runes("j"))
	model, _ = model.Update(runes("j"))
	if model.Selected() != 2 {
		t.Errorf("Expected selection 2, got %d", model.Selected())
	}

	// Последняя строка: выделение не должно уходить дальше
	model, _ = model.Update(runes("j"))
	if model.Selected() != 2 {
		t.Errorf("Выделение должно остаться на 2, получено %d", model.Selected())
	}

	model, _ = model.Update(runes("k"))
	if model.Selected() != 1 {
		t.Errorf("Expected selection 1, got %d", model.Selected())
	}
}

func TestQuit(t *testing.T) {
	model := newTestModel("a.mp3")

	model, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Fatal("Expected quit command for 'q' key")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ожидалась команда tea.Quit")
	}
	if !strings.Contains(model.View(), "До свидания!") {
		t.Error("После выхода должно отображаться прощание")
	}
}

func TestPlaySelected(t *testing.T) {
	model := newTestModel("a.mp3", "b.mp3")
	model, _ = model.Update(runes("j"))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected command for enter key")
	}
	msg, ok := cmd().(TrackSelectedMsg)
	if !ok {
		t.Fatal("Ожидалось сообщение TrackSelectedMsg")
	}
	if msg.Index != 1 || msg.Name != "b.mp3" {
		t.Errorf("Неверный выбранный трек: %+v", msg)
	}
}

func TestPlayEmptyList(t *testing.T) {
	model := newTestModel()

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Для пустого списка не должно быть команды воспроизведения")
	}
	if !strings.Contains(model.View(), "(пусто)") {
		t.Error("Пустой список должен отображаться как (пусто)")
	}
}

func TestPause(t *testing.T) {
	model := newTestModel("a.mp3")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("Expected command for space key")
	}
	if _, ok := cmd().(PauseMsg); !ok {
		t.Error("Ожидалось сообщение PauseMsg")
	}
}

func TestViewScrollsWithSelection(t *testing.T) {
	names := []string{"00.mp3", "01.mp3", "02.mp3", "03.mp3", "04.mp3", "05.mp3", "06.mp3", "07.mp3"}
	model := newTestModel(names...)

	// Область просмотра на 4 строки
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 4 + chrome})
	for i := 0; i < 6; i++ {
		model, _ = model.Update(runes("j"))
	}

	view := model.View()
	if strings.Contains(view, "00.mp3") {
		t.Error("Первая строка должна уйти за верх области просмотра")
	}
	for _, name := range []string{"04.mp3", "05.mp3", "06.mp3", "07.mp3"} {
		if !strings.Contains(view, name) {
			t.Errorf("Строка %s должна быть видна", name)
		}
	}
}

func TestPlayingMark(t *testing.T) {
	model := newTestModel("a.mp3", "b.mp3")
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	model.SetPlaying("b.mp3")

	if !strings.Contains(model.View(), "♪ b.mp3") {
		t.Error("Играющий трек должен быть отмечен")
	}
}
