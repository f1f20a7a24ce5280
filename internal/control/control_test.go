package control

import (
	"testing"

	"github.com/hazadus/fb24/internal/viewport"
)

func TestResolve(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		key      string
		expected Action
	}{
		{"j", Next},
		{"J", Next},
		{"k", Prev},
		{"q", Quit},
		{"enter", Play},
		{"Enter", Play},
		{" ", Pause},
		{"space", Pause},
		{"x", None},
		{"", None},
	}

	for _, test := range tests {
		if got := b.Resolve(test.key); got != test.expected {
			t.Errorf("Resolve(%q) = %s; expected %s", test.key, got, test.expected)
		}
	}
}

func TestResolveCustomBindings(t *testing.T) {
	b := Bindings{Next: "down", Prev: "up", Quit: "escape"}

	if b.Resolve("down") != Next || b.Resolve("up") != Prev || b.Resolve("escape") != Quit {
		t.Error("Пользовательские привязки не распознаны")
	}
	// Пустые привязки не должны совпадать с пустым именем клавиши
	if b.Resolve("enter") != None {
		t.Error("Enter без привязки должен давать None")
	}
}

func TestMachineTransitions(t *testing.T) {
	list := viewport.New[string](480, viewport.Clamp)
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		list.Add(name, 10, 20)
	}

	m := NewMachine(DefaultBindings(), list)
	if m.State() != Running {
		t.Fatal("Автомат должен начинать в состоянии Running")
	}

	m.Key("j")
	m.Key("j")
	if list.Selected() != 2 {
		t.Errorf("Ожидалось выделение 2, получено %d", list.Selected())
	}

	m.Key("k")
	if list.Selected() != 1 {
		t.Errorf("Ожидалось выделение 1, получено %d", list.Selected())
	}

	m.Key("z")
	if m.State() != Running || list.Selected() != 1 {
		t.Error("Неизвестная клавиша не должна менять состояние")
	}

	m.Key("q")
	if m.State() != Terminated {
		t.Error("После q автомат должен быть в состоянии Terminated")
	}

	m.Key("j")
	if list.Selected() != 1 {
		t.Error("После завершения клавиши не должны обрабатываться")
	}
}

func TestMachineTerminate(t *testing.T) {
	m := NewMachine(DefaultBindings(), viewport.New[string](480, viewport.Clamp))
	m.Terminate()
	if m.State() != Terminated {
		t.Error("Terminate должен переводить автомат в Terminated")
	}
}

func TestMachineCallbacks(t *testing.T) {
	m := NewMachine(DefaultBindings(), viewport.New[string](480, viewport.Clamp))

	played, paused := 0, 0
	m.OnPlay(func() { played++ })
	m.OnPause(func() { paused++ })

	m.Key("enter")
	m.Key(" ")
	m.Key(" ")

	if played != 1 {
		t.Errorf("Ожидался 1 вызов OnPlay, получено %d", played)
	}
	if paused != 2 {
		t.Errorf("Ожидалось 2 вызова OnPause, получено %d", paused)
	}
}
