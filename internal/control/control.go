// Package control содержит конечный автомат цикла событий плеера
package control

import (
	"strings"
)

// Action действие, к которому приводит нажатие клавиши
type Action int

const (
	// None событие не меняет состояние
	None Action = iota
	// Next выделение вниз
	Next
	// Prev выделение вверх
	Prev
	// Quit завершение цикла
	Quit
	// Play воспроизведение выделенного трека
	Play
	// Pause пауза/воспроизведение
	Pause
)

func (a Action) String() string {
	switch a {
	case Next:
		return "next"
	case Prev:
		return "prev"
	case Quit:
		return "quit"
	case Play:
		return "play"
	case Pause:
		return "pause"
	default:
		return "none"
	}
}

// State состояние цикла событий
type State int

const (
	// Running цикл ждет следующего события
	Running State = iota
	// Terminated цикл завершен
	Terminated
)

// Bindings привязка имен клавиш к действиям
type Bindings struct {
	Next  string
	Prev  string
	Quit  string
	Play  string
	Pause string
}

// DefaultBindings возвращает привязки по умолчанию: j/k/q, enter, пробел
func DefaultBindings() Bindings {
	return Bindings{
		Next:  "j",
		Prev:  "k",
		Quit:  "q",
		Play:  "enter",
		Pause: "space",
	}
}

// Resolve переводит имя клавиши в действие без учета регистра.
// Пробел принимается и как " ", и как "space".
func (b Bindings) Resolve(key string) Action {
	key = normalize(key)
	if key == "" {
		return None
	}

	switch key {
	case normalize(b.Quit):
		return Quit
	case normalize(b.Next):
		return Next
	case normalize(b.Prev):
		return Prev
	case normalize(b.Play):
		return Play
	case normalize(b.Pause):
		return Pause
	}
	return None
}

func normalize(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Selector список с выделением, которым управляет цикл
type Selector interface {
	Next()
	Prev()
}

// Machine конечный автомат цикла событий
type Machine struct {
	state    State
	bindings Bindings
	list     Selector
	onPlay   func()
	onPause  func()
}

// NewMachine создает автомат в состоянии Running
func NewMachine(bindings Bindings, list Selector) *Machine {
	return &Machine{
		state:    Running,
		bindings: bindings,
		list:     list,
	}
}

// OnPlay задает обработчик действия Play
func (m *Machine) OnPlay(fn func()) { m.onPlay = fn }

// OnPause задает обработчик действия Pause
func (m *Machine) OnPause(fn func()) { m.onPause = fn }

// State возвращает текущее состояние
func (m *Machine) State() State {
	return m.state
}

// Key обрабатывает нажатие клавиши по имени
func (m *Machine) Key(name string) Action {
	action := m.bindings.Resolve(name)
	m.Apply(action)
	return action
}

// Terminate обрабатывает сигнал завершения (закрытие окна, SIGTERM)
func (m *Machine) Terminate() {
	m.state = Terminated
}

// Apply выполняет одно действие. В состоянии Terminated действия игнорируются.
func (m *Machine) Apply(action Action) {
	if m.state == Terminated {
		return
	}

	switch action {
	case Quit:
		m.state = Terminated
	case Next:
		m.list.Next()
	case Prev:
		m.list.Prev()
	case Play:
		if m.onPlay != nil {
			m.onPlay()
		}
	case Pause:
		if m.onPause != nil {
			m.onPause()
		}
	}
}
