package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shelfview/internal/engine/camera"
	"github.com/Faultbox/shelfview/internal/engine/input"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/selector"
)

// navKey maps arrow scancodes to navigation keys.
func navKey(sc sdl.Scancode) navigation.Key {
	switch sc {
	case sdl.SCANCODE_UP:
		return navigation.KeyUp
	case sdl.SCANCODE_DOWN:
		return navigation.KeyDown
	case sdl.SCANCODE_LEFT:
		return navigation.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return navigation.KeyRight
	}
	return navigation.KeyNone
}

// keyEvent converts an arrow key press for the selector.
func keyEvent(ev input.Event) selector.KeyEvent {
	return selector.KeyEvent{
		Key:  navKey(ev.Key),
		Mods: navigation.Modifiers{Shift: ev.Mods.Shift, Ctrl: ev.Mods.Ctrl},
	}
}

// floorKey maps the number row to floor indices: 1 is floor 0.
func floorKey(sc sdl.Scancode) (int, bool) {
	if sc >= sdl.SCANCODE_1 && sc <= sdl.SCANCODE_9 {
		return int(sc - sdl.SCANCODE_1), true
	}
	return 0, false
}

// toggleKey flips the animation toggle bound to sc: F floors, G groups,
// H shelves.
func toggleKey(sc sdl.Scancode, t selector.Toggles) (selector.Toggles, bool) {
	switch sc {
	case sdl.SCANCODE_F:
		t.Floor = !t.Floor
	case sdl.SCANCODE_G:
		t.Group = !t.Group
	case sdl.SCANCODE_H:
		t.Shelf = !t.Shelf
	default:
		return t, false
	}
	return t, true
}

// heldKeys samples the free-movement keys.
func heldKeys(held func(sdl.Scancode) bool) camera.HeldKeys {
	return camera.HeldKeys{
		W: held(sdl.SCANCODE_W),
		A: held(sdl.SCANCODE_A),
		S: held(sdl.SCANCODE_S),
		D: held(sdl.SCANCODE_D),
		Q: held(sdl.SCANCODE_Q),
		E: held(sdl.SCANCODE_E),
	}
}
