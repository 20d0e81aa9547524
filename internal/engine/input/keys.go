// Package input defines the abstract key set and per-frame key state
// shared by every frontend.
package input

import "strings"

// Key is a frontend-independent key or button.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEscape
	KeyF1
	KeyF2
	KeyP
	MouseLeft

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "unknown",
	KeyW:          "w",
	KeyA:          "a",
	KeyS:          "s",
	KeyD:          "d",
	KeyQ:          "q",
	KeyE:          "e",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	Key0:          "0",
	Key1:          "1",
	Key2:          "2",
	Key3:          "3",
	Key4:          "4",
	Key5:          "5",
	Key6:          "6",
	Key7:          "7",
	Key8:          "8",
	Key9:          "9",
	KeyEscape:     "escape",
	KeyF1:         "f1",
	KeyF2:         "f2",
	KeyP:          "p",
	MouseLeft:     "mouse_left",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey resolves a key name as written in config files.
// Matching is case-insensitive; "esc" is accepted for escape.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "esc" {
		return KeyEscape, true
	}
	for k := KeyW; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// DigitKey returns the key for digit n (0-9).
func DigitKey(n int) (Key, bool) {
	if n < 0 || n > 9 {
		return KeyUnknown, false
	}
	return Key0 + Key(n), true
}

// Digit reports the digit of a number key.
func (k Key) Digit() (int, bool) {
	if k >= Key0 && k <= Key9 {
		return int(k - Key0), true
	}
	return 0, false
}
