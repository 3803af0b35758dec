package input

import "strings"

// Virtual-key codes for the supported hold keys (Win32 values; the
// non-windows sampler ignores them).
const (
	vkShift = 0x10
	vkCtrl  = 0x11
	vkAlt   = 0x12
)

// KeyHold samples the pressed state of one configured key. It backs the
// animated capture loop's hold condition: while the key stays down, more
// frames are appended.
type KeyHold struct {
	vk int
}

// NewKeyHold builds a KeyHold for a key token ("shift", "ctrl", "alt").
// Unknown tokens fall back to shift.
func NewKeyHold(key string) *KeyHold {
	return &KeyHold{vk: parseKey(key)}
}

// Held reports whether the key is currently pressed. On platforms without
// a sampler it always reports false, so a capture run degenerates to the
// single initial frame.
func (k *KeyHold) Held() bool { return keyHeld(k.vk) }

func parseKey(key string) int {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "ctrl", "control":
		return vkCtrl
	case "alt":
		return vkAlt
	default:
		return vkShift
	}
}
