//go:build windows

package input

import "golang.org/x/sys/windows"

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// keyHeld reports whether the virtual key is down right now. The high bit
// of GetAsyncKeyState carries the current pressed state.
func keyHeld(vk int) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return state&0x8000 != 0
}
