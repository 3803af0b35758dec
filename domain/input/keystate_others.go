//go:build !windows

package input

// No portable key-state sampler; report not-held so runs produce the
// initial frame only.
func keyHeld(vk int) bool { return false }
