package engine

import "strings"

// Mask is the controller state sampled once per tick.
type Mask uint32

// Controller bits. Other bits are ignored.
const (
	KeyLeft Mask = 1 << iota
	KeyUp
	KeyRight
	KeyDown
	KeyReset
)

// Has reports whether every bit of k is set in m.
func (m Mask) Has(k Mask) bool {
	return m&k == k
}

// String lists the set controller bits, e.g. "left|down".
func (m Mask) String() string {
	names := []struct {
		key  Mask
		name string
	}{
		{KeyLeft, "left"},
		{KeyUp, "up"},
		{KeyRight, "right"},
		{KeyDown, "down"},
		{KeyReset, "reset"},
	}
	var parts []string
	for _, n := range names {
		if m.Has(n.key) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Clock reports elapsed milliseconds since an arbitrary, fixed epoch.
type Clock interface {
	Now() uint32
}

// InputSource reports the current controller state.
type InputSource interface {
	Input() Mask
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() uint32

// Now calls f.
func (f ClockFunc) Now() uint32 { return f() }

// InputFunc adapts a plain function to InputSource.
type InputFunc func() Mask

// Input calls f.
func (f InputFunc) Input() Mask { return f() }

// repeat slots, evaluated in this order every tick
const (
	slotLeft = iota
	slotRight
	slotRotate
	slotDown
	slotCount
)

// autoRepeat decides whether a held key fires this tick. A fresh press fires
// at once and arms the slow delay; a held key fires again once now passes the
// armed deadline, re-arming with the given fast delay.
func (e *Engine) autoRepeat(slot int, key, mask Mask, now, fast uint32) bool {
	if !mask.Has(key) {
		return false
	}
	if !e.prevMask.Has(key) {
		e.repeatAt[slot] = now + e.timing.RepeatSlow
		return true
	}
	if now > e.repeatAt[slot] {
		e.repeatAt[slot] = now + fast
		return true
	}
	return false
}
