// Package host is the single-threaded runtime the ambient layers mount into:
// one-shot frame callbacks, a viewport with resize listeners, and pointer
// movement listeners. Window, terminal and framebuffer hosts drive it from
// their own loops; tests drive it directly.
package host

import "time"

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameCallback receives the time elapsed since the host started.
type FrameCallback func(now time.Duration)

type ResizeFunc func(width, height int)

type PointerFunc func(x, y float64)

type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

type Viewport interface {
	Size() (width, height int)
	OnResize(fn ResizeFunc) (remove func())
}

type Pointer interface {
	OnPointerMove(fn PointerFunc) (remove func())
}

// Runtime is everything a layer may attach to.
type Runtime interface {
	Scheduler
	Viewport
	Pointer
}

type frameReq struct {
	id FrameID
	cb FrameCallback
}

type listener[F any] struct {
	id int
	fn F
}

// Host implements Runtime. It is not safe for concurrent use; every call
// happens on the host loop.
type Host struct {
	width, height int

	lastFrame FrameID
	pending   []frameReq
	flushing  map[FrameID]bool

	lastListener int
	resize       []listener[ResizeFunc]
	pointer      []listener[PointerFunc]
}

func New(width, height int) *Host {
	return &Host{width: width, height: height}
}

func (h *Host) Size() (int, int) { return h.width, h.height }

// RequestFrame schedules cb for the next Advance. Requests made while
// callbacks are running wait for the following Advance.
func (h *Host) RequestFrame(cb FrameCallback) FrameID {
	h.lastFrame++
	h.pending = append(h.pending, frameReq{id: h.lastFrame, cb: cb})
	return h.lastFrame
}

func (h *Host) CancelFrame(id FrameID) {
	if h.flushing[id] {
		h.flushing[id] = false
		return
	}
	for i, r := range h.pending {
		if r.id == id {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many frame callbacks wait for the next Advance.
func (h *Host) Pending() int { return len(h.pending) }

// Advance runs the frame callbacks that were pending when it was called and
// returns how many ran.
func (h *Host) Advance(now time.Duration) int {
	batch := h.pending
	h.pending = nil
	h.flushing = make(map[FrameID]bool, len(batch))
	for _, r := range batch {
		h.flushing[r.id] = true
	}
	ran := 0
	for _, r := range batch {
		if !h.flushing[r.id] {
			continue
		}
		delete(h.flushing, r.id)
		r.cb(now)
		ran++
	}
	h.flushing = nil
	return ran
}

func (h *Host) OnResize(fn ResizeFunc) func() {
	id := h.nextListener()
	h.resize = append(h.resize, listener[ResizeFunc]{id: id, fn: fn})
	return func() { h.resize = removeListener(h.resize, id) }
}

// Resize updates the viewport and notifies every listener synchronously.
// Repeated calls are not coalesced.
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	for _, l := range append([]listener[ResizeFunc](nil), h.resize...) {
		l.fn(width, height)
	}
}

func (h *Host) OnPointerMove(fn PointerFunc) func() {
	id := h.nextListener()
	h.pointer = append(h.pointer, listener[PointerFunc]{id: id, fn: fn})
	return func() { h.pointer = removeListener(h.pointer, id) }
}

func (h *Host) MovePointer(x, y float64) {
	for _, l := range append([]listener[PointerFunc](nil), h.pointer...) {
		l.fn(x, y)
	}
}

// Listeners reports the number of attached resize and pointer listeners.
func (h *Host) Listeners() (resize, pointer int) {
	return len(h.resize), len(h.pointer)
}

func (h *Host) nextListener() int {
	h.lastListener++
	return h.lastListener
}

func removeListener[F any](ls []listener[F], id int) []listener[F] {
	out := ls[:0]
	for _, l := range ls {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}
