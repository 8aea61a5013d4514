package artifact

import "bytes"

// Held is the change detector state: the last emitted encoding of each
// artifact kind. It is a value; Observe returns the successor state and the
// caller decides where it lives between cycles.
type Held struct {
	bodies [kindCount][]byte
	seen   [kindCount]bool
}

// Observe reports whether body differs from the last emitted body of kind.
// The first observation of a kind always emits.
func (h Held) Observe(kind Kind, body []byte) (Held, bool) {
	if int(kind) >= kindCount {
		return h, false
	}
	if h.seen[kind] && bytes.Equal(h.bodies[kind], body) {
		return h, false
	}
	h.bodies[kind] = bytes.Clone(body)
	h.seen[kind] = true
	return h, true
}

// Last returns the held body for kind.
func (h Held) Last(kind Kind) ([]byte, bool) {
	if int(kind) >= kindCount || !h.seen[kind] {
		return nil, false
	}
	return h.bodies[kind], true
}

// Forget drops the held body so the next observation emits again.
func (h Held) Forget(kind Kind) Held {
	if int(kind) < kindCount {
		h.bodies[kind] = nil
		h.seen[kind] = false
	}
	return h
}
