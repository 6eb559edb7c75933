// Package device implements the host-facing audio boundary: a ring with
// one circular buffer per channel (not interleaved, not double-buffered)
// connecting the node graph's Speaker/Mic
// sink and source operations to a real sound card. The ring itself is
// plain, build-tag-free Go so it can be exercised headless under test;
// only the PortAudio stream wiring in portaudio.go is gated behind the
// "device" build tag, since github.com/gordonklaus/portaudio requires
// cgo and a system PortAudio install neither available nor desired in a
// plain `go test ./...` run.
package device

import (
	"sync"

	"zikichombo.org/sound"
)

// DefaultForm is the sample rate/channel count a Ring assumes when a host
// doesn't otherwise specify one: CD-quality stereo (sound.StereoCd()).
var DefaultForm = sound.StereoCd()

// Ring is a fixed-capacity, per-channel sample ring buffer carrying its
// own sound.Form, the same sample-rate/channel-count vocabulary a
// sound.Source/Sink uses for its InForm/OutForm, so a Speaker/Mic pair and
// the device they're bound to can be checked for format agreement without
// the core graph inventing a parallel "format" type. It implements both
// ops.RingWriter and ops.RingReader, so it can sit on either side of a
// Speaker or Mic node — as the output device's staging buffer or as a
// loopback/test double standing in for live hardware.
type Ring struct {
	mu       sync.Mutex
	form     sound.Form
	channels [][]float32
	write    []int
	read     []int
}

// NewRing allocates a Ring for form's channel count, with the given
// per-channel capacity (in samples).
func NewRing(form sound.Form, capacity int) *Ring {
	numChannels := form.Channels()
	r := &Ring{
		form:     form,
		channels: make([][]float32, numChannels),
		write:    make([]int, numChannels),
		read:     make([]int, numChannels),
	}
	for c := range r.channels {
		r.channels[c] = make([]float32, capacity)
	}
	return r
}

// Form returns the ring's sample rate and channel count.
func (r *Ring) Form() sound.Form { return r.form }

// WriteSample writes v to channel's next ring slot, wrapping at capacity.
// Writing past an unread sample simply overwrites it: the ring has no
// overflow signaling.
func (r *Ring) WriteSample(channel int, v float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if channel < 0 || channel >= len(r.channels) {
		return
	}
	buf := r.channels[channel]
	buf[r.write[channel]] = v
	r.write[channel] = (r.write[channel] + 1) % len(buf)
}

// ReadSample reads the next unread sample from channel, wrapping at
// capacity. Reading past the write cursor returns stale (previously
// written, or zero) data rather than blocking — callers needing
// underrun detection should track their own read/write distance.
func (r *Ring) ReadSample(channel int) float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if channel < 0 || channel >= len(r.channels) {
		return 0
	}
	buf := r.channels[channel]
	v := buf[r.read[channel]]
	r.read[channel] = (r.read[channel] + 1) % len(buf)
	return v
}

// Channels returns the ring's channel count.
func (r *Ring) Channels() int {
	return len(r.channels)
}
