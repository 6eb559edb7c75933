package nodegraph

// OutputPort is a node's single output channel. It holds either a scalar
// value or a lazily-allocated level-of-detail (LOD) buffer, and tracks
// whether anything has pulled from it since the last UI frame boundary
// (the "polled" flag, used by hosts to decide whether a node's output is
// worth displaying).
type OutputPort struct {
	scalar float32
	buf    []float32
	lod    float32

	polled bool

	text []byte
	name string
}

func newOutputPort() OutputPort {
	return OutputPort{lod: 1}
}

// SetScalar sets the port's scalar value directly. Used by ops that never
// produce a sample buffer (e.g. Add, Multiply).
func (o *OutputPort) SetScalar(v float32) {
	o.scalar = v
}

// Scalar returns the port's scalar value without marking it polled; once
// the port has a buffer, that is the buffer's last sample. Used internally
// when a downstream InputPort reads a single sample.
func (o *OutputPort) Scalar() float32 {
	if len(o.buf) > 0 {
		return o.buf[len(o.buf)-1]
	}
	return o.scalar
}

// Get returns at least minSize samples of buffered output, growing it as
// needed, and marks the port polled. A port that so far held only a scalar
// starts its buffer filled with that scalar; slots added to an existing
// buffer start at zero. lodSize is
// computed as ceil(minSize/lod): a producer running at lod 4 only needs to
// fill a quarter as many slots as a consumer pulling at full rate.
func (o *OutputPort) Get(minSize int32) []float32 {
	o.polled = true
	lodSize := minSize
	if o.lod > 1 {
		lodSize = int32((float32(minSize) + o.lod - 1) / o.lod)
	}
	if lodSize < 1 {
		lodSize = 1
	}
	if int32(len(o.buf)) < lodSize {
		grown := make([]float32, lodSize)
		if len(o.buf) == 0 {
			for i := range grown {
				grown[i] = o.scalar
			}
		}
		copy(grown, o.buf)
		o.buf = grown
	}
	return o.buf
}

// GetIterator returns a ValueIterator over at least minSize samples of
// this port's buffer, allocated at the given LOD. lod must be in
// [1, minSize]; callers violating this get a clamped lod instead of a
// panic, since LOD choice is a performance hint, not a correctness
// requirement.
func (o *OutputPort) GetIterator(minSize int32, lod float32) ValueIterator {
	if lod < 1 {
		lod = 1
	}
	if lod > float32(minSize) {
		lod = float32(minSize)
	}
	o.lod = lod
	buf := o.Get(minSize)
	return NewValueIterator(buf, lod)
}

// Size returns the current length of the backing buffer, or 0 if the port
// has never been asked for one.
func (o *OutputPort) Size() int32 {
	return int32(len(o.buf))
}

// IsPolled reports whether Get has been called since the last
// ResetPollState.
func (o *OutputPort) IsPolled() bool {
	return o.polled
}

// ResetPollState clears the polled flag. A host calls this once per UI
// frame, never once per audio block, so a node that only produced audio
// between two frame boundaries still reports as polled for that frame.
func (o *OutputPort) ResetPollState() {
	o.polled = false
}

// Reset discards the buffer, returning the port to pure-scalar mode.
func (o *OutputPort) Reset() {
	o.buf = nil
	o.scalar = 0
	o.text = nil
}

// Text returns the label last stored by SetText, for ops (e.g. a
// keyboard/MIDI event log node) that publish textual data. The text is
// kept in its own field, apart from the numeric buffer.
func (o *OutputPort) Text() string {
	return string(o.text)
}

// SetText packs s into the port's backing storage as raw bytes, exposed
// alongside (not instead of) the numeric buffer.
func (o *OutputPort) SetText(s string) {
	o.text = []byte(s)
}

// Name returns the port's display name, if set.
func (o *OutputPort) Name() string { return o.name }

// SetName sets the port's display name.
func (o *OutputPort) SetName(name string) { o.name = name }
