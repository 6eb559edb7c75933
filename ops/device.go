package ops

import "github.com/wiresound/nodegraph"

// RingWriter is satisfied by a device-facing ring buffer that accepts
// audio samples, one channel at a time, produced by a Speaker node. The
// device package's Ring implements this.
type RingWriter interface {
	WriteSample(channel int, v float32)
}

// Speaker is a sink operation: it pulls its single input buffer each
// block and writes it sample-by-sample into an external ring buffer,
// wrapping at the ring's capacity. It produces no output of its own — a
// Group registers it with AddSink so ProcessSubgraph reaches it every
// block regardless of whether anything reads an "output" port.
type Speaker struct {
	nodegraph.OpBase

	channel int
	ring    RingWriter
}

// NewSpeaker builds a Speaker node writing to ring on the given channel.
// ring may be nil, in which case Process silently discards samples — this
// lets a graph be built and evaluated headless (e.g. under test) without
// a live audio device attached.
func NewSpeaker(channel int, ring RingWriter) *nodegraph.Node {
	op := &Speaker{channel: channel, ring: ring}
	n := nodegraph.NewNode(TypeSpeaker, op)
	n.SetNumInputs(1)
	n.SetNumOutputs(0)
	op.AddInput(0, "in", nodegraph.BoundsNeg1Pos1, 0)
	op.Reset(n)
	return n
}

func (op *Speaker) Process(n *nodegraph.Node, numSamples int32) {
	if op.ring == nil {
		return
	}
	buf := n.Input(0).GetBuffer(numSamples)
	it := nodegraph.NewValueIterator(buf, float32(numSamples)/float32(maxInt(len(buf), 1)))
	for i := int32(0); i < numSamples; i++ {
		op.ring.WriteSample(op.channel, it.Next())
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RingReader is satisfied by a device-facing ring buffer that a Mic node
// pulls captured samples from.
type RingReader interface {
	ReadSample(channel int) float32
}

// Mic is a source operation: it fills its single output buffer by
// reading numSamples consecutive values from an external ring buffer.
type Mic struct {
	nodegraph.OpBase

	channel int
	ring    RingReader
}

func NewMic(channel int, ring RingReader) *nodegraph.Node {
	op := &Mic{channel: channel, ring: ring}
	n := nodegraph.NewNode(TypeMic, op)
	n.SetNumInputs(0)
	n.SetNumOutputs(1)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Mic) Process(n *nodegraph.Node, numSamples int32) {
	buf := n.Output(0).Get(numSamples)
	for i := int32(0); i < numSamples && int(i) < len(buf); i++ {
		if op.ring != nil {
			buf[i] = op.ring.ReadSample(op.channel)
		} else {
			buf[i] = 0
		}
	}
}
