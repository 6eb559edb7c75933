package nodegraph

import "math"

// InputKind tags the polymorphic content of an InputPort.
type InputKind int8

const (
	// KindEmpty is an unconnected input; reads return 0.
	KindEmpty InputKind = iota
	// KindConstant holds a single clamped float.
	KindConstant
	// KindExternalPtr dereferences a caller-owned, borrowed *float32.
	KindExternalPtr
	// KindConstantArray holds an owned slice written by the node's owner.
	KindConstantArray
	// KindUpstream reads a specific channel of another node's output.
	KindUpstream
)

// BoundsPreset names one of the canonical clamp ranges a port can declare.
type BoundsPreset int8

const (
	BoundsUnbounded BoundsPreset = iota
	Bounds01
	Bounds02
	BoundsNeg1Pos1
	Bounds0100
	BoundsCustom
)

// PresetBounds returns the (min, max) pair for a BoundsPreset. BoundsCustom
// returns (0, 0); callers supplying BoundsCustom must set min/max
// themselves via SetBounds.
func PresetBounds(p BoundsPreset) (float32, float32) {
	switch p {
	case Bounds01:
		return 0, 1
	case Bounds02:
		return 0, 2
	case BoundsNeg1Pos1:
		return -1, 1
	case Bounds0100:
		return 0, 100
	case BoundsUnbounded:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return 0, 0
	}
}

// InputPort is a single polymorphic input slot on a Node.
type InputPort struct {
	kind InputKind

	constant    float32
	externalPtr *float32
	array       []float32

	srcNode *Node
	srcChan int8

	boundMin, boundMax float32

	constantOnly bool
	name         string
}

func newInputPort() InputPort {
	min, max := PresetBounds(BoundsUnbounded)
	return InputPort{kind: KindEmpty, boundMin: min, boundMax: max}
}

// Clear resets the port to KindEmpty, detaching any upstream connection or
// external pointer. Constant/array contents are left untouched until
// overwritten rather than zeroed, so a port flipping kinds back and forth
// doesn't pay an allocation each time.
func (p *InputPort) Clear() {
	p.kind = KindEmpty
	p.srcNode = nil
	p.srcChan = 0
	p.externalPtr = nil
}

// IsEmpty reports whether the port is KindEmpty (no constant, pointer,
// array or upstream link). Node.SetInputNode does not consult it: a
// connect replaces whatever the port held.
func (p *InputPort) IsEmpty() bool {
	return p.kind == KindEmpty
}

// SetConstant sets the port to a clamped scalar constant.
func (p *InputPort) SetConstant(v float32) {
	p.kind = KindConstant
	p.constant = clamp(v, p.boundMin, p.boundMax)
}

// SetConstantArray copies vals into an owned backing array.
func (p *InputPort) SetConstantArray(vals []float32) {
	p.kind = KindConstantArray
	if cap(p.array) < len(vals) {
		p.array = make([]float32, len(vals))
	} else {
		p.array = p.array[:len(vals)]
	}
	copy(p.array, vals)
}

// SetExternalPtr binds the port to a borrowed external value. The node
// never frees it and requires it to outlive the node.
func (p *InputPort) SetExternalPtr(ptr *float32) {
	p.kind = KindExternalPtr
	p.externalPtr = ptr
}

// connectNode binds the port to an upstream node's output channel. It
// never validates range or occupancy itself — that is the caller's
// (Node.SetInputNode's) responsibility, since only the caller knows the
// destination's channel count.
func (p *InputPort) connectNode(src *Node, srcChan int8) {
	p.kind = KindUpstream
	p.srcNode = src
	p.srcChan = srcChan
}

// SetBounds installs an explicit custom clamp range.
func (p *InputPort) SetBounds(min, max float32) {
	p.boundMin, p.boundMax = min, max
	if p.kind == KindConstant {
		p.constant = clamp(p.constant, min, max)
	}
}

// SetBoundsPreset installs one of the canonical clamp ranges.
func (p *InputPort) SetBoundsPreset(preset BoundsPreset) {
	min, max := PresetBounds(preset)
	p.SetBounds(min, max)
}

// Name returns the port's display name, if set.
func (p *InputPort) Name() string { return p.name }

// SetName sets the port's display name.
func (p *InputPort) SetName(name string) { p.name = name }

// IsConstantOnly reports whether this port was declared via
// OpBase.AddConstant: a constant-only input that a connect attempt must
// reject (e.g. for UI graying of a parameter that never accepts an
// upstream link).
func (p *InputPort) IsConstantOnly() bool { return p.constantOnly }

// SetConstantOnly marks or unmarks the port as constant-only. Set by
// OpBase.ApplyDefaults for ports declared via AddConstant; not meant to
// be toggled directly by node operations.
func (p *InputPort) SetConstantOnly(v bool) { p.constantOnly = v }

// HasUpstream reports whether the port currently reads from another node.
func (p *InputPort) HasUpstream() bool {
	return p.kind == KindUpstream
}

// IsConstant reports whether the port currently holds a plain scalar
// constant (as opposed to empty, external, array, or upstream). Used by
// serialize.Save to decide which ports round-trip their current value.
func (p *InputPort) IsConstant() bool {
	return p.kind == KindConstant
}

// detachIfSource clears the port if it currently points at src (by node
// identity) or, for an external pointer input, at ptr. Used by
// Node.DetachInput during node removal.
func (p *InputPort) detachIfSource(src *Node, ptr *float32) bool {
	switch {
	case p.kind == KindUpstream && p.srcNode == src:
		p.Clear()
		return true
	case p.kind == KindExternalPtr && ptr != nil && p.externalPtr == ptr:
		p.Clear()
		return true
	}
	return false
}

// GetScalar returns the port's current value as a single clamped float.
// For KindUpstream it pulls the source's scalar output; for
// KindConstantArray it returns the first element.
func (p *InputPort) GetScalar() float32 {
	var v float32
	switch p.kind {
	case KindUpstream:
		if p.srcNode != nil {
			v = p.srcNode.GetOutput(p.srcChan, 1)
		}
	case KindConstant:
		v = p.constant
	case KindConstantArray:
		if len(p.array) > 0 {
			return clamp(p.array[0], p.boundMin, p.boundMax)
		}
	case KindExternalPtr:
		if p.externalPtr != nil {
			v = *p.externalPtr
		}
	case KindEmpty:
	}
	return clamp(v, p.boundMin, p.boundMax)
}

// GetBuffer returns n samples of backing data for the port, growing and
// filling owned storage as required. For KindUpstream it delegates to the
// source's output buffer (sized/lod-mapped by the source); for
// KindConstantArray it resizes the owned array. For KindConstant it
// returns a length-1 pseudo-buffer; operations wanting a per-sample
// constant stream must expand it themselves (e.g. via ValueIterator with
// lod<=1, which degenerates to a zero-step repeat of index 0).
func (p *InputPort) GetBuffer(n int32) []float32 {
	switch p.kind {
	case KindUpstream:
		if p.srcNode != nil {
			return p.srcNode.GetOutputBuffer(p.srcChan, n)
		}
		return nil
	case KindConstantArray:
		if int32(len(p.array)) < n {
			grown := make([]float32, n)
			copy(grown, p.array)
			p.array = grown
		}
		return p.array
	case KindConstant:
		return []float32{p.constant}
	case KindExternalPtr:
		if p.externalPtr != nil {
			return []float32{*p.externalPtr}
		}
		return []float32{0}
	default:
		return []float32{0}
	}
}

// Size returns the current length of the port's backing data (for
// upstream/array kinds) or 1 for scalar kinds.
func (p *InputPort) Size() int32 {
	switch p.kind {
	case KindUpstream:
		if p.srcNode != nil {
			return p.srcNode.GetOutputSize(p.srcChan)
		}
		return 1
	case KindConstantArray:
		return int32(len(p.array))
	default:
		return 1
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
