package nodegraph

import "sync/atomic"

var nodeIDSeq int32

// nextNodeID returns a process-wide unique, monotonically increasing node
// id, mirroring NodeGraphBase's static CreateUniqueId counter.
func nextNodeID() int32 {
	return atomic.AddInt32(&nodeIDSeq, 1)
}

// Node is one vertex of a processing graph: a bundle of input/output ports
// plus an embedded Operation that gives the ports meaning. Node itself
// knows nothing about what its Operation computes; it only enforces two
// idempotence contracts: a node's Operation runs at most once per
// ProcessSubgraph pass (diamond-dependency safety) and at most once per
// Tick count (frame idempotence).
type Node struct {
	id     int32
	typeID int32
	name   string

	inputs  []InputPort
	outputs []OutputPort

	op Operation

	processedThisPass bool
	hasTicked         bool
	lastTickCount     uint64

	visible  bool
	editable bool
}

// NewNode constructs a Node of the given schema type id, wired to op, and
// immediately runs op.Init to declare its ports.
func NewNode(typeID int32, op Operation) *Node {
	n := &Node{
		id:       nextNodeID(),
		typeID:   typeID,
		op:       op,
		visible:  true,
		editable: true,
	}
	op.Init(n)
	op.Reset(n)
	return n
}

// Id returns the node's unique id.
func (n *Node) Id() int32 { return n.id }

// TypeId returns the schema type id this node was created from.
func (n *Node) TypeId() int32 { return n.typeID }

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// SetName sets the node's display name.
func (n *Node) SetName(name string) { n.name = name }

// Operation returns the node's embedded Operation, for callers (group,
// schema) that need type-specific behavior beyond the generic Node API.
func (n *Node) Operation() Operation { return n.op }

// SetVisible/IsVisible and SetEditable/IsEditable control whether a host
// UI should show or allow editing this node; they carry no evaluation
// semantics.
func (n *Node) SetVisible(v bool)  { n.visible = v }
func (n *Node) IsVisible() bool    { return n.visible }
func (n *Node) SetEditable(e bool) { n.editable = e }
func (n *Node) IsEditable() bool   { return n.editable }

// SetNumInputs grows or shrinks the input port array, preserving existing
// ports by index.
func (n *Node) SetNumInputs(count int8) {
	n.inputs = resizeInputs(n.inputs, int(count))
}

// SetNumOutputs grows or shrinks the output port array, preserving
// existing ports by index.
func (n *Node) SetNumOutputs(count int8) {
	n.outputs = resizeOutputs(n.outputs, int(count))
}

func resizeInputs(cur []InputPort, n int) []InputPort {
	if len(cur) == n {
		return cur
	}
	grown := make([]InputPort, n)
	for i := range grown {
		grown[i] = newInputPort()
	}
	copy(grown, cur)
	return grown
}

func resizeOutputs(cur []OutputPort, n int) []OutputPort {
	if len(cur) == n {
		return cur
	}
	grown := make([]OutputPort, n)
	for i := range grown {
		grown[i] = newOutputPort()
	}
	copy(grown, cur)
	return grown
}

// NumInputs/NumOutputs return the current port counts.
func (n *Node) NumInputs() int8  { return int8(len(n.inputs)) }
func (n *Node) NumOutputs() int8 { return int8(len(n.outputs)) }

func (n *Node) validInput(c int8) bool  { return c >= 0 && int(c) < len(n.inputs) }
func (n *Node) validOutput(c int8) bool { return c >= 0 && int(c) < len(n.outputs) }

// Input returns the input port at c, or nil if out of range.
func (n *Node) Input(c int8) *InputPort {
	if !n.validInput(c) {
		return nil
	}
	return &n.inputs[c]
}

// Output returns the output port at c, or nil if out of range.
func (n *Node) Output(c int8) *OutputPort {
	if !n.validOutput(c) {
		return nil
	}
	return &n.outputs[c]
}

// SetInputNode connects input channel dstChan to read from srcNode's
// output channel srcChan. Returns false (and leaves the port untouched)
// if either channel index is out of range or the destination port was
// declared constant-only (OpBase.AddConstant) and so never accepts an
// upstream link.
func (n *Node) SetInputNode(dstChan int8, srcNode *Node, srcChan int8) bool {
	if !n.validInput(dstChan) || srcNode == nil || !srcNode.validOutput(srcChan) {
		return false
	}
	if n.inputs[dstChan].IsConstantOnly() {
		return false
	}
	n.inputs[dstChan].connectNode(srcNode, srcChan)
	return true
}

// SetInputConstant sets input channel dstChan to a clamped scalar
// constant. Returns false if dstChan is out of range.
func (n *Node) SetInputConstant(dstChan int8, v float32) bool {
	if !n.validInput(dstChan) {
		return false
	}
	n.inputs[dstChan].SetConstant(v)
	return true
}

// SetInputExternal binds input channel dstChan to a borrowed external
// pointer. Returns false if dstChan is out of range.
func (n *Node) SetInputExternal(dstChan int8, ptr *float32) bool {
	if !n.validInput(dstChan) {
		return false
	}
	n.inputs[dstChan].SetExternalPtr(ptr)
	return true
}

// ClearInput empties input channel c.
func (n *Node) ClearInput(c int8) {
	if n.validInput(c) {
		n.inputs[c].Clear()
	}
}

// SetInputBound installs a preset clamp range on input channel c.
func (n *Node) SetInputBound(c int8, bound BoundsPreset) {
	if n.validInput(c) {
		n.inputs[c].SetBoundsPreset(bound)
	}
}

// DetachInput clears every input port of n that currently reads from src
// (by node identity); external-pointer ports are left as they are. Called by
// a Group/Schema when removing src so that dangling references never
// survive the removal.
func (n *Node) DetachInput(src *Node) {
	for i := range n.inputs {
		n.inputs[i].detachIfSource(src, nil)
	}
}

// UpstreamSource returns the node feeding input channel c, or nil if c is
// out of range or not currently connected to an upstream node. Exposed
// for callers (schema's cycle check, serialize's link dump) that need to
// walk the dependency graph without access to InputPort's unexported
// fields.
func (n *Node) UpstreamSource(c int8) *Node {
	in := n.Input(c)
	if in == nil || in.kind != KindUpstream {
		return nil
	}
	return in.srcNode
}

// UpstreamSourceChannel returns the output channel index feeding input
// channel c, valid only when UpstreamSource(c) is non-nil.
func (n *Node) UpstreamSourceChannel(c int8) int8 {
	in := n.Input(c)
	if in == nil {
		return 0
	}
	return in.srcChan
}

// GetOutput returns the scalar value of output channel c, clamped by
// nothing (outputs are unclamped; clamping happens at the consuming
// InputPort). minSize is accepted for API symmetry with GetOutputBuffer
// but otherwise unused for the scalar path.
func (n *Node) GetOutput(c int8, minSize int32) float32 {
	o := n.Output(c)
	if o == nil {
		return 0
	}
	return o.Scalar()
}

// GetOutputBuffer returns at least minSize samples of output channel c's
// buffer, marking it polled.
func (n *Node) GetOutputBuffer(c int8, minSize int32) []float32 {
	o := n.Output(c)
	if o == nil {
		return nil
	}
	return o.Get(minSize)
}

// GetOutputSize returns the current buffer length of output channel c.
func (n *Node) GetOutputSize(c int8) int32 {
	o := n.Output(c)
	if o == nil {
		return 0
	}
	return o.Size()
}

// ClearProcessFlags resets the per-pass "already processed" flag on n and
// recursively on every upstream node reachable through its inputs. A
// Group calls this once before ProcessSubgraph on each of its sinks so
// that a node shared by two sinks in the same pass is still only
// processed once overall, not once per sink.
func (n *Node) ClearProcessFlags() {
	if !n.processedThisPass {
		return
	}
	n.processedThisPass = false
	for i := range n.inputs {
		if n.inputs[i].kind == KindUpstream && n.inputs[i].srcNode != nil {
			n.inputs[i].srcNode.ClearProcessFlags()
		}
	}
}

// ProcessSubgraph recursively processes every upstream node this node
// depends on, then this node's own Operation, for numSamples samples. It
// is idempotent within a single pass: a node reachable via two different
// paths in a diamond-shaped graph still runs its Operation exactly once,
// guarded by processedThisPass.
//
// If recompute is true, ClearProcessFlags is called first so a stale flag
// from a previous pass doesn't suppress this one.
func (n *Node) ProcessSubgraph(numSamples int32, recompute bool) {
	if recompute {
		n.ClearProcessFlags()
	}
	n.processOperation(numSamples)
}

func (n *Node) processOperation(numSamples int32) {
	if n.processedThisPass {
		return
	}
	for i := range n.inputs {
		if n.inputs[i].kind == KindUpstream && n.inputs[i].srcNode != nil {
			n.inputs[i].srcNode.processOperation(numSamples)
		}
	}
	n.op.Process(n, numSamples)
	n.processedThisPass = true
}

// Tick runs this node's Operation.Tick exactly once per tickCount value,
// recursing into upstream nodes first. Calling Tick twice with the same
// or a lower tickCount than last time is a no-op: frame-idempotent.
func (n *Node) Tick(tickCount uint64, elapsed float32) {
	if n.hasTicked && tickCount <= n.lastTickCount {
		return
	}
	for i := range n.inputs {
		if n.inputs[i].kind == KindUpstream && n.inputs[i].srcNode != nil {
			n.inputs[i].srcNode.Tick(tickCount, elapsed)
		}
	}
	n.op.Tick(n, tickCount, elapsed)
	n.lastTickCount = tickCount
	n.hasTicked = true
}

// Reset re-applies the operation's declared defaults and clears output
// buffers, without touching topology.
func (n *Node) Reset() {
	n.op.Reset(n)
	for i := range n.outputs {
		n.outputs[i].Reset()
	}
	n.processedThisPass = false
}

// IsOutputPolled reports whether output channel c has been read since the
// last ResetPollState.
func (n *Node) IsOutputPolled(c int8) bool {
	o := n.Output(c)
	return o != nil && o.IsPolled()
}

// ResetOutputPollStates clears the polled flag on every output channel. A
// host calls this once per UI frame.
func (n *Node) ResetOutputPollStates() {
	for i := range n.outputs {
		n.outputs[i].ResetPollState()
	}
}
