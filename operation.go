package nodegraph

// Operation supplies a Node's type-specific behavior: its default port
// declarations, per-tick bookkeeping, and per-block sample processing.
// Concrete operations (package ops) embed OpBase and override Process and,
// where needed, Reset/Tick.
type Operation interface {
	// Init is called once, immediately after the owning Node is
	// constructed, to declare the node's input/output ports.
	Init(n *Node)
	// Reset re-applies declared bounds and fills empty inputs with their
	// declared defaults, without touching topology (upstream connections
	// and already-set values survive a Reset).
	Reset(n *Node)
	// Tick runs once per UI frame, before any Process call for that
	// frame. tickCount is a monotonically increasing frame counter;
	// elapsed is the wall-clock seconds since the previous tick.
	Tick(n *Node, tickCount uint64, elapsed float32)
	// Process runs once per audio block and is responsible for reading
	// this node's inputs and writing its outputs for numSamples samples.
	Process(n *Node, numSamples int32)
}

type inputDecl struct {
	chanIdx   int8
	bound     BoundsPreset
	min, max  float32
	custom    bool
	constOnly bool
	value     float32
	name      string
}

type outputDecl struct {
	chanIdx int8
	name    string
}

// OpBase is an embeddable helper that records declared default inputs and
// outputs (mirroring NodeGraphOp's AddInput/AddOutput/AddConstant) and
// reapplies them on Reset. Embedders get working Init/Reset/Tick for free
// and only need to implement Process.
type OpBase struct {
	inputDecls  []inputDecl
	outputDecls []outputDecl
}

// AddInput declares input channel idx with a preset bounds range and
// default constant value, applied whenever the node is constructed or
// Reset.
func (b *OpBase) AddInput(idx int8, name string, bound BoundsPreset, defaultValue float32) {
	b.inputDecls = append(b.inputDecls, inputDecl{chanIdx: idx, bound: bound, name: name, value: defaultValue})
}

// AddInputCustomBounds is AddInput with an explicit, non-preset clamp range.
func (b *OpBase) AddInputCustomBounds(idx int8, name string, min, max, defaultValue float32) {
	b.inputDecls = append(b.inputDecls, inputDecl{chanIdx: idx, bound: BoundsCustom, min: min, max: max, custom: true, name: name, value: defaultValue})
}

// AddConstant declares input channel idx the same way AddInput does, but
// marks it constant-only: a connect attempt targeting this channel is
// rejected. Used to distinguish a constant-only parameter, graying out
// its patch point in a UI, from a regular input a patch cable may still
// reach.
func (b *OpBase) AddConstant(idx int8, name string, bound BoundsPreset, defaultValue float32) {
	b.inputDecls = append(b.inputDecls, inputDecl{chanIdx: idx, bound: bound, name: name, value: defaultValue, constOnly: true})
}

// AddOutput declares output channel idx with a display name.
func (b *OpBase) AddOutput(idx int8, name string) {
	b.outputDecls = append(b.outputDecls, outputDecl{chanIdx: idx, name: name})
}

// ApplyDefaults re-applies every declared input bound, name and
// constant-only flag and every output name onto n's ports. A declared
// default value is written only into a port that is empty; a constant,
// pointer, array or link already on the port is kept. Embedders call this from their Reset override (or
// rely on OpBase.Reset if they have no extra state to reset).
func (b *OpBase) ApplyDefaults(n *Node) {
	for _, d := range b.inputDecls {
		p := n.Input(d.chanIdx)
		if p == nil {
			continue
		}
		if d.custom {
			p.SetBounds(d.min, d.max)
		} else {
			p.SetBoundsPreset(d.bound)
		}
		p.SetName(d.name)
		p.SetConstantOnly(d.constOnly)
		if p.IsEmpty() {
			p.SetConstant(d.value)
		}
	}
	for _, d := range b.outputDecls {
		o := n.Output(d.chanIdx)
		if o == nil {
			continue
		}
		o.SetName(d.name)
	}
}

// Init is a no-op by default; operations whose port count is fixed at
// construction (the common case) declare it via SetNumInputs/SetNumOutputs
// in the factory that builds them, then call AddInput/AddOutput and Reset
// in that same factory.
func (b *OpBase) Init(n *Node) {}

// Reset re-applies declared defaults. Stateful operations (filters,
// integrators) override this to also zero their internal state, calling
// b.ApplyDefaults(n) first.
func (b *OpBase) Reset(n *Node) {
	b.ApplyDefaults(n)
}

// Tick is a no-op by default.
func (b *OpBase) Tick(n *Node, tickCount uint64, elapsed float32) {}
