package ops

import "github.com/wiresound/nodegraph"

// filterBase is the shared machinery behind the Lowpass/Highpass/
// Chamberlin2Pole state-variable filters: an InputManager driving input
// channel 1 (signal), 2 (cutoff) and 3 (resonance) through the slow-update
// batching clock, with channel 0 reserved as a sync/reset gate. Each
// concrete filter supplies its own processSignal and resetSignal.
type filterBase struct {
	nodegraph.OpBase

	im                 *nodegraph.InputManager
	updateRate         int32
	samplesUntilUpdate int32

	processSignal func(input, cutoff, resonance float32) float32
	resetSignal   func()
}

func newFilterBase() filterBase {
	return filterBase{
		im:         nodegraph.NewInputManager(),
		updateRate: 16,
	}
}

func (f *filterBase) declarePorts(n *nodegraph.Node, op *filterBase) {
	n.SetNumInputs(4)
	n.SetNumOutputs(1)
	f.AddInput(0, "sync", nodegraph.Bounds01, 0)
	f.AddInput(1, "signal", nodegraph.BoundsUnbounded, 0)
	f.AddInput(2, "cutoff", nodegraph.Bounds01, 0.5)
	f.AddInput(3, "resonance", nodegraph.Bounds01, 0.5)
	f.AddOutput(0, "out")
	f.im.SetSampled(1, 1)
	f.im.SetCustomInterpRwa(2, float32(f.updateRate), 0.35)
	f.im.SetCustomInterpRwa(3, float32(f.updateRate), 0.35)
}

func (f *filterBase) Reset(n *nodegraph.Node) {
	f.samplesUntilUpdate = 0
	f.OpBase.Reset(n)
	if f.resetSignal != nil {
		f.resetSignal()
	}
}

// process drives the batching clock: at every updateRate-sample boundary
// it re-pulls the node's current input values (NodeUpdate), then for
// every sample in between it advances the signal/cutoff/resonance slots
// and calls processSignal.
func (f *filterBase) process(n *nodegraph.Node, numSamples int32) {
	f.im.BatchUpdate(n, numSamples)
	sync := n.Input(0).GetScalar()
	if sync > 0.5 {
		n.Input(1).SetConstant(0)
	}
	buf := n.Output(0).Get(numSamples)

	nodegraph.RunBatches(f.updateRate, &f.samplesUntilUpdate, 0, numSamples,
		func() int32 {
			f.im.NodeUpdate(2, n.Input(2).GetScalar())
			f.im.NodeUpdate(3, n.Input(3).GetScalar())
			return f.updateRate
		},
		func(i int32) {
			inputValue := f.im.GetValueNext(1)
			signal := f.processSignal(inputValue, f.im.GetValueNext(2), f.im.GetValueNext(3))
			if int(i) < len(buf) {
				buf[i] = signal
			}
		},
	)
}

// Lowpass is a two-state, 2x-oversampled state-variable lowpass filter.
type Lowpass struct {
	filterBase
	state0, state1, inputPrev float32
}

func NewLowpass() *nodegraph.Node {
	op := &Lowpass{filterBase: newFilterBase()}
	n := nodegraph.NewNode(TypeLowpass, op)
	op.declarePorts(n, &op.filterBase)
	op.processSignal = op.ProcessSignal
	op.resetSignal = op.ResetSignal
	op.Reset(n)
	return n
}

func (op *Lowpass) ResetSignal() {
	op.state0, op.state1 = 0, 0
}

// ProcessSignal runs the 2x-oversampled ladder update (not the
// squared-cutoff variant used by simpler one-pole formulas).
func (op *Lowpass) ProcessSignal(input, cutoff, resonance float32) float32 {
	inputBetween := (op.inputPrev + input) * 0.5
	for oversample := 0; oversample < 2; oversample++ {
		driven := input
		if oversample == 0 {
			driven = inputBetween
		}
		op.state0 = resonance*op.state0 - cutoff*(op.state1+driven)
		op.state1 = resonance*op.state1 + cutoff*op.state0
	}
	op.inputPrev = input
	return -op.state1
}

func (op *Lowpass) Process(n *nodegraph.Node, numSamples int32) {
	op.process(n, numSamples)
}

// Highpass is the complementary state-variable highpass topology.
type Highpass struct {
	filterBase
	state0, state1, inputPrev float32
}

func NewHighpass() *nodegraph.Node {
	op := &Highpass{filterBase: newFilterBase()}
	n := nodegraph.NewNode(TypeHighpass, op)
	op.declarePorts(n, &op.filterBase)
	op.processSignal = op.ProcessSignal
	op.resetSignal = op.ResetSignal
	op.Reset(n)
	return n
}

func (op *Highpass) ResetSignal() {
	op.state0, op.state1 = 0, 0
}

func (op *Highpass) ProcessSignal(input, cutoff, resonance float32) float32 {
	inputBetween := (op.inputPrev + input) * 0.5
	for oversample := 0; oversample < 2; oversample++ {
		driven := input
		if oversample == 0 {
			driven = inputBetween
		}
		v01 := op.state0 - op.state1
		op.state0 += cutoff * (driven - op.state0 + resonance*v01)
		op.state1 += cutoff * v01
	}
	op.inputPrev = input
	return input - op.state1
}

func (op *Highpass) Process(n *nodegraph.Node, numSamples int32) {
	op.process(n, numSamples)
}

// Chamberlin2Pole is a four-state Chamberlin state-variable filter with a
// selectable output tap (low/high/band/notch).
type Chamberlin2Pole struct {
	filterBase
	state       [4]float32
	inputPrev   float32
	mode        int
	scaleFilter struct {
		value, target, alpha float32
	}
}

func NewChamberlin2Pole(mode int) *nodegraph.Node {
	op := &Chamberlin2Pole{mode: mode}
	op.filterBase = newFilterBase()
	n := nodegraph.NewNode(TypeChamberlin2Pole, op)
	op.declarePorts(n, &op.filterBase)
	op.processSignal = op.ProcessSignal
	op.resetSignal = op.ResetSignal
	op.Reset(n)
	return n
}

func (op *Chamberlin2Pole) ResetSignal() {
	op.state = [4]float32{}
	op.scaleFilter.value = 1
	op.scaleFilter.target = 1
	op.scaleFilter.alpha = 1.0 / 64.0
}

func (op *Chamberlin2Pole) scaleNext() float32 {
	op.scaleFilter.value += op.scaleFilter.alpha * (op.scaleFilter.target - op.scaleFilter.value)
	return op.scaleFilter.value
}

func (op *Chamberlin2Pole) ProcessSignal(input, cutoff, resonance float32) float32 {
	inputBetween := (op.inputPrev + input) * 0.5
	scale := op.scaleNext()
	cutoff *= 0.5
	resonance = 1 - resonance
	for oversample := 0; oversample < 2; oversample++ {
		driven := input
		if oversample == 0 {
			driven = inputBetween
		}
		op.state[0] = op.state[0] + cutoff*op.state[2]
		op.state[1] = scale*driven - op.state[0] - resonance*op.state[2]
		op.state[2] = cutoff*op.state[1] + op.state[2]
		op.state[3] = op.state[1] + op.state[0]
	}
	op.inputPrev = input
	return op.state[op.mode]
}

func (op *Chamberlin2Pole) Process(n *nodegraph.Node, numSamples int32) {
	op.process(n, numSamples)
}
