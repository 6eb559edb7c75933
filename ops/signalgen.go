package ops

import (
	"math"

	"github.com/wiresound/nodegraph"
	"github.com/wiresound/nodegraph/internal/smooth"
)

// signalGeneratorBase is the shared driver behind the oscillator family:
// input channel 0 is a sync/reset gate, 1 is the slow-update rate itself
// (so a generator can retune how often it re-reads its other inputs), 2 is
// frequency, 3 is volume, 4 is a 0..1 smoothing amount. The smoothing
// amount sets the time constant of rwaFreq, which tracks the frequency
// input; the generators compute from the raw frequency, so the amount does
// not change the output, and the modulation filters use a fixed factor.
// Concrete generators declare their own inputs starting at channel 5
// (numBaseInputs), each read through a sampled InputManager slot.
type signalGeneratorBase struct {
	nodegraph.OpBase

	im                 *nodegraph.InputManager
	updateRate         int32
	samplesUntilUpdate int32
	smoothAmt          float32
	rwaFreq            smooth.Filter

	updateSignal  func()
	processSignal func(deltaTime, freq float32) float32
	resetSignal   func()
}

const numBaseInputs = 5

func newSignalGeneratorBase() signalGeneratorBase {
	return signalGeneratorBase{
		im:         nodegraph.NewInputManager(),
		updateRate: 16,
	}
}

func (g *signalGeneratorBase) declareBasePorts(n *nodegraph.Node) {
	g.AddInput(0, "sync", nodegraph.Bounds01, 0)
	g.AddInput(1, "update_rate", nodegraph.Bounds0100, 16)
	g.AddInput(2, "freq", nodegraph.BoundsUnbounded, 440)
	g.AddInput(3, "volume", nodegraph.Bounds01, 1)
	g.AddInput(4, "smooth", nodegraph.Bounds01, 0)
	g.AddOutput(0, "out")
	g.im.SetSampled(0, 0)
	g.im.SetSampled(1, 1)
	g.im.SetSampled(2, 2)
	g.im.SetSampled(3, 3)
	g.im.SetSampled(4, 4)
}

func (g *signalGeneratorBase) Reset(n *nodegraph.Node) {
	g.samplesUntilUpdate = 0
	g.OpBase.Reset(n)
	if g.resetSignal != nil {
		g.resetSignal()
	}
}

func (g *signalGeneratorBase) process(n *nodegraph.Node, numSamples int32) {
	g.im.BatchUpdate(n, numSamples)

	if g.im.GetValueNext(0) > 0.5 {
		g.samplesUntilUpdate = 0
	}

	buf := n.Output(0).Get(numSamples)
	deltaTime := float32(1.0 / 44100.0)

	nodegraph.RunBatches(g.updateRate, &g.samplesUntilUpdate, 0, numSamples,
		func() int32 {
			g.updateRate = int32(g.im.GetValueNext(1))
			if g.updateRate < 1 {
				g.updateRate = 1
			}
			g.smoothAmt = g.im.GetValueNext(4)
			g.rwaFreq.SetConvergenceInMs(1000*(1-g.smoothAmt), 0.05)
			if g.updateSignal != nil {
				g.updateSignal()
			}
			return g.updateRate
		},
		func(i int32) {
			freq := g.im.GetValueNext(2)
			g.rwaFreq.SetTarget(freq)
			signal := g.processSignal(deltaTime, freq)
			vol := g.im.GetValueNext(3)
			if int(i) < len(buf) {
				buf[i] = vol * signal
			}
		},
	)
}

// fmod01 is a positive-result floating point modulus (plain math.Mod can
// return negative results, which Sine2's phase accumulator never expects).
func fmod01(v, m float32) float32 {
	r := float32(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// Sine2 is a phase-modulated sine oscillator: frequency and phase
// modulation amounts (inputs 5 and 6) are each smoothed through a
// fixed-factor RWA filter before being applied, producing a softer FM/PM
// response than applying the raw modulation value directly.
type Sine2 struct {
	signalGeneratorBase

	phaseFmod, phase float32
	fmod, pmod       float32
	filterFmod       smooth.Filter
	filterPmod       smooth.Filter
}

func NewSine2() *nodegraph.Node {
	op := &Sine2{signalGeneratorBase: newSignalGeneratorBase()}
	n := nodegraph.NewNode(TypeSine2, op)
	n.SetNumInputs(numBaseInputs + 2)
	n.SetNumOutputs(1)
	op.declareBasePorts(n)
	op.AddInput(numBaseInputs+0, "fmod", nodegraph.Bounds01, 0)
	op.AddInput(numBaseInputs+1, "pmod", nodegraph.Bounds01, 0)
	op.im.SetSampled(numBaseInputs+0, numBaseInputs+0)
	op.im.SetSampled(numBaseInputs+1, numBaseInputs+1)
	op.updateSignal = op.UpdateSignal
	op.resetSignal = op.ResetSignal
	op.processSignal = op.ProcessSignal
	op.Reset(n)
	return n
}

func (op *Sine2) ResetSignal() {
	op.phaseFmod, op.phase = 0, 0
	op.filterFmod.SetConvergenceFactor()
	op.filterPmod.SetConvergenceFactor()
}

func (op *Sine2) UpdateSignal() {
	freq := op.im.GetValue(2)
	if freq < 1 {
		freq = 1
	}
	fmod := op.im.GetValueNext(numBaseInputs + 0)
	pmod := op.im.GetValueNext(numBaseInputs + 1)
	fmod *= 0.25 * 0.25 * 0.5 * 44100.0 / freq

	op.fmod = fmod
	op.pmod = pmod
	op.filterFmod.SetConvergenceFactor().SetTarget(fmod)
	op.filterPmod.SetConvergenceFactor().SetTarget(pmod)
}

func (op *Sine2) ProcessSignal(deltaTime, freq float32) float32 {
	op.phaseFmod += deltaTime * freq
	op.phaseFmod = fmod01(op.phaseFmod, 1.0)

	fmodVal := op.filterFmod.Next()
	modulation := 0.5 * (fmodVal + fmodVal*float32(math.Cos(float64(math.Pi*op.phaseFmod*2))))

	op.phase = op.phaseFmod
	op.phase += modulation
	op.phase -= float32(math.Floor(float64(op.phase)))

	phaseMod := op.phaseFmod + op.filterPmod.Next()*modulation*4.0
	phaseMod -= float32(math.Floor(float64(phaseMod)))

	return 0.5 * (float32(math.Sin(float64(math.Pi*op.phase*2))) + float32(math.Sin(float64(math.Pi*phaseMod*2))))
}

func (op *Sine2) Process(n *nodegraph.Node, numSamples int32) {
	op.process(n, numSamples)
}

// Saw2 is a phase-accumulator sawtooth oscillator sharing signalGeneratorBase
// with Sine2: same sync/update-rate/freq/volume/smooth port layout, a
// single "pm" (phase modulation) input smoothed through a
// fixed-factor RWA filter the same way Sine2 smooths fmod/pmod.
type Saw2 struct {
	signalGeneratorBase

	phase    float32
	pm       float32
	filterPM smooth.Filter
}

func NewSaw2() *nodegraph.Node {
	op := &Saw2{signalGeneratorBase: newSignalGeneratorBase()}
	n := nodegraph.NewNode(TypeSaw2, op)
	n.SetNumInputs(numBaseInputs + 1)
	n.SetNumOutputs(1)
	op.declareBasePorts(n)
	op.AddInput(numBaseInputs+0, "pm", nodegraph.Bounds01, 0)
	op.im.SetSampled(numBaseInputs+0, numBaseInputs+0)
	op.updateSignal = op.UpdateSignal
	op.resetSignal = op.ResetSignal
	op.processSignal = op.ProcessSignal
	op.Reset(n)
	return n
}

func (op *Saw2) ResetSignal() {
	op.phase = 0
	op.filterPM.SetConvergenceFactor()
}

func (op *Saw2) UpdateSignal() {
	pm := op.im.GetValueNext(numBaseInputs + 0)
	op.pm = pm
	op.filterPM.SetConvergenceFactor().SetTarget(pm)
}

// ProcessSignal advances a 0..1 phase accumulator at freq Hz and maps it
// onto a -1..1 ramp. The smoothed pm value, scaled by 0.5, is added to the
// phase before the wrap, so pm shifts the ramp's phase; the ramp's shape
// is unchanged.
func (op *Saw2) ProcessSignal(deltaTime, freq float32) float32 {
	op.phase += deltaTime * freq
	op.phase = fmod01(op.phase, 1.0)
	modPhase := fmod01(op.phase+op.filterPM.Next()*0.5, 1.0)
	return 2.0*modPhase - 1.0
}

func (op *Saw2) Process(n *nodegraph.Node, numSamples int32) {
	op.process(n, numSamples)
}
