package ops

import "github.com/wiresound/nodegraph"

// envelope phase constants for the Envelope operation's internal state
// machine.
const (
	envIdle = iota
	envAttack
	envRelease
)

// Envelope is a control operation producing an attack/release gain ramp
// driven by a gate input. It uses one virtual InputManager slot — an index
// beyond its declared input count — to host a single tween that is
// retargeted for attack and for release, without occupying a real port.
type Envelope struct {
	nodegraph.OpBase

	im    *nodegraph.InputManager
	phase int
	gate  bool
}

const (
	envInGate    int8 = 0
	envInAttack  int8 = 1
	envInRelease int8 = 2
	envSlotRamp  int8 = 100
)

func NewEnvelope() *nodegraph.Node {
	op := &Envelope{im: nodegraph.NewInputManager()}
	n := nodegraph.NewNode(TypeEnvelope, op)
	n.SetNumInputs(3)
	n.SetNumOutputs(1)
	op.AddInput(envInGate, "gate", nodegraph.Bounds01, 0)
	// attack_ms/release_ms are constant-only: a patch cable never drives
	// an envelope's own timing, only its UI slider does.
	op.AddConstant(envInAttack, "attack_ms", nodegraph.Bounds0100, 5)
	op.AddConstant(envInRelease, "release_ms", nodegraph.Bounds0100, 50)
	op.AddOutput(0, "out")
	op.im.SetCustomInterpTweenMs(envSlotRamp, 5)
	op.Reset(n)
	return n
}

func (op *Envelope) Reset(n *nodegraph.Node) {
	op.phase = envIdle
	op.gate = false
	op.OpBase.Reset(n)
}

// Process implements a two-phase gate follower: a rising edge on gate
// starts an attack-duration tween to 1.0, a falling edge starts a
// release-duration tween to 0.0. The output always reflects the tween's
// current value, scalar (envelopes are control-rate, not audio-rate).
func (op *Envelope) Process(n *nodegraph.Node, numSamples int32) {
	gate := n.Input(envInGate).GetScalar() > 0.5
	if gate && !op.gate {
		op.phase = envAttack
		op.im.SetDuration(envSlotRamp, n.Input(envInAttack).GetScalar()*0.001*44100)
		op.im.SetTarget(envSlotRamp, 1.0)
	} else if !gate && op.gate {
		op.phase = envRelease
		op.im.SetDuration(envSlotRamp, n.Input(envInRelease).GetScalar()*0.001*44100)
		op.im.SetTarget(envSlotRamp, 0.0)
	}
	op.gate = gate

	var v float32
	for i := int32(0); i < numSamples; i++ {
		v = op.im.GetValueNext(envSlotRamp)
	}
	if numSamples == 0 {
		v = op.im.GetValue(envSlotRamp)
	}
	n.Output(0).SetScalar(v)
}
