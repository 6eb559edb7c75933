package ops

import "github.com/wiresound/nodegraph"

// Factory builds a fresh Node of one operation type. Factories that need
// construction-time parameters (Constant's value, Chamberlin2Pole's tap
// mode, Speaker/Mic's device channel) are closed over by whatever
// registers them — the registry itself only deals in zero-argument
// factories.
type Factory func() *nodegraph.Node

// Catalog returns the built-in operation type ids mapped to their default
// factory, along with a display name and tree-menu category for each,
// suitable for direct use by schema.Schema.RegisterDefaults.
func Catalog() []Entry {
	return []Entry{
		{TypeAdd, "Add", "Math", func() *nodegraph.Node { return NewAdd() }},
		{TypeMultiply, "Multiply", "Math", func() *nodegraph.Node { return NewMultiply() }},
		{TypeSubtract, "Subtract", "Math", func() *nodegraph.Node { return NewSubtract() }},
		{TypeNegate, "Negate", "Math", func() *nodegraph.Node { return NewNegate() }},
		{TypeIntegral, "Integral", "Math", func() *nodegraph.Node { return NewIntegral() }},
		{TypeAnd, "And", "Logic", func() *nodegraph.Node { return NewAnd() }},
		{TypeOr, "Or", "Logic", func() *nodegraph.Node { return NewOr() }},
		{TypeXor, "Xor", "Logic", func() *nodegraph.Node { return NewXor() }},
		{TypeConstant, "Constant", "Source", func() *nodegraph.Node { return NewConstant(0) }},
		{TypeTime, "Time", "Source", func() *nodegraph.Node { return NewTime() }},
		{TypeCopy, "Copy", "Utility", func() *nodegraph.Node { return NewCopy(1) }},
		{TypeLowpass, "Lowpass", "Filter", func() *nodegraph.Node { return NewLowpass() }},
		{TypeHighpass, "Highpass", "Filter", func() *nodegraph.Node { return NewHighpass() }},
		{TypeChamberlin2Pole, "Chamberlin2Pole", "Filter", func() *nodegraph.Node { return NewChamberlin2Pole(0) }},
		{TypeSine2, "Sine2", "Generator", func() *nodegraph.Node { return NewSine2() }},
		{TypeSaw2, "Saw2", "Generator", func() *nodegraph.Node { return NewSaw2() }},
		{TypeEnvelope, "Envelope", "Control", func() *nodegraph.Node { return NewEnvelope() }},
		{TypeSpeaker, "Speaker", "Device", func() *nodegraph.Node { return NewSpeaker(0, nil) }},
		{TypeMic, "Mic", "Device", func() *nodegraph.Node { return NewMic(0, nil) }},
	}
}

// Entry pairs a type id with its display metadata and factory, matching
// the shape a schema's tree-menu catalog needs.
type Entry struct {
	TypeId   int32
	Name     string
	Category string
	New      Factory
}
