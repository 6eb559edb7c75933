// Package group implements sub-graph boundaries: an ordered collection of
// nodes with sentinel Copy nodes standing in for the group's external
// input and output ports, so a Group can itself be wired as a single node
// from the outside while containing an arbitrary internal topology.
package group

import (
	"github.com/wiresound/nodegraph"
	"github.com/wiresound/nodegraph/ops"
)

// Group is a named, ordered collection of nodes plus a set of "sink"
// nodes — outputs the host cares about polling every block — and
// optional sentinel input/output Copy nodes forming the group's external
// boundary.
type Group struct {
	name  string
	nodes []*nodegraph.Node

	inputNode  *nodegraph.Node
	outputNode *nodegraph.Node

	sinks []*nodegraph.Node
}

// New returns an empty Group.
func New(name string) *Group {
	return &Group{name: name}
}

// Name returns the group's display name.
func (g *Group) Name() string { return g.name }

// AddNode registers an already-constructed node as a member of the group.
// The group does not construct nodes itself (that is schema's job) — it
// only tracks membership, boundary sentinels, and sink evaluation order.
func (g *Group) AddNode(n *nodegraph.Node) {
	g.nodes = append(g.nodes, n)
}

// ContainsNode reports whether n is a member of the group.
func (g *Group) ContainsNode(n *nodegraph.Node) bool {
	for _, m := range g.nodes {
		if m == n {
			return true
		}
	}
	return false
}

// GetNode returns the member node with the given id, or nil.
func (g *Group) GetNode(id int32) *nodegraph.Node {
	for _, m := range g.nodes {
		if m.Id() == id {
			return m
		}
	}
	return nil
}

// RemoveNode detaches every other member's references to n (so no
// dangling upstream pointer survives) and removes n from the group,
// from the sink list, and from the input/output sentinel slots if it was
// acting as one.
func (g *Group) RemoveNode(n *nodegraph.Node) {
	for _, m := range g.nodes {
		if m != n {
			m.DetachInput(n)
		}
	}
	g.nodes = removeNode(g.nodes, n)
	g.sinks = removeNode(g.sinks, n)
	if g.inputNode == n {
		g.inputNode = nil
	}
	if g.outputNode == n {
		g.outputNode = nil
	}
}

func removeNode(list []*nodegraph.Node, n *nodegraph.Node) []*nodegraph.Node {
	out := list[:0]
	for _, m := range list {
		if m != n {
			out = append(out, m)
		}
	}
	return out
}

// SetNumInputs lazily creates (or resizes) the group's sentinel input Copy
// node, which external callers feed via SetInput and internal nodes read
// from as if it were any other upstream node.
func (g *Group) SetNumInputs(count int8) {
	if g.inputNode == nil {
		g.inputNode = ops.NewCopy(count)
		g.nodes = append(g.nodes, g.inputNode)
		return
	}
	g.inputNode.SetNumInputs(count)
	g.inputNode.SetNumOutputs(count)
}

// SetNumOutputs lazily creates (or resizes) the group's sentinel output
// Copy node, which internal nodes feed and which the group itself exposes
// as its external output channels.
func (g *Group) SetNumOutputs(count int8) {
	if g.outputNode == nil {
		g.outputNode = ops.NewCopy(count)
		g.nodes = append(g.nodes, g.outputNode)
		g.sinks = append(g.sinks, g.outputNode)
		return
	}
	g.outputNode.SetNumOutputs(count)
	g.outputNode.SetNumInputs(count)
}

// InputNode returns the group's sentinel input Copy node, or nil if
// SetNumInputs was never called.
func (g *Group) InputNode() *nodegraph.Node { return g.inputNode }

// OutputNode returns the group's sentinel output Copy node, or nil if
// SetNumOutputs was never called.
func (g *Group) OutputNode() *nodegraph.Node { return g.outputNode }

// SetInput feeds external value v into the group's boundary input channel
// c (the sentinel input Copy node's channel c).
func (g *Group) SetInput(c int8, v float32) bool {
	if g.inputNode == nil {
		return false
	}
	return g.inputNode.SetInputConstant(c, v)
}

// SetInputNode wires external node src's output channel srcChan into the
// group's boundary input channel c.
func (g *Group) SetInputNode(c int8, src *nodegraph.Node, srcChan int8) bool {
	if g.inputNode == nil {
		return false
	}
	return g.inputNode.SetInputNode(c, src, srcChan)
}

// SetOutput wires internal node src's output channel srcChan as the
// group's boundary output channel c.
func (g *Group) SetOutput(c int8, src *nodegraph.Node, srcChan int8) bool {
	if g.outputNode == nil {
		return false
	}
	return g.outputNode.SetInputNode(c, src, srcChan)
}

// GetOutput reads the group's boundary output channel c as a scalar.
func (g *Group) GetOutput(c int8) float32 {
	if g.outputNode == nil {
		return 0
	}
	return g.outputNode.GetOutput(c, 1)
}

// AddSink registers n as an additional external sink: a node whose output
// the host polls every block even if it's not wired to the output
// sentinel (e.g. a visualization tap, or a Speaker device sink).
func (g *Group) AddSink(n *nodegraph.Node) {
	for _, s := range g.sinks {
		if s == n {
			return
		}
	}
	g.sinks = append(g.sinks, n)
}

// ClearProcessFlags clears the per-pass processed flag across every sink
// (and, transitively, everything they depend on), so the next
// ProcessSubgraph call recomputes the whole reachable set instead of
// trusting stale flags from a previous pass.
func (g *Group) ClearProcessFlags() {
	for _, s := range g.sinks {
		s.ClearProcessFlags()
	}
}

// ProcessSubgraph clears process flags once, then runs ProcessSubgraph on
// every sink in turn. A node feeding two sinks still only runs its
// Operation once, since the second sink's walk finds it already flagged.
func (g *Group) ProcessSubgraph(numSamples int32) {
	g.ClearProcessFlags()
	for _, s := range g.sinks {
		s.ProcessSubgraph(numSamples, false)
	}
}

// Tick runs Tick on every member node for the given frame, in insertion
// order. Unlike ProcessSubgraph (which only needs to reach sinks and what
// they depend on), Tick must reach every node regardless of connectivity:
// a node with no downstream consumer can still poll MIDI or advance an
// internal clock, and frame-idempotence (guarded per node by
// lastTickCount) makes the forward pass redundancy-free regardless of
// order.
func (g *Group) Tick(tickCount uint64, elapsed float32) {
	for _, n := range g.nodes {
		n.Tick(tickCount, elapsed)
	}
}

// Nodes returns the group's member nodes in insertion order.
func (g *Group) Nodes() []*nodegraph.Node {
	return g.nodes
}
