// Package schema provides a type-id-keyed node factory registry plus the
// connect/disconnect API a host or UI drives a graph's topology through,
// including depth-first cycle refusal on connect.
package schema

import (
	"fmt"
	"sort"

	"github.com/wiresound/nodegraph"
	"github.com/wiresound/nodegraph/ops"
)

// Category groups catalog entries for a tree-menu style node palette.
type Category struct {
	Name    string
	Entries []ops.Entry
}

// Schema owns the set of known operation types, every node created
// through it and not yet removed (keyed by id, so a serialize.Load can resolve link
// endpoints), and enforces the connect-time cycle-refusal invariant.
type Schema struct {
	factories map[int32]ops.Entry
	nodes     map[int32]*nodegraph.Node
}

// New returns an empty Schema with no registered operation types.
func New() *Schema {
	return &Schema{
		factories: make(map[int32]ops.Entry),
		nodes:     make(map[int32]*nodegraph.Node),
	}
}

// RegisterDefaults registers every built-in operation type from
// ops.Catalog.
func (s *Schema) RegisterDefaults() {
	for _, e := range ops.Catalog() {
		s.Register(e)
	}
}

// Register adds (or replaces) a catalog entry under its type id.
func (s *Schema) Register(e ops.Entry) {
	s.factories[e.TypeId] = e
}

// Categories returns the registered entries grouped into a tree-menu
// structure, sorted by category name for deterministic UI ordering.
func (s *Schema) Categories() []Category {
	byCat := make(map[string][]ops.Entry)
	for _, e := range s.factories {
		byCat[e.Category] = append(byCat[e.Category], e)
	}
	names := make([]string, 0, len(byCat))
	for name := range byCat {
		names = append(names, name)
	}
	sort.Strings(names)
	cats := make([]Category, 0, len(names))
	for _, name := range names {
		cats = append(cats, Category{Name: name, Entries: byCat[name]})
	}
	return cats
}

// NewNode constructs a node of the given type id via its registered
// factory and records it under its new, unique node id.
func (s *Schema) NewNode(typeID int32) (*nodegraph.Node, error) {
	e, ok := s.factories[typeID]
	if !ok {
		return nil, fmt.Errorf("schema: unregistered node type %d", typeID)
	}
	n := e.New()
	s.nodes[n.Id()] = n
	return n, nil
}

// GetNode returns the node with the given id, or nil.
func (s *Schema) GetNode(id int32) *nodegraph.Node {
	return s.nodes[id]
}

// RemoveNode detaches every other known node's references to id, then
// forgets it.
func (s *Schema) RemoveNode(id int32) {
	n := s.nodes[id]
	if n == nil {
		return
	}
	for _, m := range s.nodes {
		if m != n {
			m.DetachInput(n)
		}
	}
	delete(s.nodes, id)
}

// Connect wires srcId's output channel srcChan into dstId's input channel
// dstChan. It returns false without mutating anything if either node is
// unknown, either channel is out of range, or the connection would close
// a cycle (dstId is already, directly or indirectly, upstream of srcId).
func (s *Schema) Connect(srcID int32, srcChan int8, dstID int32, dstChan int8) bool {
	src := s.nodes[srcID]
	dst := s.nodes[dstID]
	if src == nil || dst == nil {
		return false
	}
	if s.dependsOn(src, dst) {
		return false
	}
	return dst.SetInputNode(dstChan, src, srcChan)
}

// dependsOn reports whether n (directly or indirectly, through its
// Upstream inputs) already reads from target — i.e. whether target is an
// ancestor of n in the current dependency graph.
func (s *Schema) dependsOn(n, target *nodegraph.Node) bool {
	seen := make(map[int32]bool)
	var walk func(cur *nodegraph.Node) bool
	walk = func(cur *nodegraph.Node) bool {
		if cur == target {
			return true
		}
		if seen[cur.Id()] {
			return false
		}
		seen[cur.Id()] = true
		for c := int8(0); c < cur.NumInputs(); c++ {
			in := cur.Input(c)
			if in == nil || !in.HasUpstream() {
				continue
			}
			up := upstreamNode(cur, c)
			if up != nil && walk(up) {
				return true
			}
		}
		return false
	}
	return walk(n)
}

// upstreamNode resolves the node feeding input channel c of n, or nil,
// via Node.UpstreamSource.
func upstreamNode(n *nodegraph.Node, c int8) *nodegraph.Node {
	return n.UpstreamSource(c)
}

// Disconnect empties dstId's input channel dstChan.
func (s *Schema) Disconnect(dstID int32, dstChan int8) bool {
	dst := s.nodes[dstID]
	if dst == nil {
		return false
	}
	dst.ClearInput(dstChan)
	return true
}

// Nodes returns every node currently known to the schema, in no
// particular order.
func (s *Schema) Nodes() map[int32]*nodegraph.Node {
	return s.nodes
}
