// Package serialize implements JSON topology save/load for a schema's
// node graph. Loading is best-effort: a link referencing a
// node or channel that no longer exists is skipped and logged rather than
// aborting the whole load, since a graph edited by hand or partially
// migrated between schema versions is expected to occasionally carry a
// stale link.
//
// encoding/json is used directly rather than a third-party serialization
// library: no JSON library appears anywhere in the example pack, and the
// wire shape here is a small, stable, hand-declared struct tree for which
// the standard library's reflection-based (un)marshaling is exactly
// sufficient — reaching for a schema/codegen library would add a
// dependency with no remaining problem for it to solve.
package serialize

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/wiresound/nodegraph/schema"
)

// NodePosition is an optional UI hint: a node's canvas coordinates. It has
// no evaluation meaning and round-trips opaquely.
type NodePosition struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// NodeEntry describes one serialized node.
type NodeEntry struct {
	TypeId         int32          `json:"typeId"`
	NodeId         int32          `json:"nodeId"`
	Position       *NodePosition  `json:"position,omitempty"`
	ConstantInputs map[int8]float32 `json:"constantInputs,omitempty"`
}

// LinkEntry describes one serialized connection: dst's input channel
// dstChan reads from src's output channel srcChan.
type LinkEntry struct {
	Src     int32 `json:"src"`
	SrcChan int8  `json:"srcCh"`
	Dst     int32 `json:"dst"`
	DstChan int8  `json:"dstCh"`
}

// Graph is the top-level archive shape: the full node list plus the
// links between them.
type Graph struct {
	Nodes []NodeEntry `json:"nodes"`
	Links []LinkEntry `json:"links"`
}

// Save walks every node known to s and produces a Graph describing its
// current topology: every node's type/id/declared constant inputs, and
// every upstream link between them.
func Save(s *schema.Schema) Graph {
	var g Graph
	for id, n := range s.Nodes() {
		entry := NodeEntry{TypeId: n.TypeId(), NodeId: id}
		for c := int8(0); c < n.NumInputs(); c++ {
			in := n.Input(c)
			switch {
			case in.HasUpstream():
				g.Links = append(g.Links, LinkEntry{
					Src:     n.UpstreamSource(c).Id(),
					SrcChan: n.UpstreamSourceChannel(c),
					Dst:     id,
					DstChan: c,
				})
			case in.IsConstant():
				if entry.ConstantInputs == nil {
					entry.ConstantInputs = make(map[int8]float32)
				}
				entry.ConstantInputs[c] = in.GetScalar()
			}
		}
		g.Nodes = append(g.Nodes, entry)
	}
	return g
}

// Marshal renders a Graph as indented JSON.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Unmarshal parses JSON into a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	err := json.Unmarshal(data, &g)
	return g, err
}

// Load recreates every node in g against s (via its registered
// factories) and then re-applies every link, skipping and logging any
// node or link that cannot be resolved. It returns a mapping from the
// archive's original node ids to the freshly constructed nodes' ids,
// since RegisterDefaults-backed factories mint new process-wide ids
// rather than replaying the archived ones.
func Load(s *schema.Schema, g Graph) (map[int32]int32, error) {
	idMap := make(map[int32]int32, len(g.Nodes))
	for _, ne := range g.Nodes {
		n, err := s.NewNode(ne.TypeId)
		if err != nil {
			log.Warn("serialize: skipping node with unregistered type", "typeId", ne.TypeId, "origId", ne.NodeId, "err", err)
			continue
		}
		idMap[ne.NodeId] = n.Id()
		for ch, v := range ne.ConstantInputs {
			n.SetInputConstant(ch, v)
		}
	}

	for _, le := range g.Links {
		srcID, ok := idMap[le.Src]
		if !ok {
			log.Warn("serialize: skipping link with unresolved source", "origSrc", le.Src)
			continue
		}
		dstID, ok := idMap[le.Dst]
		if !ok {
			log.Warn("serialize: skipping link with unresolved destination", "origDst", le.Dst)
			continue
		}
		if !s.Connect(srcID, le.SrcChan, dstID, le.DstChan) {
			log.Warn("serialize: skipping rejected link", "src", srcID, "srcCh", le.SrcChan, "dst", dstID, "dstCh", le.DstChan)
		}
	}
	return idMap, nil
}
