// Package nodegraph implements a directed, possibly-cyclic-at-construction
// graph of audio/control processing nodes evaluated in sample-accurate
// buffer batches.
//
// The package is organized in two tiers, in the spirit of a traditional
// audio plug chain: a data tier and an evaluation tier.
//
// Data Tier
//
// The data tier describes the shape of a node's ports. An InputPort is
// polymorphic: it may be empty, a clamped constant, a borrowed external
// pointer, an owned constant array, or a connection to an upstream node's
// output channel. An OutputPort is either a scalar or a lazily-allocated,
// level-of-detail (LOD) buffer; consumers pull from it through a
// ValueIterator or SmoothedIterator rather than reading it directly, so a
// producer running at a coarser LOD than its consumers is transparent to
// both sides.
//
// Evaluation Tier
//
// The evaluation tier is pull-based. A Node embeds an Operation, which
// supplies default port declarations, tick-time behavior, and the sample
// processing function. Node.ProcessSubgraph walks a node's Upstream inputs
// recursively before running its own Operation, guarding against redundant
// work on diamond-shaped dependency graphs with a per-evaluation flag. This
// tier is single-threaded and wait-free by design: a host alternates calls
// to Node.Tick (once per UI frame) and Node.ProcessSubgraph (once per audio
// block) and is responsible for not overlapping the two.
//
// Higher-level topology management (sub-graphs with sentinel input/output
// nodes, schema-driven node creation, JSON serialization) lives in the
// sibling group, schema, and serialize packages; concrete Operation
// implementations live in ops.
package nodegraph
