package nodegraph

import "fmt"

// TopologyError describes a connect/disconnect request that was rejected.
// Per the topology contract, connect() itself never returns this: it
// reports rejection as a plain bool. TopologyError exists for callers
// (schema, serialize) that want to log or surface a reason.
type TopologyError struct {
	SrcNode, DstNode   int32
	SrcChan, DstChan   int8
	Reason             string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("connect node %d[%d] -> node %d[%d] rejected: %s",
		e.SrcNode, e.SrcChan, e.DstNode, e.DstChan, e.Reason)
}

func topologyRejected(src, dst int32, srcCh, dstCh int8, reason string) *TopologyError {
	return &TopologyError{SrcNode: src, DstNode: dst, SrcChan: srcCh, DstChan: dstCh, Reason: reason}
}

// ChannelOutOfRangeError reports an input/output channel index outside a
// node's declared port count.
type ChannelOutOfRangeError struct {
	IsInput bool
	Chan    int8
	Count   int8
}

func (e *ChannelOutOfRangeError) Error() string {
	dir := "input"
	if !e.IsInput {
		dir = "output"
	}
	return fmt.Sprintf("%s channel %d out of range (have %d)", dir, e.Chan, e.Count)
}

func coor(isInput bool, c, count int8) *ChannelOutOfRangeError {
	return &ChannelOutOfRangeError{IsInput: isInput, Chan: c, Count: count}
}
