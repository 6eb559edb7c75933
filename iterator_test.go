package nodegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiresound/nodegraph"
)

func TestValueIteratorFullRate(t *testing.T) {
	data := []float32{10, 20, 30}
	it := nodegraph.NewValueIterator(data, 1)
	assert.Equal(t, float32(10), it.Next())
	assert.Equal(t, float32(20), it.Next())
	assert.Equal(t, float32(30), it.Next())
}

func TestValueIteratorLodHold(t *testing.T) {
	data := []float32{1, 2}
	it := nodegraph.NewValueIterator(data, 4)
	var got []float32
	for i := 0; i < 8; i++ {
		got = append(got, it.Next())
	}
	assert.Equal(t, []float32{1, 1, 1, 1, 2, 2, 2, 2}, got)
}

func TestValueIteratorSingleSlotDegeneratesToConstant(t *testing.T) {
	data := []float32{5}
	it := nodegraph.NewValueIterator(data, 4)
	for i := 0; i < 5; i++ {
		assert.Equal(t, float32(5), it.Next())
	}
}

func TestSmoothedIteratorRampsTowardHeldValue(t *testing.T) {
	data := []float32{0, 1}
	raw := nodegraph.NewValueIterator(data, 8)
	smoothed := nodegraph.NewSmoothedIterator(raw)

	// 2 slots at lod 8 cover 16 samples: the first 8 hold slot 0 (value 0),
	// the last 8 hold slot 1 (value 1), which the filter ramps toward.
	var last float32
	for i := 0; i < 16; i++ {
		last = smoothed.Next()
	}
	assert.Greater(t, last, float32(0))
	assert.Less(t, last, float32(1.01))
}
