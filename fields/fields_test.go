package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorLayers(t *testing.T) {
	pl := NewTensor(2, 3, 4, 5)
	assert.Equal(t, 6, pl.NumLayers())
	assert.Equal(t, 20, pl.LayerSize())
	assert.Len(t, pl.Data, 120)

	sfc := NewTensor(4, 4, 5)
	assert.Equal(t, 4, sfc.NumLayers())

	pl.Data[2*20] = 7
	assert.Equal(t, float32(7), pl.Layer(2)[0], "Layer must view the flat data")
}

func TestTensorShapeChecks(t *testing.T) {
	pl := NewTensor(2, 3, 4, 5)
	assert.True(t, pl.ShapeEquals([]int{2, 3, 4, 5}))
	assert.False(t, pl.ShapeEquals([]int{2, 3, 4, 6}))
	assert.False(t, pl.ShapeEquals([]int{2, 3, 4}))
	assert.NoError(t, pl.CheckShape([]int{2, 3, 4, 5}))
	assert.Error(t, pl.CheckShape([]int{2, 3, 5, 4}))
}

func TestPressureOrderingIsParamMajor(t *testing.T) {
	ord := PressureOrdering([]string{"z", "t"}, []int{1000, 500, 100})

	assert.Equal(t, Ordering{
		{Param: "z", Level: 1000},
		{Param: "z", Level: 500},
		{Param: "z", Level: 100},
		{Param: "t", Level: 1000},
		{Param: "t", Level: 500},
		{Param: "t", Level: 100},
	}, ord)
}

func TestSurfaceOrdering(t *testing.T) {
	ord := SurfaceOrdering([]string{"msl", "10u", "10v", "2t"})
	assert.Equal(t, Ordering{{Param: "msl"}, {Param: "10u"}, {Param: "10v"}, {Param: "2t"}}, ord)
	assert.Equal(t, "msl", ord[0].String())
	assert.Equal(t, "z@500", Template{Param: "z", Level: 500}.String())
}

// captureWriter records every (template, step, first value) triple it
// receives.
type captureWriter struct {
	tmpls []Template
	steps []int
	first []float32
}

func (w *captureWriter) WriteLayer(layer []float32, tmpl Template, step int) error {
	w.tmpls = append(w.tmpls, tmpl)
	w.steps = append(w.steps, step)
	w.first = append(w.first, layer[0])
	return nil
}

func TestWriteTensorPairsLayersPositionally(t *testing.T) {
	ord := PressureOrdering([]string{"z", "t"}, []int{1000, 500})
	tensor := NewTensor(2, 2, 2, 2)
	for i := 0; i < tensor.NumLayers(); i++ {
		tensor.Layer(i)[0] = float32(i)
	}

	w := &captureWriter{}
	require.NoError(t, WriteTensor(w, tensor, ord, 6))

	assert.Equal(t, []Template(ord), w.tmpls)
	assert.Equal(t, []int{6, 6, 6, 6}, w.steps)
	assert.Equal(t, []float32{0, 1, 2, 3}, w.first)
}

func TestWriteTensorOrderingIsStableAcrossSteps(t *testing.T) {
	ord := PressureOrdering([]string{"z", "t"}, []int{1000, 500})
	tensor := NewTensor(2, 2, 2, 2)

	first := &captureWriter{}
	require.NoError(t, WriteTensor(first, tensor, ord, 1))
	later := &captureWriter{}
	require.NoError(t, WriteTensor(later, tensor, ord, 240))

	assert.Equal(t, first.tmpls, later.tmpls, "layer i must map to the same template at every step")
}

func TestWriteTensorRejectsLayerCountMismatch(t *testing.T) {
	ord := SurfaceOrdering([]string{"msl", "10u"})
	tensor := NewTensor(3, 2, 2)

	err := WriteTensor(&captureWriter{}, tensor, ord, 6)
	require.Error(t, err)

	var ordErr *OrderingError
	assert.ErrorAs(t, err, &ordErr)
	assert.Equal(t, 3, ordErr.Layers)
	assert.Equal(t, 2, ordErr.Templates)
}
