package fields

import "fmt"

// Tensor is a dense float32 array with an explicit shape. The last two
// dimensions are always latitude and longitude; everything before them
// identifies a layer.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor allocates a zeroed tensor of the given shape.
func NewTensor(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{Shape: shape, Data: make([]float32, n)}
}

// NumLayers is the number of lat/lon layers, i.e. the product of all
// dimensions except the last two.
func (t *Tensor) NumLayers() int {
	if len(t.Shape) < 2 {
		return 0
	}
	n := 1
	for _, d := range t.Shape[:len(t.Shape)-2] {
		n *= d
	}
	return n
}

// LayerSize is the number of values in one lat/lon layer.
func (t *Tensor) LayerSize() int {
	if len(t.Shape) < 2 {
		return 0
	}
	return t.Shape[len(t.Shape)-2] * t.Shape[len(t.Shape)-1]
}

// Layer returns the i-th lat/lon layer as a view over the tensor data.
func (t *Tensor) Layer(i int) []float32 {
	size := t.LayerSize()
	return t.Data[i*size : (i+1)*size]
}

// ShapeEquals reports whether the tensor has exactly the given shape.
func (t *Tensor) ShapeEquals(shape []int) bool {
	if len(t.Shape) != len(shape) {
		return false
	}
	for i, d := range shape {
		if t.Shape[i] != d {
			return false
		}
	}
	return true
}

// CheckShape returns an error describing the mismatch when the tensor
// does not have the given shape.
func (t *Tensor) CheckShape(shape []int) error {
	if !t.ShapeEquals(shape) {
		return fmt.Errorf("tensor shape %v, want %v", t.Shape, shape)
	}
	return nil
}
