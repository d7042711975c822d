package fields

import "fmt"

// Source supplies the initial atmospheric state. Select resolves a
// requested field set to the fixed layer ordering; pass nil levels for
// a surface field set. A missing variable or level is an error: the
// cascade cannot start from an incomplete state.
type Source interface {
	Select(params []string, levels []int) (Ordering, error)
	Materialize(ord Ordering) (*Tensor, error)
}

// Writer receives one output layer per template per step. Template
// metadata must be preserved as provenance for the written layer.
type Writer interface {
	WriteLayer(layer []float32, tmpl Template, step int) error
}

// WriteTensor splits a model output tensor into its lat/lon layers and
// hands each one to the writer, paired positionally with the ordering
// captured at startup.
func WriteTensor(w Writer, t *Tensor, ord Ordering, step int) error {
	if t.NumLayers() != len(ord) {
		return &OrderingError{Layers: t.NumLayers(), Templates: len(ord)}
	}
	for i, tmpl := range ord {
		if err := w.WriteLayer(t.Layer(i), tmpl, step); err != nil {
			return err
		}
	}
	return nil
}

// OrderingError reports an output tensor whose layer count disagrees
// with the ordering established at startup.
type OrderingError struct {
	Layers    int
	Templates int
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("cannot reassemble output: %d layers for %d field templates", e.Layers, e.Templates)
}
