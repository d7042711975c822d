package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/meteocima/pangu-runner/fields"
)

type layerKey struct {
	tmpl fields.Template
	step int
}

// Reader holds the decoded records of an archive. It implements
// fields.Source over the analysis records (step 0).
type Reader struct {
	rows   int
	cols   int
	layers map[layerKey][]float32
}

// Open reads a whole archive into memory. Archives hold at most one
// record per (template, step); a duplicate is an error.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	r := &Reader{layers: map[layerKey][]float32{}}
	dec := msgpack.NewDecoder(zr)
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("corrupt archive %s: %w", path, err)
		}
		if r.rows == 0 {
			r.rows, r.cols = rec.Rows, rec.Cols
		} else if r.rows != rec.Rows || r.cols != rec.Cols {
			return nil, fmt.Errorf("archive %s mixes grids %dx%d and %dx%d", path, r.rows, r.cols, rec.Rows, rec.Cols)
		}
		key := layerKey{fields.Template{Param: rec.Param, Level: rec.Level}, rec.Step}
		if _, dup := r.layers[key]; dup {
			return nil, fmt.Errorf("archive %s holds %s twice at step %d", path, key.tmpl, rec.Step)
		}
		r.layers[key] = rec.Values
	}
	return r, nil
}

// Grid returns the lat/lon extents of the stored layers.
func (r *Reader) Grid() (rows, cols int) {
	return r.rows, r.cols
}

// LayerAt returns the stored layer for a template at a step.
func (r *Reader) LayerAt(tmpl fields.Template, step int) ([]float32, bool) {
	layer, ok := r.layers[layerKey{tmpl, step}]
	return layer, ok
}

// Select resolves a field set against the analysis records and returns
// the layer ordering: params outermost then levels, both in list order.
// Pass nil levels for a surface set. Any missing variable or level
// fails the whole selection; the cascade cannot start incomplete.
func (r *Reader) Select(params []string, levels []int) (fields.Ordering, error) {
	var ord fields.Ordering
	if levels == nil {
		ord = fields.SurfaceOrdering(params)
	} else {
		ord = fields.PressureOrdering(params, levels)
	}
	var missing []string
	for _, tmpl := range ord {
		if _, ok := r.layers[layerKey{tmpl, 0}]; !ok {
			missing = append(missing, tmpl.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("analysis is missing fields: %v", missing)
	}
	return ord, nil
}

// Materialize stacks the analysis layers of a previously selected
// ordering into a dense tensor. Pressure orderings become
// (params, levels, lat, lon) tensors, surface orderings
// (params, lat, lon).
func (r *Reader) Materialize(ord fields.Ordering) (*fields.Tensor, error) {
	shape, err := orderingShape(ord, r.rows, r.cols)
	if err != nil {
		return nil, err
	}
	t := fields.NewTensor(shape...)
	for i, tmpl := range ord {
		layer, ok := r.layers[layerKey{tmpl, 0}]
		if !ok {
			return nil, fmt.Errorf("analysis is missing field %s", tmpl)
		}
		copy(t.Layer(i), layer)
	}
	return t, nil
}

// orderingShape recovers the tensor shape implied by an ordering built
// with PressureOrdering or SurfaceOrdering.
func orderingShape(ord fields.Ordering, rows, cols int) ([]int, error) {
	if len(ord) == 0 {
		return nil, errors.New("empty field ordering")
	}
	params := map[string]bool{}
	levels := map[int]bool{}
	surface := true
	for _, tmpl := range ord {
		params[tmpl.Param] = true
		levels[tmpl.Level] = true
		if tmpl.Level != 0 {
			surface = false
		}
	}
	if surface {
		return []int{len(ord), rows, cols}, nil
	}
	if len(params)*len(levels) != len(ord) {
		return nil, fmt.Errorf("ordering of %d templates is not a %dx%d param/level grid", len(ord), len(params), len(levels))
	}
	return []int{len(params), len(levels), rows, cols}, nil
}
