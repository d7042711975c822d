package fields

import "fmt"

// Template identifies one variable/level layer of an atmospheric field.
// It is carried through the run untouched and used only to tag output
// layers with their provenance; the scheduler never interprets it.
type Template struct {
	Param string
	Level int // hPa; 0 for surface fields
}

func (t Template) String() string {
	if t.Level == 0 {
		return t.Param
	}
	return fmt.Sprintf("%s@%d", t.Param, t.Level)
}

// Ordering is the fixed layer order of a tensor, captured once at
// startup and reused verbatim for every step of a run. Layer i of an
// input or output tensor always corresponds to entry i.
type Ordering []Template

// PressureOrdering builds the layer order of a pressure-level tensor:
// params outermost, levels innermost, both in the given list order.
func PressureOrdering(params []string, levels []int) Ordering {
	ord := make(Ordering, 0, len(params)*len(levels))
	for _, p := range params {
		for _, l := range levels {
			ord = append(ord, Template{Param: p, Level: l})
		}
	}
	return ord
}

// SurfaceOrdering builds the layer order of a surface tensor.
func SurfaceOrdering(params []string) Ordering {
	ord := make(Ordering, 0, len(params))
	for _, p := range params {
		ord = append(ord, Template{Param: p})
	}
	return ord
}
