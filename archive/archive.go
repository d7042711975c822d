// Package archive reads and writes forecast archives: a zstd-compressed
// stream of msgpack records, one record per field layer per step. The
// same format stores the analysis (initial conditions, step 0) and the
// forecast output, so a run's output can seed later experiments.
package archive

// Record is one stored lat/lon layer, tagged with the field template it
// originates from and the forecast step it is valid at.
type Record struct {
	Param  string    `msgpack:"param"`
	Level  int       `msgpack:"level"`
	Step   int       `msgpack:"step"`
	Rows   int       `msgpack:"rows"`
	Cols   int       `msgpack:"cols"`
	Values []float32 `msgpack:"values"`
}
